package modem

import (
	"context"
	"errors"
	"os"
	"testing"

	"go.bug.st/serial"
	"go.uber.org/mock/gomock"
)

func TestSerialDialer_Dial_EmptyPortName(t *testing.T) {
	dialer := SerialDialer{
		PortName: "",
	}

	ctx := context.Background()
	transport, err := dialer.Dial(ctx)

	if err == nil {
		t.Fatal("expected error for empty port name")
	}
	if transport != nil {
		t.Error("expected nil transport for empty port name")
	}
	if err.Error() != "mc20: serial port name is required" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestSerialDialer_Dial_NilContext(t *testing.T) {
	dialer := SerialDialer{
		PortName: "/dev/ttyUSB0",
	}

	var ctx context.Context
	transport, err := dialer.Dial(ctx)

	if err == nil {
		t.Fatal("expected error for nil context")
	}
	if transport != nil {
		t.Error("expected nil transport for nil context")
	}
	if err.Error() != "mc20: context is nil" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestSerialDialer_Dial_ContextCanceled(t *testing.T) {
	dialer := SerialDialer{
		PortName: "/dev/nonexistent", // Port that should fail to open
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	transport, err := dialer.Dial(ctx)

	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
	if transport != nil {
		t.Error("expected nil transport for canceled context")
	}
}

func TestSerialDialer_Dial_WithMode(t *testing.T) {
	dialer := SerialDialer{
		PortName: "/dev/nonexistent", // This will fail, but we test the path
		Mode: &serial.Mode{
			BaudRate: 115200,
			Parity:   serial.NoParity,
			DataBits: 8,
			StopBits: serial.OneStopBit,
		},
	}

	transport, err := dialer.Dial(context.Background())

	// Since we're using a non-existent port, expect an error
	if err == nil {
		t.Fatal("expected error for non-existent port")
	}
	if transport != nil {
		t.Error("expected nil transport for non-existent port")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got: %v", err)
	}
}

func TestSerialDialer_Dial_DefaultMode(t *testing.T) {
	dialer := SerialDialer{
		PortName: "/dev/nonexistent", // This will fail, but we test the path
		// Mode is nil - should use defaults
	}

	transport, err := dialer.Dial(context.Background())

	// Since we're using a non-existent port, expect an error
	if err == nil {
		t.Error("expected error for non-existent port")
	}
	if transport != nil {
		t.Error("expected nil transport for non-existent port")
	}
}

type ctxKey struct{}

func TestNewDialsWithCallerContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTransport := NewMockTransport(ctrl)
	mockDialer := NewMockDialer(ctrl)

	ctx := context.WithValue(context.Background(), ctxKey{}, "caller")
	gomock.InOrder(
		mockDialer.EXPECT().Dial(gomock.Any()).DoAndReturn(func(ctx context.Context) (Transport, error) {
			if ctx.Value(ctxKey{}) != "caller" {
				t.Error("dialer should receive the caller's context")
			}
			return mockTransport, nil
		}),
		mockTransport.EXPECT().Write([]byte("AT\r")).Return(3, nil),
		mockTransport.EXPECT().Drain().Return(nil),
		mockTransport.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
			return copy(p, "OK\r\n"), nil
		}),
	)

	m, err := New(ctx, Config{Dialer: mockDialer})
	if err != nil {
		t.Fatalf("unexpected error from New(): %v", err)
	}
	if m.transport != mockTransport {
		t.Error("modem should drive the dialed transport")
	}
}

func TestNewReturnsDialError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDialer := NewMockDialer(ctrl)
	dialErr := errors.New("dial failed")
	mockDialer.EXPECT().Dial(gomock.Any()).Return(nil, dialErr)

	m, err := New(context.Background(), Config{Dialer: mockDialer})
	if !errors.Is(err, dialErr) {
		t.Errorf("expected dial error, got: %v", err)
	}
	if m != nil {
		t.Error("expected nil modem on dial error")
	}
}

func TestDialerFunc(t *testing.T) {
	tr := NewTestTransport()
	var d Dialer = DialerFunc(func(context.Context) (Transport, error) {
		return tr, nil
	})

	got, err := d.Dial(context.Background())
	if err != nil {
		t.Fatalf("unexpected dial error: %v", err)
	}
	if got != tr {
		t.Error("expected the function's transport to be returned")
	}
}
