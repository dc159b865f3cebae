package modem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

//go:generate go tool mockgen -source=transport.go -destination=mock_transport.go -package=modem

// DefaultReadTimeout bounds every read from the serial port. A line that
// does not complete within two of these is reported as ErrTimeout.
const DefaultReadTimeout = time.Second

// Transport represents an established, bidirectional byte stream to a modem.
//
// Read must block until at least one byte is available or the channel's
// read timeout elapses, and report a timeout as (0, nil), which is what
// go.bug.st/serial ports do. Drain blocks until every written byte has been
// sent. ResetInputBuffer discards bytes received but not yet read.
//
// Typical implementations include serial ports or in-memory fakes used for
// testing.
type Transport interface {
	io.ReadWriteCloser
	Drain() error
	ResetInputBuffer() error
}

// Dialer opens a Transport to a modem.
//
// Dialer abstracts how the modem connection is created (for example, via a
// serial port or a test double) and is intended to be used during modem
// construction only. Once a Transport is obtained, the Dialer is no longer
// needed.
type Dialer interface {
	// Dial is responsible for creating and returning a connected Transport. It may
	// perform blocking operations and should respect cancellation and deadlines
	// provided by the context. Dial returns an error if the transport cannot be
	// established.
	Dial(ctx context.Context) (Transport, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context) (Transport, error)

func (f DialerFunc) Dial(ctx context.Context) (Transport, error) {
	return f(ctx)
}

var (
	_ Transport    = (serial.Port)(nil)
	_ ControlLines = (serial.Port)(nil)
)

// SerialDialer opens the modem over a serial port using go.bug.st/serial.
type SerialDialer struct {
	// PortName is the device path, e.g. "/dev/ttyUSB0".
	PortName string
	// BaudRate is used when Mode is nil. Zero selects 115200.
	BaudRate int
	// Mode overrides the default 8N1 mode.
	Mode *serial.Mode
	// ReadTimeout is the channel-level read timeout. Zero selects
	// DefaultReadTimeout.
	ReadTimeout time.Duration
}

func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("mc20: context is nil")
	}
	if d.PortName == "" {
		return nil, errors.New("mc20: serial port name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		baud := d.BaudRate
		if baud == 0 {
			baud = 115200
		}
		mode = &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("mc20: open serial port %s: %w", d.PortName, err)
	}

	timeout := d.ReadTimeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("mc20: set read timeout on %s: %w", d.PortName, err)
	}

	return port, nil
}
