package modem_test

import (
	gomock "go.uber.org/mock/gomock"
	"i4.energy/across/mc20/modem"
)

type MockSequenceBuilder struct {
	transport *modem.MockTransport
	calls     []any
}

func NewMockSequence(transport *modem.MockTransport) *MockSequenceBuilder {
	return &MockSequenceBuilder{
		transport: transport,
		calls:     []any{},
	}
}

// Command expects cmd to be written and flushed.
func (b *MockSequenceBuilder) Command(cmd string) *MockSequenceBuilder {
	wire := cmd + "\r"
	b.calls = append(b.calls,
		b.transport.EXPECT().Write([]byte(wire)).Return(len(wire), nil),
		b.transport.EXPECT().Drain().Return(nil),
	)
	return b
}

// Reply expects one Read that returns resp. An empty resp is a read timeout.
func (b *MockSequenceBuilder) Reply(resp string) *MockSequenceBuilder {
	b.calls = append(b.calls,
		b.transport.EXPECT().Read(gomock.Any()).DoAndReturn(func(p []byte) (int, error) {
			return copy(p, resp), nil
		}),
	)
	return b
}

// AT is a liveness probe answered without echo.
func (b *MockSequenceBuilder) AT() *MockSequenceBuilder {
	return b.Command("AT").Reply("\r\nOK\r\n")
}

// ATEcho is a liveness probe answered with echo enabled.
func (b *MockSequenceBuilder) ATEcho() *MockSequenceBuilder {
	return b.Command("AT").Reply("AT\r\r\nOK\r\n")
}

// ATTimeout is a liveness probe that gets no answer.
func (b *MockSequenceBuilder) ATTimeout() *MockSequenceBuilder {
	return b.Command("AT").Reply("")
}

func (b *MockSequenceBuilder) Build() []any {
	return b.calls
}
