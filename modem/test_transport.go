package modem

import (
	"io"
	"sync"
)

// TestTransport is a test helper that behaves like a serial port with a
// read timeout. Reads are served from a queue of chunks; an empty queue or
// an empty chunk is reported as a timeout (0, nil). Replies registered with
// Respond are queued when the matching bytes are written.
type TestTransport struct {
	mu      sync.Mutex
	chunks  []string
	late    []string
	replies map[string][][]string
	writes  []string
	drains  int
	resets  int
	dtr     []bool
	rts     []bool
	closed  bool
}

// NewTestTransport creates a new test transport for testing.
// Exported for use in tests.
func NewTestTransport() *TestTransport {
	return &TestTransport{
		replies: make(map[string][][]string),
	}
}

func (t *TestTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, io.ErrClosedPipe
	}
	wire := string(p)
	t.writes = append(t.writes, wire)
	if queued := t.replies[wire]; len(queued) > 0 {
		t.chunks = append(t.chunks, queued[0]...)
		t.replies[wire] = queued[1:]
	}
	return len(p), nil
}

func (t *TestTransport) Read(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, io.EOF
	}
	if len(t.chunks) == 0 {
		return 0, nil
	}
	c := t.chunks[0]
	n = copy(p, c)
	if n < len(c) {
		t.chunks[0] = c[n:]
	} else {
		t.chunks = t.chunks[1:]
	}
	return n, nil
}

func (t *TestTransport) Drain() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.drains++
	return nil
}

func (t *TestTransport) ResetInputBuffer() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resets++
	t.chunks = t.late
	t.late = nil
	return nil
}

func (t *TestTransport) SetDTR(dtr bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dtr = append(t.dtr, dtr)
	return nil
}

func (t *TestTransport) SetRTS(rts bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rts = append(t.rts, rts)
	return nil
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// SendData queues chunks to be read by the transport.
// This simulates receiving data from the modem.
func (t *TestTransport) SendData(chunks ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.chunks = append(t.chunks, chunks...)
}

// Respond queues chunks to be read after wire has been written. Several
// responses for the same wire are used in order.
func (t *TestTransport) Respond(wire string, chunks ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies[wire] = append(t.replies[wire], chunks)
}

// AfterReset queues chunks that only become readable once ResetInputBuffer
// has been called, like bytes still on the wire when the buffer is flushed.
func (t *TestTransport) AfterReset(chunks ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.late = append(t.late, chunks...)
}

// Writes returns everything written so far, one entry per Write call.
func (t *TestTransport) Writes() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.writes...)
}

// Drains returns how many times Drain was called.
func (t *TestTransport) Drains() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.drains
}

// Resets returns how many times ResetInputBuffer was called.
func (t *TestTransport) Resets() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.resets
}

// Lines returns the DTR and RTS levels set so far.
func (t *TestTransport) Lines() (dtr, rts []bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]bool(nil), t.dtr...), append([]bool(nil), t.rts...)
}

// Closed reports whether Close was called.
func (t *TestTransport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
