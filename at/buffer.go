package at

// LineBuffer holds at most one line of modem output in a fixed amount of
// storage. The logical length is tracked separately from the storage so the
// buffer can be appended to across several reads and reset without
// reallocating.
type LineBuffer struct {
	buf []byte
	n   int
}

// NewLineBuffer returns a buffer with room for capacity bytes.
// A non-positive capacity selects DefaultLineCapacity.
func NewLineBuffer(capacity int) *LineBuffer {
	if capacity <= 0 {
		capacity = DefaultLineCapacity
	}
	return &LineBuffer{buf: make([]byte, capacity)}
}

// Append adds b to the end of the line. It returns false, leaving the buffer
// unchanged, when the buffer is full.
func (l *LineBuffer) Append(b byte) bool {
	if l.n == len(l.buf) {
		return false
	}
	l.buf[l.n] = b
	l.n++
	return true
}

// Reset empties the line.
func (l *LineBuffer) Reset() {
	l.n = 0
}

func (l *LineBuffer) Len() int { return l.n }

func (l *LineBuffer) Cap() int { return len(l.buf) }

// Bytes returns the line content. The slice is only valid until the next
// Append or Reset.
func (l *LineBuffer) Bytes() []byte {
	return l.buf[:l.n]
}

func (l *LineBuffer) String() string {
	return string(l.buf[:l.n])
}
