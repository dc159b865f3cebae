package at

import (
	"io"
)

// Outcome is the result of one Framer.ReadLine call.
type Outcome int

const (
	// Nothing means the read timed out before a single byte arrived.
	Nothing Outcome = iota
	// Complete means CRLF terminated a non-empty line.
	Complete
	// Empty means CRLF arrived with nothing before it.
	Empty
	// Partial means some bytes arrived but the read timed out before CRLF.
	Partial
	// Overflow means the line buffer filled up before CRLF.
	Overflow
)

func (o Outcome) String() string {
	switch o {
	case Nothing:
		return "nothing"
	case Complete:
		return "complete"
	case Empty:
		return "empty"
	case Partial:
		return "partial"
	case Overflow:
		return "overflow"
	default:
		return "unknown"
	}
}

// rxChunk is how many bytes the Framer asks the reader for at a time.
const rxChunk = 64

// Framer assembles CRLF terminated lines from a reader.
//
// The reader must follow the go.bug.st/serial contract: Read blocks until
// at least one byte is available or the port's read timeout elapses, and
// reports a timeout as (0, nil). Any error returned by Read is passed
// through to the caller of ReadLine.
//
// Bytes received after a line terminator are kept for the next line. A CR
// that is not immediately followed by LF is dropped.
type Framer struct {
	r    io.Reader
	line *LineBuffer

	rx         [rxChunk]byte
	head, tail int

	// crPending is set when the last byte consumed was a CR whose LF has
	// not been seen yet. It survives a resumed read.
	crPending bool
}

// NewFramer returns a Framer reading from r into a line buffer of the
// given capacity.
func NewFramer(r io.Reader, capacity int) *Framer {
	return &Framer{
		r:    r,
		line: NewLineBuffer(capacity),
	}
}

// Line returns the content accumulated by the last ReadLine call. It never
// contains the line terminator.
func (f *Framer) Line() string {
	return f.line.String()
}

// Buffer exposes the underlying line buffer.
func (f *Framer) Buffer() *LineBuffer {
	return f.line
}

// ReadLine reads until CRLF or a read timeout. With resume set, bytes are
// appended to the content left by a previous Partial outcome; otherwise the
// line buffer is cleared first.
func (f *Framer) ReadLine(resume bool) (Outcome, error) {
	if !resume {
		f.line.Reset()
		f.crPending = false
	}

	got := false
	for {
		b, ok, err := f.next()
		if err != nil {
			return Nothing, err
		}
		if !ok {
			if got {
				return Partial, nil
			}
			return Nothing, nil
		}
		got = true

		if f.crPending {
			f.crPending = false
			if b == LF {
				if f.line.Len() == 0 {
					return Empty, nil
				}
				return Complete, nil
			}
		}
		if b == CR {
			f.crPending = true
			continue
		}
		if !f.line.Append(b) {
			f.head--
			return Overflow, nil
		}
	}
}

// Discard drops any buffered input and the current line.
func (f *Framer) Discard() {
	f.head, f.tail = 0, 0
	f.crPending = false
	f.line.Reset()
}

// next returns the next input byte. ok is false when the read timed out.
func (f *Framer) next() (b byte, ok bool, err error) {
	if f.head == f.tail {
		n, err := f.r.Read(f.rx[:])
		if n <= 0 {
			return 0, false, err
		}
		f.head, f.tail = 0, n
	}
	b = f.rx[f.head]
	f.head++
	return b, true, nil
}
