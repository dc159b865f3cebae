package modem

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDialer is returned when a Modem is constructed without a Dialer.
	//
	// This indicates a configuration error. A Dialer is required in order to
	// establish a connection to the modem.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNotInitialized is returned when the Dialer produced no transport.
	ErrNotInitialized = errors.New("modem not initialized")

	// ErrAlreadyClosed is returned when an operation is attempted on a Modem
	// that has been closed.
	ErrAlreadyClosed = errors.New("modem already closed")

	// ErrNotEstablished is returned when a command is executed before the
	// liveness probe has succeeded, or after End.
	ErrNotEstablished = errors.New("modem session not established")

	// ErrNotResponding is returned by Begin when the liveness probe never
	// succeeded within the configured attempts or the context deadline.
	ErrNotResponding = errors.New("modem not responding")

	// ErrEmptyCommand is returned by Execute for an empty command text.
	ErrEmptyCommand = errors.New("empty command")

	// ErrTimeout is returned when no complete reply line arrived before the
	// channel's read timeout, including a line that was still incomplete
	// after its single resumed read.
	//
	// It is not fatal. The caller may retry the whole transaction; two
	// consecutive timeouts usually mean the modem needs a power cycle.
	ErrTimeout = errors.New("timed out waiting for reply")

	// ErrLineTooLong is returned when a modem response line exceeds the
	// line buffer before its terminator arrived.
	//
	// This typically indicates malformed input, unexpected binary data,
	// or a protocol framing error. The pending input is discarded before
	// the error is reported.
	ErrLineTooLong = errors.New("response line too long")

	// ErrMismatch is wrapped by MismatchError.
	ErrMismatch = errors.New("unexpected reply")

	// ErrNoControlLines is returned by LinePower when the transport cannot
	// drive the DTR and RTS lines.
	ErrNoControlLines = errors.New("transport has no control lines")
)

// MismatchError reports a substantive reply line that was neither the
// expected response nor an echo of the command.
type MismatchError struct {
	Command  string
	Expected string
	Line     string
	// Final is set when Line is a final result code such as ERROR.
	Final bool
}

func (e *MismatchError) Error() string {
	kind := "reply"
	if e.Final {
		kind = "final result"
	}
	return fmt.Sprintf("%s: expected %q, got %s %q", e.Command, e.Expected, kind, e.Line)
}

func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}
