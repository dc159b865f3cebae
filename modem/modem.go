package modem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"i4.energy/across/mc20/at"
)

// State is the session state of a Modem.
type State int

const (
	// NotEstablished is the state before a successful liveness probe and
	// after End. Execute refuses to send commands in this state.
	NotEstablished State = iota
	// Established means the modem answered the liveness probe.
	Established
)

func (s State) String() string {
	switch s {
	case NotEstablished:
		return "not established"
	case Established:
		return "established"
	default:
		return "unknown"
	}
}

// Match tells how a transaction's expected response was found.
type Match int

const (
	// MatchNone means the transaction failed.
	MatchNone Match = iota
	// MatchDirect means the first reply line was the expected response.
	MatchDirect
	// MatchEcho means the modem echoed the command and the following
	// line was the expected response.
	MatchEcho
)

func (m Match) String() string {
	switch m {
	case MatchNone:
		return "none"
	case MatchDirect:
		return "direct"
	case MatchEcho:
		return "echo"
	default:
		return "unknown"
	}
}

// Modem drives a Quectel MC20 (or any modem speaking the same line
// protocol) over a half-duplex serial channel. Exactly one command is
// outstanding at a time; concurrent callers are serialized.
type Modem struct {
	mu sync.Mutex

	transport Transport
	config    Config
	logger    *slog.Logger
	reader    *lineReader

	// state holds a State. It is written under mu and read without it.
	state  atomic.Int32
	closed bool
}

// New dials the modem, powers it on and probes it until it answers,
// bounded by the configured InitTimeout.
//
// Returns an error if the transport cannot be opened or the modem never
// answers; the transport is closed in the latter case.
func New(ctx context.Context, config Config) (*Modem, error) {
	config.setDefaults()
	if err := config.validate(); err != nil {
		return nil, err
	}

	transport, err := config.Dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, ErrNotInitialized
	}

	m := &Modem{
		transport: transport,
		config:    config,
		logger:    config.Logger,
		reader:    newLineReader(transport, config),
	}

	initCtx, cancel := context.WithTimeout(ctx, config.InitTimeout)
	defer cancel()

	if err := m.Begin(initCtx); err != nil {
		transport.Close()
		return nil, fmt.Errorf("initialize modem: %w", err)
	}

	return m, nil
}

// State returns the current session state.
func (m *Modem) State() State {
	return State(m.state.Load())
}

// Begin powers the modem on and repeats the liveness probe (AT, expecting
// OK) until it succeeds, ProbeAttempts is exhausted or ctx is done. On
// success the session is Established. Calling Begin on an established
// session does nothing.
func (m *Modem) Begin(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrAlreadyClosed
	}
	if m.State() == Established {
		return nil
	}

	if err := m.config.Power.PowerOn(ctx, m.transport); err != nil {
		return fmt.Errorf("power on: %w", err)
	}

	return m.probe(ctx)
}

// End tears the session down and powers the modem off. The transport stays
// open; Begin may be called again.
func (m *Modem) End(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrAlreadyClosed
	}

	m.state.Store(int32(NotEstablished))
	if err := m.config.Power.PowerOff(ctx, m.transport); err != nil {
		return fmt.Errorf("power off: %w", err)
	}
	m.logger.Info("modem session ended")
	return nil
}

// Close releases the transport. After Close the Modem cannot be reused.
func (m *Modem) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrAlreadyClosed
	}

	m.closed = true
	m.state.Store(int32(NotEstablished))

	return m.transport.Close()
}

// Execute sends command and waits for expected as its reply, tolerating an
// echo of the command before the reply.
//
// Unsolicited notifications and blank lines arriving before the reply are
// skipped. The first other line decides the outcome: the expected response
// succeeds with MatchDirect; an echo of the command is followed by exactly
// one more line, which must be the expected response (MatchEcho); anything
// else is a *MismatchError.
//
// An empty command fails with ErrEmptyCommand without touching the
// channel; use SendCommand for the permissive fire-and-forget form.
//
// The context is checked before the command is sent. A read in progress
// cannot be interrupted and ends with the channel's read timeout.
//
// ErrTimeout does not clear the channel: a reply that arrives after the
// timeout is read by the next transaction. Callers that retry after a
// timeout should expect a stale final result and may want to send a
// command whose reply they can tell apart.
func (m *Modem) Execute(ctx context.Context, command, expected string) (Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return MatchNone, ErrAlreadyClosed
	}
	if m.State() != Established {
		return MatchNone, ErrNotEstablished
	}
	return m.execute(ctx, command, expected)
}

// SendCommand writes command followed by CR and blocks until it has been
// sent, without waiting for a reply. It silently does nothing for an empty
// command or when the session is not established.
func (m *Modem) SendCommand(command string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.State() != Established || command == "" {
		return nil
	}
	return m.send(command)
}

func (m *Modem) execute(ctx context.Context, command, expected string) (Match, error) {
	if command == "" {
		return MatchNone, ErrEmptyCommand
	}
	if err := ctx.Err(); err != nil {
		return MatchNone, err
	}
	if err := m.send(command); err != nil {
		return MatchNone, err
	}

	line, err := m.reader.readSubstantive()
	if err != nil {
		return MatchNone, m.readFailed(command, err)
	}

	switch line {
	case expected:
		return MatchDirect, nil
	case command:
		line, err = m.reader.readSubstantive()
		if err != nil {
			return MatchNone, m.readFailed(command, err)
		}
		if line == expected {
			return MatchEcho, nil
		}
	}

	return MatchNone, &MismatchError{
		Command:  command,
		Expected: expected,
		Line:     line,
		Final:    at.IsFinal(line),
	}
}

func (m *Modem) send(command string) error {
	m.logger.Debug("tx", "command", command)
	if _, err := m.transport.Write([]byte(command + string(at.CR))); err != nil {
		return fmt.Errorf("write command %q: %w", command, err)
	}
	if err := m.transport.Drain(); err != nil {
		return fmt.Errorf("flush command %q: %w", command, err)
	}
	return nil
}

// readFailed wraps a reply read error. After an overlong line it drops
// buffered input and reads on until the rest of that line has gone by, so
// the next transaction starts on a line boundary.
func (m *Modem) readFailed(command string, err error) error {
	if errors.Is(err, ErrLineTooLong) {
		m.reader.discard()
		if rerr := m.transport.ResetInputBuffer(); rerr != nil {
			m.logger.Warn("reset input buffer", "error", rerr)
		}
		if serr := m.reader.skipLine(); serr != nil {
			m.logger.Warn("skip overlong line", "error", serr)
		}
	}
	return fmt.Errorf("%s: %w", command, err)
}

func (m *Modem) probe(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= m.config.ProbeAttempts; attempt++ {
		match, err := m.execute(ctx, at.CmdAt, at.OK)
		if err == nil {
			m.state.Store(int32(Established))
			m.logger.Info("modem session established", "attempts", attempt, "match", match.String())
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrNotResponding, ctxErr)
		}
		if !retryable(err) {
			return fmt.Errorf("liveness probe: %w", err)
		}
		lastErr = err
		m.logger.Debug("liveness probe failed", "attempt", attempt, "error", err)

		if attempt < m.config.ProbeAttempts {
			if err := sleep(ctx, m.config.ProbeInterval); err != nil {
				return fmt.Errorf("%w: %w", ErrNotResponding, err)
			}
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrNotResponding, m.config.ProbeAttempts, lastErr)
}

// retryable reports whether a failed probe may succeed once the modem has
// finished booting.
func retryable(err error) bool {
	return errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrMismatch) ||
		errors.Is(err, ErrLineTooLong)
}
