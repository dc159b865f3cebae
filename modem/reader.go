package modem

import (
	"fmt"
	"log/slog"

	"i4.energy/across/mc20/at"
)

// readState tracks whether the line being assembled has already used its
// one resumed read.
type readState int

const (
	fresh readState = iota
	awaitingResume
)

// lineReader surfaces the first substantive line from the modem, skipping
// blank lines and unsolicited notifications.
type lineReader struct {
	framer *at.Framer
	notify NotificationHandler
	logger *slog.Logger
}

func newLineReader(t Transport, c Config) *lineReader {
	return &lineReader{
		framer: at.NewFramer(t, c.LineCapacity),
		notify: c.OnNotification,
		logger: c.Logger,
	}
}

// readSubstantive returns the next line that is neither empty nor a
// notification. A line interrupted by a read timeout gets exactly one
// resumed read to complete.
func (r *lineReader) readSubstantive() (string, error) {
	state := fresh
	for {
		outcome, err := r.framer.ReadLine(state == awaitingResume)
		if err != nil {
			return "", fmt.Errorf("read: %w", err)
		}
		if outcome == at.Overflow {
			return "", ErrLineTooLong
		}
		if state == awaitingResume && outcome != at.Complete {
			return "", fmt.Errorf("%w: line %q incomplete after resume", ErrTimeout, r.framer.Line())
		}
		state = fresh

		switch outcome {
		case at.Complete:
			line := r.framer.Line()
			if n, ok := at.Classify(line); ok {
				r.logger.Debug("notification", "line", line)
				r.notify(n)
				continue
			}
			r.logger.Debug("rx", "line", line)
			return line, nil
		case at.Empty:
			continue
		case at.Partial:
			state = awaitingResume
		case at.Nothing:
			return "", ErrTimeout
		}
	}
}

// discard drops buffered input so the next read starts at a fresh line.
func (r *lineReader) discard() {
	r.framer.Discard()
}

// skipLine consumes input until the current line ends or the channel goes
// quiet. Bytes of an overlong line are dropped as they arrive. Like
// readSubstantive, a line interrupted by a timeout gets one resumed read.
func (r *lineReader) skipLine() error {
	resume := false
	for {
		outcome, err := r.framer.ReadLine(resume)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		switch outcome {
		case at.Overflow:
			resume = false
		case at.Partial:
			if resume {
				return nil
			}
			resume = true
		default:
			r.logger.Debug("skipped to line boundary", "outcome", outcome.String())
			return nil
		}
	}
}
