package modem

import (
	"context"
	"fmt"
	"time"
)

//go:generate go tool mockgen -source=power.go -destination=mock_power.go -package=modem

// PowerSequencer brings the modem up before the liveness probe and takes it
// down at the end of a session. PowerOn only needs to get the modem
// booting; Begin polls it until it answers.
type PowerSequencer interface {
	PowerOn(ctx context.Context, t Transport) error
	PowerOff(ctx context.Context, t Transport) error
}

// ControlLines is implemented by transports that can drive the serial
// port's modem control outputs.
type ControlLines interface {
	SetDTR(dtr bool) error
	SetRTS(rts bool) error
}

// NopPower is used when the modem is powered and switched on externally.
type NopPower struct{}

func (NopPower) PowerOn(context.Context, Transport) error  { return nil }
func (NopPower) PowerOff(context.Context, Transport) error { return nil }

// LinePower sequences the MC20 supply and PWRKEY inputs through the serial
// port's control lines: DTR switches VBAT and RTS drives PWRKEY, both
// active high.
type LinePower struct {
	// AlwaysPowered skips VBAT switching for boards where the supply is
	// hard wired.
	AlwaysPowered bool
	// VBATDelay is the wait between VBAT rising and the PWRKEY pulse.
	// Zero selects 100ms.
	VBATDelay time.Duration
	// PulseWidth is how long PWRKEY is held. Zero selects 700ms.
	PulseWidth time.Duration
}

func (p LinePower) PowerOn(ctx context.Context, t Transport) error {
	lines, ok := t.(ControlLines)
	if !ok {
		return ErrNoControlLines
	}
	if !p.AlwaysPowered {
		if err := lines.SetDTR(true); err != nil {
			return fmt.Errorf("raise VBAT: %w", err)
		}
		if err := sleep(ctx, p.vbatDelay()); err != nil {
			return err
		}
	}
	return p.pulse(ctx, lines)
}

func (p LinePower) PowerOff(ctx context.Context, t Transport) error {
	lines, ok := t.(ControlLines)
	if !ok {
		return ErrNoControlLines
	}
	if err := p.pulse(ctx, lines); err != nil {
		return err
	}
	if p.AlwaysPowered {
		return nil
	}
	if err := lines.SetDTR(false); err != nil {
		return fmt.Errorf("drop VBAT: %w", err)
	}
	return nil
}

func (p LinePower) pulse(ctx context.Context, lines ControlLines) error {
	if err := lines.SetRTS(true); err != nil {
		return fmt.Errorf("raise PWRKEY: %w", err)
	}
	err := sleep(ctx, p.pulseWidth())
	// PWRKEY is released even when the wait was cut short.
	if rerr := lines.SetRTS(false); rerr != nil && err == nil {
		err = fmt.Errorf("release PWRKEY: %w", rerr)
	}
	return err
}

func (p LinePower) vbatDelay() time.Duration {
	if p.VBATDelay > 0 {
		return p.VBATDelay
	}
	return 100 * time.Millisecond
}

func (p LinePower) pulseWidth() time.Duration {
	if p.PulseWidth > 0 {
		return p.PulseWidth
	}
	return 700 * time.Millisecond
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
