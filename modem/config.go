package modem

import (
	"log/slog"
	"time"

	"i4.energy/across/mc20/at"
)

// NotificationHandler is called, on the goroutine executing the current
// transaction, for every unsolicited notification skipped while waiting
// for a reply. It must not call back into the Modem.
type NotificationHandler func(n at.Notification)

type Config struct {
	Dialer         Dialer
	Power          PowerSequencer
	Logger         *slog.Logger
	OnNotification NotificationHandler
	LineCapacity   int
	ProbeAttempts  int
	ProbeInterval  time.Duration
	InitTimeout    time.Duration
}

func (c *Config) validate() error {
	if c.Dialer == nil {
		return ErrNoDialer
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Power == nil {
		c.Power = NopPower{}
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.OnNotification == nil {
		c.OnNotification = func(at.Notification) {}
	}
	if c.LineCapacity <= 0 {
		c.LineCapacity = at.DefaultLineCapacity
	}
	if c.ProbeAttempts <= 0 {
		c.ProbeAttempts = 20
	}
	if c.ProbeInterval <= 0 {
		c.ProbeInterval = 100 * time.Millisecond
	}
	if c.InitTimeout <= 0 {
		c.InitTimeout = 30 * time.Second
	}
}

// ConfigBuilder assembles a Config.
type ConfigBuilder struct {
	config Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.Dialer = d
	return b
}

func (b *ConfigBuilder) WithPower(p PowerSequencer) *ConfigBuilder {
	b.config.Power = p
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.Logger = l
	return b
}

func (b *ConfigBuilder) WithNotificationHandler(h NotificationHandler) *ConfigBuilder {
	b.config.OnNotification = h
	return b
}

func (b *ConfigBuilder) WithLineCapacity(n int) *ConfigBuilder {
	b.config.LineCapacity = n
	return b
}

func (b *ConfigBuilder) WithProbeAttempts(n int) *ConfigBuilder {
	b.config.ProbeAttempts = n
	return b
}

func (b *ConfigBuilder) WithProbeInterval(d time.Duration) *ConfigBuilder {
	b.config.ProbeInterval = d
	return b
}

func (b *ConfigBuilder) WithInitTimeout(d time.Duration) *ConfigBuilder {
	b.config.InitTimeout = d
	return b
}

// Build applies defaults and validates the configuration.
func (b *ConfigBuilder) Build() (Config, error) {
	c := b.config
	c.setDefaults()
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
