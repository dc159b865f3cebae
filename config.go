package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the server listens on (e.g. "0.0.0.0:8080")
	BindAddress string `yaml:"bind_address"`
	// SerialPort is the path to the modem's serial port (e.g. "/dev/ttyUSB0")
	SerialPort string `yaml:"serial_port"`
	// BaudRate is the baud rate for serial communication with the modem (e.g. 115200)
	BaudRate int `yaml:"baud_rate"`
	// ReadTimeout is the serial port read timeout (e.g. "1s")
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `yaml:"log_level"`
	// Power selects how the modem is switched on: "none" or "lines" (DTR/RTS)
	Power string `yaml:"power"`
	// ProbeAttempts bounds the liveness probe at startup
	ProbeAttempts int `yaml:"probe_attempts"`
	// MQTT publishes unsolicited notifications when Broker is set
	MQTT MQTTConfig `yaml:"mqtt"`
}

// MQTTConfig holds the optional notification publisher settings
type MQTTConfig struct {
	// Broker is the broker URL (e.g. "tcp://localhost:1883"); empty disables MQTT
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	// Topic is the prefix notifications are published under
	Topic    string `yaml:"topic"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
// and validates the result
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks configuration correctness without modifying it
func (c *Config) Validate() error {
	if c.SerialPort == "" {
		return fmt.Errorf("serial port is required")
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.BaudRate)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout %v", c.ReadTimeout)
	}
	switch c.Power {
	case "none", "lines":
	default:
		return fmt.Errorf("unknown power mode %q", c.Power)
	}
	if c.MQTT.Broker != "" && c.MQTT.Topic == "" {
		return fmt.Errorf("mqtt topic is required when a broker is set")
	}
	return nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "0.0.0.0:8080"
		c.SerialPort = "/dev/ttyUSB0"
		c.BaudRate = 115200
		c.ReadTimeout = time.Second
		c.LogLevel = "info"
		c.Power = "none"
		c.ProbeAttempts = 20
		c.MQTT.ClientID = "mc20-gw"
		c.MQTT.Topic = "mc20/urc"
		return nil
	}
}

// WithFile loads configuration from a YAML file. Keys missing from the
// file keep their current values. An empty path is ignored.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config file %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
			c.BindAddress = addr
		}

		if serial := os.Getenv("SERIAL_PORT"); serial != "" {
			c.SerialPort = serial
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if timeout := os.Getenv("READ_TIMEOUT"); timeout != "" {
			if d, err := time.ParseDuration(timeout); err == nil {
				c.ReadTimeout = d
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if power := os.Getenv("POWER"); power != "" {
			c.Power = power
		}

		if attempts := os.Getenv("PROBE_ATTEMPTS"); attempts != "" {
			if n, err := strconv.Atoi(attempts); err == nil {
				c.ProbeAttempts = n
			}
		}

		if broker := os.Getenv("MQTT_BROKER"); broker != "" {
			c.MQTT.Broker = broker
		}

		if id := os.Getenv("MQTT_CLIENT_ID"); id != "" {
			c.MQTT.ClientID = id
		}

		if topic := os.Getenv("MQTT_TOPIC"); topic != "" {
			c.MQTT.Topic = topic
		}

		if user := os.Getenv("MQTT_USERNAME"); user != "" {
			c.MQTT.Username = user
		}

		if pass := os.Getenv("MQTT_PASSWORD"); pass != "" {
			c.MQTT.Password = pass
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "bind-address":
				c.BindAddress = f.Value.String()
			case "serial-port":
				c.SerialPort = f.Value.String()
			case "baud-rate":
				if b, err := strconv.Atoi(f.Value.String()); err == nil {
					c.BaudRate = b
				}
			case "read-timeout":
				if d, err := time.ParseDuration(f.Value.String()); err == nil {
					c.ReadTimeout = d
				}
			case "log-level":
				c.LogLevel = f.Value.String()
			case "power":
				c.Power = f.Value.String()
			case "probe-attempts":
				if n, err := strconv.Atoi(f.Value.String()); err == nil {
					c.ProbeAttempts = n
				}
			case "mqtt-broker":
				c.MQTT.Broker = f.Value.String()
			case "mqtt-topic":
				c.MQTT.Topic = f.Value.String()
			case "mqtt-client-id":
				c.MQTT.ClientID = f.Value.String()
			case "mqtt-username":
				c.MQTT.Username = f.Value.String()
			case "mqtt-password":
				c.MQTT.Password = f.Value.String()
			}

		})
		return nil
	}

}
