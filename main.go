package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"i4.energy/across/mc20/at"
	"i4.energy/across/mc20/modem"
)

func main() {
	configFile := flag.String("config", os.Getenv("CONFIG_FILE"), "Path to a YAML configuration file")
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port to connect to the modem")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.Duration("read-timeout", time.Second, "Serial port read timeout")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("power", "none", "Power sequencing (none, lines)")
	flag.Int("probe-attempts", 20, "Liveness probe attempts at startup")
	flag.String("mqtt-broker", "", "MQTT broker URL for publishing notifications")
	flag.String("mqtt-topic", "mc20/urc", "MQTT topic prefix for notifications")
	flag.String("mqtt-client-id", "mc20-gw", "MQTT client identifier")
	flag.String("mqtt-username", "", "MQTT username")
	flag.String("mqtt-password", "", "MQTT password")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithFile(*configFile), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	var notify modem.NotificationHandler = func(n at.Notification) {
		logger.Info("Modem notification", "name", n.Name(), "line", n.Line)
	}
	if config.MQTT.Broker != "" {
		client, err := connectMQTT(config.MQTT, logger.With("component", "mqtt"))
		if err != nil {
			logger.Error("Failed to connect to MQTT broker", "error", err, "broker", config.MQTT.Broker)
			os.Exit(1)
		}
		defer client.Disconnect(500)

		pub := &NotificationPublisher{
			Client: client,
			Topic:  config.MQTT.Topic,
			Logger: logger.With("component", "mqtt"),
		}
		logOnly := notify
		notify = func(n at.Notification) {
			logOnly(n)
			pub.Publish(n)
		}
	}

	var power modem.PowerSequencer = modem.NopPower{}
	if config.Power == "lines" {
		power = modem.LinePower{}
	}

	modemConfig, err := modem.NewConfigBuilder().
		WithInitTimeout(30 * time.Second).
		WithProbeAttempts(config.ProbeAttempts).
		WithPower(power).
		WithLogger(logger.With("component", "modem")).
		WithNotificationHandler(notify).
		WithDialer(modem.SerialDialer{
			PortName:    config.SerialPort,
			BaudRate:    config.BaudRate,
			ReadTimeout: config.ReadTimeout,
		}).
		Build()
	if err != nil {
		logger.Error("Failed to create modem config", "error", err)
		os.Exit(1)
	}

	m, err := modem.New(context.Background(), modemConfig)
	if err != nil {
		logger.Error("Failed to create modem", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting MC20 gateway", "serial_port", config.SerialPort, "state", m.State().String())

	httpServer := &http.Server{
		Addr: config.BindAddress,
		Handler: &Server{
			Logger: logger.With("component", "server"),
			Modem:  m,
		},
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sig := <-sigChan
	logger.Info("Received shutdown signal", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to gracefully shutdown server", "error", err)
	}

	logger.Info("Ending modem session")
	if err := m.End(ctx); err != nil {
		logger.Error("Failed to end modem session", "error", err)
	}
	if err := m.Close(); err != nil {
		logger.Error("Failed to close modem", "error", err)
	}
}
