package main

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"i4.energy/across/mc20/at"
)

// publisher is the part of mqtt.Client the notification publisher uses
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// NotificationPublisher forwards unsolicited modem notifications to MQTT
type NotificationPublisher struct {
	Client publisher
	Topic  string
	Logger *slog.Logger
}

type notificationMessage struct {
	Line    string    `json:"line"`
	Tag     string    `json:"tag,omitempty"`
	Payload string    `json:"payload,omitempty"`
	Time    time.Time `json:"time"`
}

// Publish sends n to <topic>/<name>. It does not wait for the broker, so
// it is safe to call while the modem is waiting for a reply.
func (p *NotificationPublisher) Publish(n at.Notification) {
	body, err := json.Marshal(notificationMessage{
		Line:    n.Line,
		Tag:     n.Tag,
		Payload: n.Payload,
		Time:    time.Now().UTC(),
	})
	if err != nil {
		p.Logger.Error("Failed to encode notification", "error", err)
		return
	}

	topic := strings.TrimSuffix(p.Topic, "/") + "/" + n.Name()
	token := p.Client.Publish(topic, 0, false, body)
	go func() {
		if token.WaitTimeout(5*time.Second) && token.Error() != nil {
			p.Logger.Warn("Failed to publish notification", "error", token.Error(), "topic", topic)
		}
	}()
}

// connectMQTT connects to the broker described by cfg
func connectMQTT(cfg MQTTConfig, logger *slog.Logger) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetOrderMatters(false)
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("MQTT connection lost", "error", err)
	})
	opts.SetOnConnectHandler(func(mqtt.Client) {
		logger.Info("MQTT connected", "broker", cfg.Broker)
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, err
	}
	return client, nil
}
