// internal/writer/mqtt.go
package writer

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"dmmlogger/internal/poller"
)

// MQTTOptions configure the optional live record feed.
type MQTTOptions struct {
	Server   string
	ClientID string
	Username string
	Password string
	Topic    string
}

// MQTT publishes each record as a JSON payload mirroring the CSV row.
// This is live delivery next to the file, not persistence.
type MQTT struct {
	client mqtt.Client
	topic  string
}

// NewMQTT connects to the broker. A connect failure is a hard error: an
// explicitly configured feed must not fail silently.
func NewMQTT(o MQTTOptions) (*MQTT, error) {
	opts := mqtt.NewClientOptions().AddBroker(o.Server).SetClientID(o.ClientID)
	if o.Username != "" {
		opts.SetUsername(o.Username)
	}
	if o.Password != "" {
		opts.SetPassword(o.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("writer: mqtt connect: %w", token.Error())
	}
	return &MQTT{client: client, topic: o.Topic}, nil
}

func (m *MQTT) Write(rec poller.Record) error {
	b, err := recordPayload(rec)
	if err != nil {
		return err
	}
	token := m.client.Publish(m.topic, 0, false, b)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("writer: mqtt publish: %w", token.Error())
	}
	return nil
}

func (m *MQTT) Close() error {
	if m.client != nil {
		m.client.Disconnect(250)
	}
	return nil
}

func recordPayload(rec poller.Record) ([]byte, error) {
	payload := struct {
		Time      string    `json:"time"`
		Timestamp float64   `json:"timestamp"`
		Mean      float64   `json:"mean_v"`
		Std       float64   `json:"std_v"`
		Temps     []float64 `json:"temperatures,omitempty"`
	}{
		Time:      rec.At.Format("150405"),
		Timestamp: epochSeconds(rec),
		Mean:      rec.Mean,
		Std:       rec.Std,
		Temps:     rec.Temps,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("writer: marshal record: %w", err)
	}
	return b, nil
}
