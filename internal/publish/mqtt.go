package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"airquality_dashboard/internal/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	mqttQoS            = 1
	mqttConnectTimeout = 5 * time.Second
	mqttPublishTimeout = 3 * time.Second
	mqttQuiesceMillis  = 250
)

var ErrPublishTimeout = errors.New("publish timed out")

type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTT publishes retained snapshot messages, so a new subscriber gets the
// latest state immediately.
type MQTT struct {
	client mqttClient
	topic  string
}

func NewMQTT(broker, clientID, topic string) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttConnectTimeout)

	c := mqtt.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", broker, ErrPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", broker, err)
	}
	return &MQTT{client: c, topic: topic}, nil
}

func (p *MQTT) Publish(ctx context.Context, s models.Snapshot) error {
	payload, err := Encode(s)
	if err != nil {
		return err
	}

	token := p.client.Publish(p.topic, mqttQoS, true, payload)
	timer := time.NewTimer(mqttPublishTimeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("mqtt publish to %s: %w", p.topic, err)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("mqtt publish to %s: %w", p.topic, ErrPublishTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *MQTT) Close() error {
	p.client.Disconnect(mqttQuiesceMillis)
	return nil
}
