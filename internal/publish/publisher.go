// Package publish fans committed snapshots out to external sinks.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"airquality_dashboard/internal/airquality"
	"airquality_dashboard/internal/logger"
	"airquality_dashboard/internal/models"
)

// Publisher receives every snapshot the store commits.
type Publisher interface {
	Publish(ctx context.Context, s models.Snapshot) error
	Close() error
}

// Message is the wire payload sent to brokers.
type Message struct {
	Snapshot   models.Snapshot   `json:"snapshot"`
	Assessment models.Assessment `json:"assessment"`
}

// Encode builds the payload for s, assessed on its global reading.
func Encode(s models.Snapshot) ([]byte, error) {
	msg := Message{
		Snapshot:   s,
		Assessment: airquality.Assess(models.ScopeAll, s.Reading, s.Timestamp),
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot message: %w", err)
	}
	return b, nil
}

type Nop struct{}

func (Nop) Publish(context.Context, models.Snapshot) error { return nil }
func (Nop) Close() error                                   { return nil }

// Multi publishes to every member and joins their errors.
type Multi []Publisher

func NewMulti(ps ...Publisher) Multi {
	out := make(Multi, 0, len(ps))
	for _, p := range ps {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (m Multi) Publish(ctx context.Context, s models.Snapshot) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Logged reports failures of the wrapped sink. Errors are still returned.
type Logged struct {
	Publisher
	Sink string
	Log  *logger.Logger
}

func (l Logged) Publish(ctx context.Context, s models.Snapshot) error {
	err := l.Publisher.Publish(ctx, s)
	if err != nil && l.Log != nil {
		l.Log.Warnw("publish_failed", "sink", l.Sink, "err", err)
	}
	return err
}

// Driver names accepted by New.
const (
	DriverNone  = "none"
	DriverMQTT  = "mqtt"
	DriverKafka = "kafka"
)

// Config selects and configures the broker sink.
type Config struct {
	Driver       string
	Topic        string
	MQTTBroker   string
	MQTTClientID string
	KafkaBrokers []string
}

// New builds the broker publisher named by cfg.Driver.
func New(cfg Config) (Publisher, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverNone:
		return Nop{}, nil
	case DriverMQTT:
		return NewMQTT(cfg.MQTTBroker, cfg.MQTTClientID, cfg.Topic)
	case DriverKafka:
		return NewKafka(cfg.KafkaBrokers, cfg.Topic)
	default:
		return nil, fmt.Errorf("unknown publish driver %q", cfg.Driver)
	}
}
