package publish

import (
	"context"
	"fmt"
	"strings"
	"time"

	"airquality_dashboard/internal/models"

	"github.com/segmentio/kafka-go"
)

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka writes one message per snapshot, keyed by the selected scope so
// that a consumer sees one room's history in order.
type Kafka struct {
	writer kafkaWriter
}

func NewKafka(brokers []string, topic string) (*Kafka, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("kafka topic must not be empty")
	}
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return &Kafka{writer: w}, nil
}

func (p *Kafka) Publish(ctx context.Context, s models.Snapshot) error {
	payload, err := Encode(s)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(s.CurrentRoom),
		Value: payload,
		Time:  s.Timestamp,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *Kafka) Close() error { return p.writer.Close() }
