package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

type Type string

const (
	ItemAdded       Type = "cart.item_added"
	ItemRemoved     Type = "cart.item_removed"
	QuantityUpdated Type = "cart.quantity_updated"
	CartCleared     Type = "cart.cleared"
)

// Event describes one cart mutation. Item fields are empty for CartCleared.
type Event struct {
	Type       Type      `json:"type"`
	VisitorID  string    `json:"visitor_id"`
	ItemID     string    `json:"item_id,omitempty"`
	ProductID  string    `json:"product_id,omitempty"`
	Size       string    `json:"size,omitempty"`
	Color      string    `json:"color,omitempty"`
	Quantity   int       `json:"quantity"`
	ItemCount  int       `json:"item_count"`
	Subtotal   float64   `json:"subtotal"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events keyed by visitor so one visitor's events stay ordered in a partition.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher returns an async publisher. Publish only reports enqueue errors;
// broker delivery failures surface through log.
func NewKafkaPublisher(topic string, log *slog.Logger, brokers ...string) *KafkaPublisher {
	if log == nil {
		log = slog.Default()
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion:             logCompletion(log, topic),
	}
	return &KafkaPublisher{writer: w}
}

func logCompletion(log *slog.Logger, topic string) func([]kafka.Message, error) {
	return func(messages []kafka.Message, err error) {
		if err == nil {
			return
		}
		types := make([]string, 0, len(messages))
		for _, m := range messages {
			for _, h := range m.Headers {
				if h.Key == "event_type" {
					types = append(types, string(h.Value))
				}
			}
		}
		log.Warn("cart activity delivery failed",
			"topic", topic,
			"messages", len(messages),
			"event_types", types,
			"error", err,
		)
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.VisitorID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
