// Package kafka mirrors audit events onto a Kafka topic for downstream
// compliance consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"healthsphere/internal/platform/kafka/producer"
	audit "healthsphere/pkg/platform/audit"
)

// Producer is the subset of producer.Producer the sink needs.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// Sink implements audit.Sink by publishing JSON-encoded events.
type Sink struct {
	producer Producer
	topic    string
}

func New(p Producer, topic string) *Sink {
	return &Sink{producer: p, topic: topic}
}

// Append publishes the event keyed by doctor so one doctor's trail stays on
// a single partition.
func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	key := event.DoctorID
	if key == "" {
		key = event.RequestID
	}

	msg := &producer.Message{
		Topic: s.topic,
		Key:   []byte(key),
		Value: payload,
		Headers: map[string]string{
			"event_type": event.Action,
			"category":   string(event.Category),
		},
	}
	if err := s.producer.Produce(ctx, msg); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}
