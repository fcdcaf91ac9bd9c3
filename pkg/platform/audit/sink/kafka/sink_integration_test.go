//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	platformkafka "healthsphere/internal/platform/kafka"
	"healthsphere/internal/platform/kafka/producer"
	audit "healthsphere/pkg/platform/audit"
	"healthsphere/pkg/testutil/containers"
)

type SinkIntegrationSuite struct {
	suite.Suite
	kafka    *containers.KafkaContainer
	producer *producer.Producer
}

func TestSinkIntegrationSuite(t *testing.T) {
	suite.Run(t, new(SinkIntegrationSuite))
}

func (s *SinkIntegrationSuite) SetupSuite() {
	s.kafka = containers.GetManager().GetKafka(s.T())
	p, err := producer.New(platformkafka.DefaultProducerConfig(s.kafka.Brokers), slog.Default())
	s.Require().NoError(err)
	s.producer = p
}

func (s *SinkIntegrationSuite) TearDownSuite() {
	if s.producer != nil {
		s.NoError(s.producer.Close())
	}
}

func (s *SinkIntegrationSuite) TestEventIsKeyedByDoctor() {
	ctx := context.Background()
	topic := "audit-" + uuid.NewString()[:8]
	doctorID := uuid.NewString()

	sink := New(s.producer, topic)
	s.Require().NoError(sink.Append(ctx, audit.Event{
		Timestamp: time.Now().UTC(),
		Category:  audit.CategoryCompliance,
		Action:    string(audit.EventDoctorVerified),
		DoctorID:  doctorID,
	}))

	consumer, err := s.kafka.NewConsumer("audit-it-"+topic, topic)
	s.Require().NoError(err)
	defer consumer.Close()

	record := s.kafka.WaitForMessage(ctx, consumer, 30*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == doctorID
	})
	s.Require().NotNil(record, "audit event was not delivered")

	var got audit.Event
	s.Require().NoError(json.Unmarshal(record.Value, &got))
	s.Equal(string(audit.EventDoctorVerified), got.Action)

	headers := map[string]string{}
	for _, h := range record.Headers {
		headers[h.Key] = string(h.Value)
	}
	s.Equal(string(audit.EventDoctorVerified), headers["event_type"])
	s.Equal("compliance", headers["category"])
}

func (s *SinkIntegrationSuite) TestProducerHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.NoError(s.producer.Health(ctx))
}
