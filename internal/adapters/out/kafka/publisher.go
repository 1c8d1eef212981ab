// Package kafka publishes domain change events once a unit of work has
// committed. Publishing is best effort: failures are logged and counted, and
// never reach the caller whose transaction already succeeded.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/order"
	"ferryops/internal/core/ports"
	"ferryops/internal/pkg/metrics"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Topics struct {
	OrderChanged   string
	BookingChanged string
}

// Publisher implements ports.CommitListener on a sarama.SyncProducer.
type Publisher struct {
	producer sarama.SyncProducer
	topics   Topics
	logger   *zap.Logger
	now      func() time.Time
}

var _ ports.CommitListener = (*Publisher)(nil)

// NewSyncProducer builds an idempotent producer that waits for all in-sync
// replicas.
func NewSyncProducer(brokers []string, retries int) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = retries
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return producer, nil
}

func NewPublisher(producer sarama.SyncProducer, topics Topics, logger *zap.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topics:   topics,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AggregatesCommitted publishes one event per order or booking, keyed by its
// id so changes of one aggregate stay in one partition. Other aggregates are
// ignored.
func (p *Publisher) AggregatesCommitted(_ context.Context, aggregates []ports.TrackedAggregate) {
	for _, a := range aggregates {
		var (
			topic, eventType string
			event            any
		)
		switch agg := a.Aggregate.(type) {
		case *order.Order:
			topic, eventType, event = p.topics.OrderChanged, OrderChangedEventType, newOrderChangedEvent(agg, p.now())
		case *booking.Booking:
			topic, eventType, event = p.topics.BookingChanged, BookingChangedEventType, newBookingChangedEvent(agg, p.now())
		default:
			continue
		}
		if topic == "" {
			continue
		}

		if err := p.publish(topic, eventType, a.ID.String(), event); err != nil {
			metrics.EventsPublished.WithLabelValues(topic, "error").Inc()
			p.logger.Warn("failed to publish event",
				zap.String("topic", topic),
				zap.String("event_type", eventType),
				zap.String("aggregate_id", a.ID.String()),
				zap.Error(err),
			)
			continue
		}
		metrics.EventsPublished.WithLabelValues(topic, "ok").Inc()
	}
}

func (p *Publisher) publish(topic, eventType, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(eventType)},
			{Key: []byte("event-id"), Value: []byte(uuid.NewString())},
			{Key: []byte("timestamp"), Value: []byte(p.now().Format(time.RFC3339))},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return err
	}
	p.logger.Debug("event published",
		zap.String("topic", topic),
		zap.String("event_type", eventType),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
