package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ferryops/internal/adapters/out/kafka"
	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/inventory"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/order"
	"ferryops/internal/core/ports"
	"ferryops/internal/pkg/metrics"

	"github.com/IBM/sarama/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var topics = kafka.Topics{OrderChanged: "ferryops.orders", BookingChanged: "ferryops.bookings"}

func newOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Pwani Oil", "Diesel", 40, nil, time.Now())
	require.NoError(t, err)
	return o
}

func TestPublisher_PublishesOrderChanged(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	o := newOrder(t)
	require.NoError(t, o.Accept())

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var e kafka.OrderChangedEvent
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		if e.OrderID != o.ID().String() || e.Status != "approved" || e.DeliveryStatus != "pending" {
			return errors.New("unexpected order event payload")
		}
		return nil
	})

	ok := metrics.EventsPublished.WithLabelValues(topics.OrderChanged, "ok")
	before := testutil.ToFloat64(ok)

	p := kafka.NewPublisher(producer, topics, zap.NewNop())
	p.AggregatesCommitted(context.Background(), []ports.TrackedAggregate{{ID: o.ID(), Aggregate: o}})

	assert.InDelta(t, before+1, testutil.ToFloat64(ok), 0.0001)
	require.NoError(t, p.Close())
}

func TestPublisher_PublishesBookingChanged(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	n := 1
	b, err := booking.NewBooking(kernel.NewUUID(), kernel.NewUUID(), booking.Trip{
		Type:          booking.TypePassenger,
		TravelDate:    time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		TravelTime:    "07:00",
		Route:         "Likoni - Mombasa Island",
		NumPassengers: &n,
	}, booking.Payment{AmountPaid: kernel.MustMoney(100)}, time.Now())
	require.NoError(t, err)

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var e kafka.BookingChangedEvent
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		if e.BookingID != b.ID().String() || e.PaymentStatus != "paid" {
			return errors.New("unexpected booking event payload")
		}
		return nil
	})

	p := kafka.NewPublisher(producer, topics, zap.NewNop())
	p.AggregatesCommitted(context.Background(), []ports.TrackedAggregate{{ID: b.ID(), Aggregate: b}})

	require.NoError(t, p.Close())
}

func TestPublisher_SkipsOtherAggregates(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	item, err := inventory.NewItem(kernel.NewUUID(), "Diesel", "fuel", "litre", 0, 10, time.Now())
	require.NoError(t, err)

	p := kafka.NewPublisher(producer, topics, zap.NewNop())
	p.AggregatesCommitted(context.Background(), []ports.TrackedAggregate{{ID: item.ID(), Aggregate: item}})

	// Close fails the test if an unexpected message was sent.
	require.NoError(t, p.Close())
}

func TestPublisher_FailureIsLoggedAndCounted(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(errors.New("broker unavailable"))
	producer.ExpectSendMessageAndSucceed()
	first, second := newOrder(t), newOrder(t)

	core, logs := observer.New(zapcore.WarnLevel)
	failed := metrics.EventsPublished.WithLabelValues(topics.OrderChanged, "error")
	before := testutil.ToFloat64(failed)

	p := kafka.NewPublisher(producer, topics, zap.New(core))
	p.AggregatesCommitted(context.Background(), []ports.TrackedAggregate{
		{ID: first.ID(), Aggregate: first},
		{ID: second.ID(), Aggregate: second},
	})

	assert.InDelta(t, before+1, testutil.ToFloat64(failed), 0.0001)
	entries := logs.FilterMessage("failed to publish event").All()
	require.Len(t, entries, 1)
	assert.Equal(t, first.ID().String(), entries[0].ContextMap()["aggregate_id"])
	require.NoError(t, p.Close())
}

func TestPublisher_EmptyTopicDisablesStream(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	o := newOrder(t)

	p := kafka.NewPublisher(producer, kafka.Topics{BookingChanged: "ferryops.bookings"}, zap.NewNop())
	p.AggregatesCommitted(context.Background(), []ports.TrackedAggregate{{ID: o.ID(), Aggregate: o}})

	require.NoError(t, p.Close())
}
