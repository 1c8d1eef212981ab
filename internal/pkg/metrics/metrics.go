// Package metrics holds the Prometheus collectors of the service. They are
// registered on the default registry and exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ferryops"

var (
	// OrderTransitions counts committed order state changes.
	// Labels: operation (accept, reject, supply, finance_approve, finance_reject,
	// mark_delivered, confirm_received)
	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "transitions_total",
		Help:      "Committed order state transitions",
	}, []string{"operation"})

	// OrderVersionConflicts counts conditional writes that lost a race.
	OrderVersionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "version_conflicts_total",
		Help:      "Order updates rejected because the row changed concurrently",
	})

	// StockIncrementFailures counts receipts whose stock increment failed
	// after the order was already marked received.
	StockIncrementFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "inventory",
		Name:      "stock_increment_failures_total",
		Help:      "Stock increments that failed after a confirmed receipt",
	})

	// LowStockItems is the number of items at or below their reorder level,
	// as of the last scan.
	LowStockItems = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "inventory",
		Name:      "low_stock_items",
		Help:      "Items at or below their reorder level",
	})

	// BookingTransitions counts committed booking state changes.
	// Labels: operation
	BookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "bookings",
		Name:      "transitions_total",
		Help:      "Committed booking state transitions",
	}, []string{"operation"})

	// ChatMessages counts relayed chat messages.
	// Labels: outcome (delivered, persist_failed)
	ChatMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "chat",
		Name:      "messages_total",
		Help:      "Chat messages relayed",
	}, []string{"outcome"})

	// EventsPublished counts domain events handed to the broker.
	// Labels: topic, outcome (ok, error)
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Domain events published",
	}, []string{"topic", "outcome"})

	// HTTPRequestDuration measures request latency.
	// Labels: method, route, status
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
