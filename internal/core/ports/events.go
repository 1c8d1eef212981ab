package ports

import (
	"context"

	"ferryops/internal/core/domain/model/kernel"
)

// TrackedAggregate is an aggregate written during a unit of work.
type TrackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// CommitListener is notified after a unit of work commits. It runs outside the
// transaction; failures are the listener's own concern.
type CommitListener interface {
	AggregatesCommitted(ctx context.Context, aggregates []TrackedAggregate)
}
