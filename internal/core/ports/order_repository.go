// Package ports defines the contracts between the application core and its
// adapters: persistence, event publishing and chat fan-out.
package ports

import (
	"context"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update is a conditional write: it succeeds only if the stored version
	// still equals aggregate.Version(), and bumps the version on success.
	// A lost race returns errs.ErrVersionIsInvalid; a missing row returns
	// errs.ErrObjectNotFound.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or returns errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
