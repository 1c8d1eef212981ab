package ports

import (
	"context"

	"ferryops/internal/core/domain/model/inventory"
	"ferryops/internal/core/domain/model/kernel"
)

// ItemRepository defines the persistence contract for inventory items.
type ItemRepository interface {
	Add(ctx context.Context, item *inventory.Item) error

	// Update writes the descriptive fields only. current_stock is never
	// overwritten from the aggregate.
	Update(ctx context.Context, item *inventory.Item) error

	Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error)

	Delete(ctx context.Context, id kernel.UUID) error

	// IncrementStock adds quantity to current_stock in a single atomic
	// statement.
	IncrementStock(ctx context.Context, id kernel.UUID, quantity int) error
}
