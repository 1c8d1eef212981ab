package ports

import (
	"context"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/supplier"
)

type SupplierRepository interface {
	// Add returns errs.ErrValueIsInvalid when the email is already registered.
	Add(ctx context.Context, aggregate *supplier.Supplier) error
	Update(ctx context.Context, aggregate *supplier.Supplier) error
	Get(ctx context.Context, id kernel.UUID) (*supplier.Supplier, error)
}
