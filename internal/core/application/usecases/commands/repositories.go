// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"ferryops/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest one that covers the repositories it uses.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ItemRepoFactory interface {
		ItemRepository() ports.ItemRepository
	}

	SupplierRepoFactory interface {
		SupplierRepository() ports.SupplierRepository
	}

	BookingRepoFactory interface {
		BookingRepository() ports.BookingRepository
	}

	ChatRepoFactory interface {
		ChatMessageRepository() ports.ChatMessageRepository
	}

	// OrderUoW covers the order pipeline: the order itself plus the supplier
	// and item it references.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   supplier, err := uow.SupplierRepository().Get(ctx, supplierID)
	//   item, err := uow.ItemRepository().Get(ctx, itemID)
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		ItemRepoFactory
		SupplierRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	InventoryUoW interface {
		TxManager
		ItemRepoFactory
	}

	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	SupplierUoW interface {
		TxManager
		SupplierRepoFactory
	}

	SupplierUoWFactory interface {
		Create() SupplierUoW
	}

	BookingUoW interface {
		TxManager
		BookingRepoFactory
	}

	BookingUoWFactory interface {
		Create() BookingUoW
	}

	ChatUoW interface {
		TxManager
		ChatRepoFactory
	}

	ChatUoWFactory interface {
		Create() ChatUoW
	}
)
