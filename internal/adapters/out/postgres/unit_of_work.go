// Package postgres implements the unit of work and repositories on GORM.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// after Begin run inside that transaction; repositories obtained without Begin
// run each statement on its own. Every aggregate written through a repository
// is tracked, and after a successful Commit the tracked aggregates are handed
// to the registered commit listeners (event publishing).
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"ferryops/internal/adapters/out/postgres/bookingrepo"
	"ferryops/internal/adapters/out/postgres/chatrepo"
	"ferryops/internal/adapters/out/postgres/itemrepo"
	"ferryops/internal/adapters/out/postgres/orderrepo"
	"ferryops/internal/adapters/out/postgres/supplierrepo"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates a fresh UnitOfWork per business operation.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	listeners []ports.CommitListener
}

func NewGormUnitOfWorkFactory(db *gorm.DB, listeners ...ports.CommitListener) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, listeners: listeners}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		listeners:         f.listeners,
		trackedAggregates: make([]ports.TrackedAggregate, 0),
	}
}

// GormUnitOfWork is not safe for concurrent use; create one per goroutine.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	listeners         []ports.CommitListener
	trackedAggregates []ports.TrackedAggregate
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and notifies listeners with the aggregates
// written through it. Listeners are not called when the commit fails.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	committed := uow.trackedAggregates
	uow.trackedAggregates = make([]ports.TrackedAggregate, 0)
	if len(committed) > 0 {
		for _, l := range uow.listeners {
			l.AggregatesCommitted(context.WithoutCancel(ctx), committed)
		}
	}

	return nil
}

// Rollback discards the transaction. Returns gorm.ErrInvalidTransaction when
// none is open, which deferred rollbacks after Commit ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ItemRepository() ports.ItemRepository {
	return itemrepo.NewGormItemRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SupplierRepository() ports.SupplierRepository {
	return supplierrepo.NewGormSupplierRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) BookingRepository() ports.BookingRepository {
	return bookingrepo.NewGormBookingRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ChatMessageRepository() ports.ChatMessageRepository {
	return chatrepo.NewGormChatMessageRepository(uow.conn())
}

// TrackAggregate records an aggregate written within this unit of work. Writes
// made outside a transaction are not tracked since no commit follows them.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	if uow.tx == nil {
		return
	}
	uow.trackedAggregates = append(uow.trackedAggregates, ports.TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
