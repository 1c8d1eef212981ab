package commands

import (
	"context"
	"time"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/order"
)

// CreateOrderCommandHandler creates a pending order after checking that the
// supplier and item exist, snapshotting their current names.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns errs.ErrObjectNotFound when the supplier or item is unknown.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	s, err := uow.SupplierRepository().Get(ctx, cmd.SupplierID())
	if err != nil {
		return nil, err
	}

	item, err := uow.ItemRepository().Get(ctx, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		s.ID(), item.ID(),
		s.Name(), item.Name(),
		cmd.Quantity(), cmd.Amount(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
