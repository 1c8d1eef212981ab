package commands

import (
	"context"

	"ferryops/internal/core/domain/model/order"
)

// SubmitSupplyCommandHandler records the supplier's amount and reopens finance
// review. Orders that are not approved or not owned are reported as not found.
type SubmitSupplyCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSubmitSupplyCommandHandler(uowFactory OrderUoWFactory) SubmitSupplyCommandHandler {
	return SubmitSupplyCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h SubmitSupplyCommandHandler) Handle(ctx context.Context, cmd SubmitSupplyCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), "supply", ownedBy(cmd.SupplierID(), func(o *order.Order) error {
		return o.SubmitSupply(cmd.Amount())
	}))
	if err != nil {
		return nil, hideState(cmd.OrderID(), err)
	}
	return o, nil
}
