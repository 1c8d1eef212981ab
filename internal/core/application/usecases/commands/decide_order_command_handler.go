package commands

import (
	"context"

	"ferryops/internal/core/domain/model/order"
)

// DecideOrderCommandHandler applies a supplier's accept/reject. An order that
// is not pending or not owned by the caller is reported as not found.
type DecideOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDecideOrderCommandHandler(uowFactory OrderUoWFactory) DecideOrderCommandHandler {
	return DecideOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h DecideOrderCommandHandler) Handle(ctx context.Context, cmd DecideOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	decide, operation := (*order.Order).Accept, "accept"
	if cmd.Decision() == DecisionReject {
		decide, operation = (*order.Order).Reject, "reject"
	}

	o, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), operation, ownedBy(cmd.SupplierID(), decide))
	if err != nil {
		return nil, hideState(cmd.OrderID(), err)
	}
	return o, nil
}
