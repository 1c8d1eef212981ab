package commands

import (
	"context"
	"time"

	"ferryops/internal/core/domain/model/order"
)

// MarkDeliveredCommandHandler moves delivery_status from pending to delivered.
// It does not wait for finance approval.
type MarkDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewMarkDeliveredCommandHandler(uowFactory OrderUoWFactory) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), "mark_delivered", ownedBy(cmd.SupplierID(), func(o *order.Order) error {
		return o.MarkDelivered(time.Now())
	}))
	if err != nil {
		return nil, hideState(cmd.OrderID(), err)
	}
	return o, nil
}
