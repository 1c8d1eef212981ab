package commands

import (
	"context"
	"time"

	"ferryops/internal/core/domain/model/order"
	"ferryops/internal/pkg/metrics"

	"go.uber.org/zap"
)

// ConfirmReceivedResult carries the order and whether the call found it
// already received.
type ConfirmReceivedResult struct {
	Order           *order.Order
	AlreadyReceived bool
}

// ConfirmReceivedCommandHandler moves delivery_status from delivered to
// received and then adds the order quantity to the item's stock.
//
// The status change and the stock increment are two separate steps. The
// status change is a version-checked write; the increment runs after commit
// and its failure is logged and counted but never returned, so the order
// stays received. A repeated or concurrent confirmation observes received and
// does not increment again.
type ConfirmReceivedCommandHandler struct {
	uowFactory OrderUoWFactory
	logger     *zap.Logger
}

func NewConfirmReceivedCommandHandler(uowFactory OrderUoWFactory, logger *zap.Logger) ConfirmReceivedCommandHandler {
	return ConfirmReceivedCommandHandler{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Handle returns errs.ErrInvalidState when the order was never delivered.
func (h ConfirmReceivedCommandHandler) Handle(ctx context.Context, cmd ConfirmReceivedCommand) (ConfirmReceivedResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmReceivedResult{}, err
	}

	var transitioned bool
	o, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), "confirm_received", func(o *order.Order) (bool, error) {
		changed, err := o.ConfirmReceived(time.Now())
		transitioned = changed
		return changed, err
	})
	if err != nil {
		return ConfirmReceivedResult{}, err
	}

	if transitioned {
		h.incrementStock(context.WithoutCancel(ctx), o)
	}

	return ConfirmReceivedResult{Order: o, AlreadyReceived: !transitioned}, nil
}

func (h ConfirmReceivedCommandHandler) incrementStock(ctx context.Context, o *order.Order) {
	quantity := o.StockIncrement()
	if quantity == 0 {
		return
	}

	uow := h.uowFactory.Create()
	if err := uow.ItemRepository().IncrementStock(ctx, o.ItemID(), quantity); err != nil {
		metrics.StockIncrementFailures.Inc()
		h.logger.Error("stock increment after receipt failed",
			zap.String("order_id", o.ID().String()),
			zap.String("item_id", o.ItemID().String()),
			zap.Int("quantity", quantity),
			zap.Error(err),
		)
		return
	}

	h.logger.Info("stock incremented after receipt",
		zap.String("order_id", o.ID().String()),
		zap.String("item_id", o.ItemID().String()),
		zap.Int("quantity", quantity),
	)
}
