package commands

import (
	"context"

	"ferryops/internal/core/domain/model/order"
)

// DecideFinanceCommandHandler sets finance_status regardless of the other axes.
type DecideFinanceCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDecideFinanceCommandHandler(uowFactory OrderUoWFactory) DecideFinanceCommandHandler {
	return DecideFinanceCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h DecideFinanceCommandHandler) Handle(ctx context.Context, cmd DecideFinanceCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	operation := "finance_approve"
	if cmd.Decision() == DecisionReject {
		operation = "finance_reject"
	}
	return transitionOrder(ctx, h.uowFactory, cmd.OrderID(), operation, func(o *order.Order) (bool, error) {
		if cmd.Decision() == DecisionApprove {
			o.ApproveFinance()
		} else {
			o.RejectFinance()
		}
		return true, nil
	})
}
