package commands

import (
	"errors"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/guard"
)

var ErrDecideFinanceCommandIsNotConstructed = errors.New(
	"DecideFinanceCommand must be created via NewDecideFinanceCommand constructor",
)

// DecideFinanceCommand is finance approving or rejecting an order's amount.
type DecideFinanceCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	decision Decision

	guard guard.ConstructorGuard
}

func NewDecideFinanceCommand(orderID kernel.UUID, decision Decision) (DecideFinanceCommand, error) {
	if err := errors.Join(orderID.Validate(), decision.Validate()); err != nil {
		return DecideFinanceCommand{}, err
	}

	return DecideFinanceCommand{
		orderID:  orderID,
		decision: decision,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c DecideFinanceCommand) Validate() error {
	return c.guard.Validate(ErrDecideFinanceCommandIsNotConstructed)
}

func (c DecideFinanceCommand) OrderID() kernel.UUID { return c.orderID }
func (c DecideFinanceCommand) Decision() Decision   { return c.decision }
