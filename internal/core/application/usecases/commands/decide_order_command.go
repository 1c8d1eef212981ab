package commands

import (
	"errors"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/guard"
)

var ErrDecideOrderCommandIsNotConstructed = errors.New(
	"DecideOrderCommand must be created via NewDecideOrderCommand constructor",
)

// DecideOrderCommand is a supplier accepting or rejecting an order addressed to it.
type DecideOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	supplierID kernel.UUID
	decision   Decision

	guard guard.ConstructorGuard
}

func NewDecideOrderCommand(orderID, supplierID kernel.UUID, decision Decision) (DecideOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), supplierID.Validate(), decision.Validate()); err != nil {
		return DecideOrderCommand{}, err
	}

	return DecideOrderCommand{
		orderID:    orderID,
		supplierID: supplierID,
		decision:   decision,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DecideOrderCommand) Validate() error {
	return c.guard.Validate(ErrDecideOrderCommandIsNotConstructed)
}

func (c DecideOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c DecideOrderCommand) SupplierID() kernel.UUID { return c.supplierID }
func (c DecideOrderCommand) Decision() Decision      { return c.decision }
