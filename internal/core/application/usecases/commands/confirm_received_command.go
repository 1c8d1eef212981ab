package commands

import (
	"errors"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/guard"
)

var ErrConfirmReceivedCommandIsNotConstructed = errors.New(
	"ConfirmReceivedCommand must be created via NewConfirmReceivedCommand constructor",
)

// ConfirmReceivedCommand is inventory acknowledging physical receipt.
type ConfirmReceivedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmReceivedCommand(orderID kernel.UUID) (ConfirmReceivedCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmReceivedCommand{}, err
	}

	return ConfirmReceivedCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmReceivedCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceivedCommandIsNotConstructed)
}

func (c ConfirmReceivedCommand) OrderID() kernel.UUID { return c.orderID }
