package commands

import (
	"errors"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand is a supplier reporting that goods were dispatched.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	supplierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkDeliveredCommand(orderID, supplierID kernel.UUID) (MarkDeliveredCommand, error) {
	if err := errors.Join(orderID.Validate(), supplierID.Validate()); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return MarkDeliveredCommand{
		orderID:    orderID,
		supplierID: supplierID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

func (c MarkDeliveredCommand) OrderID() kernel.UUID    { return c.orderID }
func (c MarkDeliveredCommand) SupplierID() kernel.UUID { return c.supplierID }
