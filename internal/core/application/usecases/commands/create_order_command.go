package commands

import (
	"errors"
	"fmt"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
	"ferryops/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand is inventory staff asking a supplier for a quantity of an item.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(supplierID, itemID, 10, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	supplierID kernel.UUID
	itemID     kernel.UUID
	quantity   int
	amount     *kernel.Money

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(supplierID, itemID kernel.UUID, quantity int, amount *kernel.Money) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		amount: amount,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSupplierID(supplierID),
		cmd.setItemID(itemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) SupplierID() kernel.UUID { return c.supplierID }
func (c CreateOrderCommand) ItemID() kernel.UUID     { return c.itemID }
func (c CreateOrderCommand) Quantity() int           { return c.quantity }
func (c CreateOrderCommand) Amount() *kernel.Money   { return c.amount }

func (c *CreateOrderCommand) setSupplierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("supplier_id", err)
	}
	c.supplierID = id
	return nil
}

func (c *CreateOrderCommand) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("item_id", err)
	}
	c.itemID = id
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 0", quantity))
	}
	c.quantity = quantity
	return nil
}
