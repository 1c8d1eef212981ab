package commands

import (
	"errors"
	"fmt"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
	"ferryops/internal/pkg/guard"
)

var ErrSubmitSupplyCommandIsNotConstructed = errors.New(
	"SubmitSupplyCommand must be created via NewSubmitSupplyCommand constructor",
)

// SubmitSupplyCommand is a supplier quoting the amount for an accepted order.
type SubmitSupplyCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	supplierID kernel.UUID
	amount     kernel.Money

	guard guard.ConstructorGuard
}

// NewSubmitSupplyCommand requires a positive amount; nil means the client sent none.
func NewSubmitSupplyCommand(orderID, supplierID kernel.UUID, amount *kernel.Money) (SubmitSupplyCommand, error) {
	cmd := SubmitSupplyCommand{guard: guard.NewConstructorGuard()}

	var amountErr error
	switch {
	case amount == nil:
		amountErr = errs.NewValueIsRequiredError("amount")
	case !amount.IsPositive():
		amountErr = errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	default:
		cmd.amount = *amount
	}

	if err := errors.Join(orderID.Validate(), supplierID.Validate(), amountErr); err != nil {
		return SubmitSupplyCommand{}, err
	}

	cmd.orderID = orderID
	cmd.supplierID = supplierID
	return cmd, nil
}

func (c SubmitSupplyCommand) Validate() error {
	return c.guard.Validate(ErrSubmitSupplyCommandIsNotConstructed)
}

func (c SubmitSupplyCommand) OrderID() kernel.UUID    { return c.orderID }
func (c SubmitSupplyCommand) SupplierID() kernel.UUID { return c.supplierID }
func (c SubmitSupplyCommand) Amount() kernel.Money    { return c.amount }
