package commands

import (
	"errors"
	"fmt"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
	"ferryops/internal/pkg/guard"
)

var (
	ErrCreateItemCommandIsNotConstructed = errors.New("CreateItemCommand must be created via NewCreateItemCommand constructor")
	ErrUpdateItemCommandIsNotConstructed = errors.New("UpdateItemCommand must be created via NewUpdateItemCommand constructor")
	ErrDeleteItemCommandIsNotConstructed = errors.New("DeleteItemCommand must be created via NewDeleteItemCommand constructor")
)

// ItemDetails are the editable fields of an inventory item.
type ItemDetails struct {
	Name         string
	Category     string
	Unit         string
	ReorderLevel int
}

// CreateItemCommand registers a stocked good with its opening stock.
type CreateItemCommand struct { //nolint:recvcheck //using for validation
	details      ItemDetails
	openingStock int

	guard guard.ConstructorGuard
}

// NewCreateItemCommand checks the numeric fields; text fields are checked by
// the item itself.
func NewCreateItemCommand(details ItemDetails, openingStock int) (CreateItemCommand, error) {
	var errList []error
	if openingStock < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"current_stock", fmt.Errorf("%d is less than 0", openingStock)))
	}
	if details.ReorderLevel < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"reorder_level", fmt.Errorf("%d is less than 0", details.ReorderLevel)))
	}
	if err := errors.Join(errList...); err != nil {
		return CreateItemCommand{}, err
	}

	return CreateItemCommand{details: details, openingStock: openingStock, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateItemCommandIsNotConstructed)
}

func (c CreateItemCommand) Details() ItemDetails { return c.details }
func (c CreateItemCommand) OpeningStock() int    { return c.openingStock }

// UpdateItemCommand edits an item's descriptive fields. Stock cannot be set here.
type UpdateItemCommand struct { //nolint:recvcheck //using for validation
	itemID  kernel.UUID
	details ItemDetails

	guard guard.ConstructorGuard
}

func NewUpdateItemCommand(itemID kernel.UUID, details ItemDetails) (UpdateItemCommand, error) {
	if err := itemID.Validate(); err != nil {
		return UpdateItemCommand{}, err
	}
	return UpdateItemCommand{itemID: itemID, details: details, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateItemCommandIsNotConstructed)
}

func (c UpdateItemCommand) ItemID() kernel.UUID  { return c.itemID }
func (c UpdateItemCommand) Details() ItemDetails { return c.details }

type DeleteItemCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteItemCommand(itemID kernel.UUID) (DeleteItemCommand, error) {
	if err := itemID.Validate(); err != nil {
		return DeleteItemCommand{}, err
	}
	return DeleteItemCommand{itemID: itemID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteItemCommand) Validate() error {
	return c.guard.Validate(ErrDeleteItemCommandIsNotConstructed)
}

func (c DeleteItemCommand) ItemID() kernel.UUID { return c.itemID }
