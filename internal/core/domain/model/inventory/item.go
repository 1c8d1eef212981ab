// Package inventory holds the stocked goods that supply orders replenish.
package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a stocked good. currentStock is never edited directly; it only
// grows through the repository's atomic increment when an order is received.
type Item struct {
	id           kernel.UUID
	name         string
	category     string
	unit         string
	currentStock int
	reorderLevel int
	createdAt    time.Time

	isConstructed bool
}

// NewItem creates an item with the given opening stock.
func NewItem(id kernel.UUID, name, category, unit string, openingStock, reorderLevel int, createdAt time.Time) (*Item, error) {
	it := &Item{createdAt: createdAt.UTC(), isConstructed: true}

	if err := errors.Join(
		it.setID(id),
		it.setDetails(name, category, unit, reorderLevel),
		it.setStock(openingStock),
	); err != nil {
		return nil, err
	}
	return it, nil
}

// RestoreItem rebuilds an item from stored state.
func RestoreItem(id kernel.UUID, name, category, unit string, currentStock, reorderLevel int, createdAt time.Time) (*Item, error) {
	return NewItem(id, name, category, unit, currentStock, reorderLevel, createdAt)
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID      { return i.id }
func (i *Item) Name() string         { return i.name }
func (i *Item) Category() string     { return i.category }
func (i *Item) Unit() string         { return i.unit }
func (i *Item) CurrentStock() int    { return i.currentStock }
func (i *Item) ReorderLevel() int    { return i.reorderLevel }
func (i *Item) CreatedAt() time.Time { return i.createdAt }

// IsBelowReorderLevel reports whether the item should be restocked.
func (i *Item) IsBelowReorderLevel() bool {
	return i.currentStock <= i.reorderLevel
}

// Update edits the descriptive fields. Stock is left untouched.
func (i *Item) Update(name, category, unit string, reorderLevel int) error {
	probe := *i
	if err := probe.setDetails(name, category, unit, reorderLevel); err != nil {
		return err
	}
	*i = probe
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setDetails(name, category, unit string, reorderLevel int) error {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	unit = strings.TrimSpace(unit)

	var errList []error
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if category == "" {
		errList = append(errList, errs.NewValueIsRequiredError("category"))
	}
	if unit == "" {
		errList = append(errList, errs.NewValueIsRequiredError("unit"))
	}
	if reorderLevel < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"reorder_level is invalid", fmt.Errorf("%d is less than 0", reorderLevel)))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	i.name, i.category, i.unit, i.reorderLevel = name, category, unit, reorderLevel
	return nil
}

func (i *Item) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("current_stock is invalid", fmt.Errorf("%d is less than 0", stock))
	}
	i.currentStock = stock
	return nil
}
