package commands

import (
	"context"
	"time"

	"ferryops/internal/core/domain/model/inventory"
	"ferryops/internal/core/domain/model/kernel"
)

type CreateItemCommandHandler struct {
	uowFactory InventoryUoWFactory
}

func NewCreateItemCommandHandler(uowFactory InventoryUoWFactory) CreateItemCommandHandler {
	return CreateItemCommandHandler{uowFactory: uowFactory}
}

func (h CreateItemCommandHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*inventory.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	d := cmd.Details()
	item, err := inventory.NewItem(kernel.NewUUID(), d.Name, d.Category, d.Unit, cmd.OpeningStock(), d.ReorderLevel, time.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ItemRepository().Add(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}

type UpdateItemCommandHandler struct {
	uowFactory InventoryUoWFactory
}

func NewUpdateItemCommandHandler(uowFactory InventoryUoWFactory) UpdateItemCommandHandler {
	return UpdateItemCommandHandler{uowFactory: uowFactory}
}

func (h UpdateItemCommandHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*inventory.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ItemRepository()
	item, err := repo.Get(ctx, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	d := cmd.Details()
	if err = item.Update(d.Name, d.Category, d.Unit, d.ReorderLevel); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, item); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}

type DeleteItemCommandHandler struct {
	uowFactory InventoryUoWFactory
}

func NewDeleteItemCommandHandler(uowFactory InventoryUoWFactory) DeleteItemCommandHandler {
	return DeleteItemCommandHandler{uowFactory: uowFactory}
}

// Handle removes the item. Existing orders keep their item_name snapshot.
func (h DeleteItemCommandHandler) Handle(ctx context.Context, cmd DeleteItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ItemRepository().Delete(ctx, cmd.ItemID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
