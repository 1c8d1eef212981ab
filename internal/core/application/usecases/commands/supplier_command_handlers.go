package commands

import (
	"context"
	"time"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/supplier"
)

type RegisterSupplierCommandHandler struct {
	uowFactory SupplierUoWFactory
}

func NewRegisterSupplierCommandHandler(uowFactory SupplierUoWFactory) RegisterSupplierCommandHandler {
	return RegisterSupplierCommandHandler{uowFactory: uowFactory}
}

func (h RegisterSupplierCommandHandler) Handle(ctx context.Context, cmd RegisterSupplierCommand) (*supplier.Supplier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := supplier.NewSupplier(kernel.NewUUID(), cmd.Name(), cmd.Email(), cmd.Phone(), cmd.Address(), time.Now())
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

	if err = uow.SupplierRepository().Add(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

type ChangeSupplierStatusCommandHandler struct {
	uowFactory SupplierUoWFactory
}

func NewChangeSupplierStatusCommandHandler(uowFactory SupplierUoWFactory) ChangeSupplierStatusCommandHandler {
	return ChangeSupplierStatusCommandHandler{uowFactory: uowFactory}
}

func (h ChangeSupplierStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeSupplierStatusCommand,
) (*supplier.Supplier, error) {
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

	repo := uow.SupplierRepository()
	s, err := repo.Get(ctx, cmd.SupplierID())
	if err != nil {
		return nil, err
	}

	if cmd.Action() == SupplierActionActivate {
		err = s.Activate()
	} else {
		err = s.Suspend()
	}
	if err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, s); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
