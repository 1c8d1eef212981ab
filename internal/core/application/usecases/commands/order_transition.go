package commands

import (
	"context"
	"errors"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/order"
	"ferryops/internal/pkg/errs"
	"ferryops/internal/pkg/metrics"
)

// transitionAttempts bounds how often a transition is re-evaluated after
// losing a conditional write to a concurrent writer.
const transitionAttempts = 2

// orderMutation changes a freshly read order. It reports false when there is
// nothing to write.
type orderMutation func(o *order.Order) (bool, error)

// transitionOrder reads the order, applies mutate and writes it back with a
// version check, all in one transaction. On a version conflict the whole
// read-evaluate-write cycle runs once more against the fresh row.
func transitionOrder(
	ctx context.Context,
	f OrderUoWFactory,
	id kernel.UUID,
	operation string,
	mutate orderMutation,
) (*order.Order, error) {
	var err error
	for range transitionAttempts {
		var o *order.Order
		o, err = applyOrderMutation(ctx, f, id, operation, mutate)
		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return o, err
		}
		metrics.OrderVersionConflicts.Inc()
	}
	return nil, err
}

func applyOrderMutation(
	ctx context.Context,
	f OrderUoWFactory,
	id kernel.UUID,
	operation string,
	mutate orderMutation,
) (*order.Order, error) {
	uow := f.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := mutate(o)
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrderTransitions.WithLabelValues(operation).Inc()
	return o, nil
}

// ownedBy wraps a supplier-side mutation with the ownership check. Orders of
// other suppliers look exactly like missing ones.
func ownedBy(supplierID kernel.UUID, mutate func(o *order.Order) error) orderMutation {
	return func(o *order.Order) (bool, error) {
		if !o.IsOwnedBy(supplierID) {
			return false, errs.NewObjectNotFoundError("order", o.ID().String())
		}
		if err := mutate(o); err != nil {
			return false, err
		}
		return true, nil
	}
}

// hideState turns a failed state precondition into NotFound, so a supplier
// cannot tell a foreign order from one in the wrong state.
func hideState(id kernel.UUID, err error) error {
	if errors.Is(err, errs.ErrInvalidState) {
		return errs.NewObjectNotFoundErrorWithCause("order", id.String(), err)
	}
	return err
}
