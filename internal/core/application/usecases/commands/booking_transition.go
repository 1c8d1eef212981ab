package commands

import (
	"context"
	"errors"

	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
	"ferryops/internal/pkg/metrics"
)

type bookingMutation func(b *booking.Booking) (bool, error)

// transitionBooking is the booking counterpart of transitionOrder.
func transitionBooking(
	ctx context.Context,
	f BookingUoWFactory,
	id kernel.UUID,
	operation string,
	mutate bookingMutation,
) (*booking.Booking, error) {
	var err error
	for range transitionAttempts {
		var b *booking.Booking
		b, err = applyBookingMutation(ctx, f, id, operation, mutate)
		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return b, err
		}
	}
	return nil, err
}

func applyBookingMutation(
	ctx context.Context,
	f BookingUoWFactory,
	id kernel.UUID,
	operation string,
	mutate bookingMutation,
) (*booking.Booking, error) {
	uow := f.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.BookingRepository()
	b, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := mutate(b)
	if err != nil {
		return nil, err
	}
	if !changed {
		return b, nil
	}

	if err = repo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.BookingTransitions.WithLabelValues(operation).Inc()
	return b, nil
}
