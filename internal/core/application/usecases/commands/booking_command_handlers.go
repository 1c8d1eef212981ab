package commands

import (
	"context"
	"time"

	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"

	"go.uber.org/zap"
)

type CreateBookingCommandHandler struct {
	uowFactory BookingUoWFactory
}

func NewCreateBookingCommandHandler(uowFactory BookingUoWFactory) CreateBookingCommandHandler {
	return CreateBookingCommandHandler{uowFactory: uowFactory}
}

func (h CreateBookingCommandHandler) Handle(ctx context.Context, cmd CreateBookingCommand) (*booking.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	b, err := booking.NewBooking(kernel.NewUUID(), cmd.UserID(), cmd.Trip(), cmd.Payment(), time.Now())
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

	if err = uow.BookingRepository().Add(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

type DecidePaymentCommandHandler struct {
	uowFactory BookingUoWFactory
}

func NewDecidePaymentCommandHandler(uowFactory BookingUoWFactory) DecidePaymentCommandHandler {
	return DecidePaymentCommandHandler{uowFactory: uowFactory}
}

func (h DecidePaymentCommandHandler) Handle(ctx context.Context, cmd DecidePaymentCommand) (*booking.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	operation := "payment_approve"
	if cmd.Decision() == DecisionReject {
		operation = "payment_reject"
	}
	return transitionBooking(ctx, h.uowFactory, cmd.BookingID(), operation, func(b *booking.Booking) (bool, error) {
		if cmd.Decision() == DecisionApprove {
			b.ApprovePayment()
		} else {
			b.RejectPayment()
		}
		return true, nil
	})
}

type ApproveBookingCommandHandler struct {
	uowFactory BookingUoWFactory
}

func NewApproveBookingCommandHandler(uowFactory BookingUoWFactory) ApproveBookingCommandHandler {
	return ApproveBookingCommandHandler{uowFactory: uowFactory}
}

// Handle approves a pending booking; an approved one is returned unchanged.
func (h ApproveBookingCommandHandler) Handle(ctx context.Context, cmd ApproveBookingCommand) (*booking.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return transitionBooking(ctx, h.uowFactory, cmd.BookingID(), "approve", func(b *booking.Booking) (bool, error) {
		if b.Status() == booking.StatusApproved {
			return false, nil
		}
		return true, b.Approve()
	})
}

type AssignFerryCommandHandler struct {
	uowFactory BookingUoWFactory
}

func NewAssignFerryCommandHandler(uowFactory BookingUoWFactory) AssignFerryCommandHandler {
	return AssignFerryCommandHandler{uowFactory: uowFactory}
}

// Handle returns errs.ErrInvalidState unless the booking is approved.
func (h AssignFerryCommandHandler) Handle(ctx context.Context, cmd AssignFerryCommand) (*booking.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return transitionBooking(ctx, h.uowFactory, cmd.BookingID(), "assign_ferry", func(b *booking.Booking) (bool, error) {
		return true, b.AssignFerry(cmd.FerryName())
	})
}

type CancelBookingCommandHandler struct {
	uowFactory BookingUoWFactory
}

func NewCancelBookingCommandHandler(uowFactory BookingUoWFactory) CancelBookingCommandHandler {
	return CancelBookingCommandHandler{uowFactory: uowFactory}
}

// Handle cancels the caller's booking. Bookings of other users are reported
// as not found.
func (h CancelBookingCommandHandler) Handle(ctx context.Context, cmd CancelBookingCommand) (*booking.Booking, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return transitionBooking(ctx, h.uowFactory, cmd.BookingID(), "cancel", func(b *booking.Booking) (bool, error) {
		if !b.IsOwnedBy(cmd.UserID()) {
			return false, errs.NewObjectNotFoundError("booking", b.ID().String())
		}
		return b.Cancel()
	})
}

// CompleteDepartedBookingsCommandHandler closes assigned bookings once their
// ferry has left. Each booking is completed in its own transaction, so one
// failure does not hold back the rest.
type CompleteDepartedBookingsCommandHandler struct {
	uowFactory BookingUoWFactory
	logger     *zap.Logger
}

func NewCompleteDepartedBookingsCommandHandler(
	uowFactory BookingUoWFactory,
	logger *zap.Logger,
) CompleteDepartedBookingsCommandHandler {
	return CompleteDepartedBookingsCommandHandler{uowFactory: uowFactory, logger: logger}
}

// Handle returns the number of bookings completed.
func (h CompleteDepartedBookingsCommandHandler) Handle(ctx context.Context, cmd CompleteDepartedBookingsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	departed, err := h.uowFactory.Create().BookingRepository().GetAssignedDepartedBefore(ctx, cmd.Cutoff(), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, d := range departed {
		_, err = transitionBooking(ctx, h.uowFactory, d.ID(), "complete", func(b *booking.Booking) (bool, error) {
			return true, b.Complete()
		})
		if err != nil {
			h.logger.Warn("failed to complete departed booking",
				zap.String("booking_id", d.ID().String()),
				zap.Error(err),
			)
			continue
		}
		completed++
	}

	return completed, nil
}
