package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
	"ferryops/internal/pkg/guard"
)

var (
	ErrCreateBookingCommandIsNotConstructed = errors.New(
		"CreateBookingCommand must be created via NewCreateBookingCommand constructor")
	ErrDecidePaymentCommandIsNotConstructed = errors.New(
		"DecidePaymentCommand must be created via NewDecidePaymentCommand constructor")
	ErrApproveBookingCommandIsNotConstructed = errors.New(
		"ApproveBookingCommand must be created via NewApproveBookingCommand constructor")
	ErrAssignFerryCommandIsNotConstructed = errors.New(
		"AssignFerryCommand must be created via NewAssignFerryCommand constructor")
	ErrCancelBookingCommandIsNotConstructed = errors.New(
		"CancelBookingCommand must be created via NewCancelBookingCommand constructor")
	ErrCompleteDepartedBookingsCommandIsNotConstructed = errors.New(
		"CompleteDepartedBookingsCommand must be created via NewCompleteDepartedBookingsCommand constructor")
)

// CreateBookingCommand is a passenger reserving a crossing.
type CreateBookingCommand struct { //nolint:recvcheck //using for validation
	userID  kernel.UUID
	trip    booking.Trip
	payment booking.Payment

	guard guard.ConstructorGuard
}

// NewCreateBookingCommand checks the caller; trip and payment rules are
// enforced by the booking itself.
func NewCreateBookingCommand(userID kernel.UUID, trip booking.Trip, payment booking.Payment) (CreateBookingCommand, error) {
	if err := userID.Validate(); err != nil {
		return CreateBookingCommand{}, errs.NewValueIsRequiredErrorWithCause("user_id", err)
	}
	return CreateBookingCommand{userID: userID, trip: trip, payment: payment, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateBookingCommand) Validate() error {
	return c.guard.Validate(ErrCreateBookingCommandIsNotConstructed)
}

func (c CreateBookingCommand) UserID() kernel.UUID      { return c.userID }
func (c CreateBookingCommand) Trip() booking.Trip       { return c.trip }
func (c CreateBookingCommand) Payment() booking.Payment { return c.payment }

// DecidePaymentCommand is finance accepting or rejecting a booking payment.
type DecidePaymentCommand struct { //nolint:recvcheck //using for validation
	bookingID kernel.UUID
	decision  Decision

	guard guard.ConstructorGuard
}

func NewDecidePaymentCommand(bookingID kernel.UUID, decision Decision) (DecidePaymentCommand, error) {
	if err := errors.Join(bookingID.Validate(), decision.Validate()); err != nil {
		return DecidePaymentCommand{}, err
	}
	return DecidePaymentCommand{bookingID: bookingID, decision: decision, guard: guard.NewConstructorGuard()}, nil
}

func (c DecidePaymentCommand) Validate() error {
	return c.guard.Validate(ErrDecidePaymentCommandIsNotConstructed)
}

func (c DecidePaymentCommand) BookingID() kernel.UUID { return c.bookingID }
func (c DecidePaymentCommand) Decision() Decision     { return c.decision }

type ApproveBookingCommand struct { //nolint:recvcheck //using for validation
	bookingID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveBookingCommand(bookingID kernel.UUID) (ApproveBookingCommand, error) {
	if err := bookingID.Validate(); err != nil {
		return ApproveBookingCommand{}, err
	}
	return ApproveBookingCommand{bookingID: bookingID, guard: guard.NewConstructorGuard()}, nil
}

func (c ApproveBookingCommand) Validate() error {
	return c.guard.Validate(ErrApproveBookingCommandIsNotConstructed)
}

func (c ApproveBookingCommand) BookingID() kernel.UUID { return c.bookingID }

// AssignFerryCommand places an approved booking on a named ferry.
type AssignFerryCommand struct { //nolint:recvcheck //using for validation
	bookingID kernel.UUID
	ferryName string

	guard guard.ConstructorGuard
}

func NewAssignFerryCommand(bookingID kernel.UUID, ferryName string) (AssignFerryCommand, error) {
	var nameErr error
	ferryName = strings.TrimSpace(ferryName)
	if ferryName == "" {
		nameErr = errs.NewValueIsRequiredError("ferry_name")
	}
	if err := errors.Join(bookingID.Validate(), nameErr); err != nil {
		return AssignFerryCommand{}, err
	}
	return AssignFerryCommand{bookingID: bookingID, ferryName: ferryName, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignFerryCommand) Validate() error {
	return c.guard.Validate(ErrAssignFerryCommandIsNotConstructed)
}

func (c AssignFerryCommand) BookingID() kernel.UUID { return c.bookingID }
func (c AssignFerryCommand) FerryName() string      { return c.ferryName }

// CancelBookingCommand is a passenger withdrawing their own booking.
type CancelBookingCommand struct { //nolint:recvcheck //using for validation
	bookingID kernel.UUID
	userID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelBookingCommand(bookingID, userID kernel.UUID) (CancelBookingCommand, error) {
	if err := errors.Join(bookingID.Validate(), userID.Validate()); err != nil {
		return CancelBookingCommand{}, err
	}
	return CancelBookingCommand{bookingID: bookingID, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelBookingCommand) Validate() error {
	return c.guard.Validate(ErrCancelBookingCommandIsNotConstructed)
}

func (c CancelBookingCommand) BookingID() kernel.UUID { return c.bookingID }
func (c CancelBookingCommand) UserID() kernel.UUID    { return c.userID }

// CompleteDepartedBookingsCommand closes assigned bookings whose travel date
// is before the cutoff, up to batchSize of them.
type CompleteDepartedBookingsCommand struct { //nolint:recvcheck //using for validation
	cutoff    time.Time
	batchSize int

	guard guard.ConstructorGuard
}

func NewCompleteDepartedBookingsCommand(cutoff time.Time, batchSize int) (CompleteDepartedBookingsCommand, error) {
	var errList []error
	if cutoff.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("cutoff"))
	}
	if batchSize <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"batch_size", fmt.Errorf("%d is not greater than 0", batchSize)))
	}
	if err := errors.Join(errList...); err != nil {
		return CompleteDepartedBookingsCommand{}, err
	}
	return CompleteDepartedBookingsCommand{cutoff: cutoff, batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteDepartedBookingsCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDepartedBookingsCommandIsNotConstructed)
}

func (c CompleteDepartedBookingsCommand) Cutoff() time.Time { return c.cutoff }
func (c CompleteDepartedBookingsCommand) BatchSize() int    { return c.batchSize }
