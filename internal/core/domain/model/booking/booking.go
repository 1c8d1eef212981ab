// Package booking models passenger, vehicle and cargo reservations and their
// payment review by finance.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
)

var ErrBookingIsNotConstructed = errors.New("Booking must be created via NewBooking constructor")

// Trip describes what is booked and when.
type Trip struct {
	Type             Type
	TravelDate       time.Time
	TravelTime       string
	Route            string
	NumPassengers    *int
	VehicleType      string
	VehiclePlate     string
	CargoDescription string
	CargoWeightKg    *float64
}

// Payment is what the traveller declared at booking time.
type Payment struct {
	AmountPaid    kernel.Money
	Method        PaymentMethod
	TransactionID string
}

// Booking is the aggregate root of the reservation lifecycle.
type Booking struct {
	id            kernel.UUID
	userID        kernel.UUID
	trip          Trip
	payment       Payment
	paymentStatus PaymentStatus
	status        Status
	ferryName     *string
	createdAt     time.Time
	version       int

	isConstructed bool
}

// NewBooking creates a pending booking. A non-zero amount counts as paid until
// finance reviews it.
func NewBooking(id, userID kernel.UUID, trip Trip, payment Payment, createdAt time.Time) (*Booking, error) {
	paymentStatus := PaymentPending
	if payment.AmountPaid.IsPositive() {
		paymentStatus = PaymentPaid
	}
	if payment.Method == PaymentMethodUnknown {
		payment.Method = PaymentMethodMpesa
	}

	return RestoreBooking(Snapshot{
		ID:            id,
		UserID:        userID,
		Trip:          trip,
		Payment:       payment,
		PaymentStatus: paymentStatus,
		Status:        StatusPending,
		CreatedAt:     createdAt.UTC(),
	})
}

// Snapshot is the flat state of a Booking used by persistence adapters.
type Snapshot struct {
	ID            kernel.UUID
	UserID        kernel.UUID
	Trip          Trip
	Payment       Payment
	PaymentStatus PaymentStatus
	Status        Status
	FerryName     *string
	CreatedAt     time.Time
	Version       int
}

func RestoreBooking(s Snapshot) (*Booking, error) {
	s.Trip.TravelTime = strings.TrimSpace(s.Trip.TravelTime)
	s.Trip.Route = strings.TrimSpace(s.Trip.Route)
	s.Trip.VehicleType = strings.TrimSpace(s.Trip.VehicleType)
	s.Trip.VehiclePlate = strings.TrimSpace(s.Trip.VehiclePlate)
	s.Trip.CargoDescription = strings.TrimSpace(s.Trip.CargoDescription)
	s.Payment.TransactionID = strings.TrimSpace(s.Payment.TransactionID)

	if err := errors.Join(
		s.ID.Validate(),
		validateUser(s.UserID),
		validateTrip(s.Trip),
		s.Payment.Method.Validate(),
		s.PaymentStatus.Validate(),
		s.Status.Validate(),
		validateFerry(s.Status, s.FerryName),
	); err != nil {
		return nil, err
	}

	return &Booking{
		id:            s.ID,
		userID:        s.UserID,
		trip:          s.Trip,
		payment:       s.Payment,
		paymentStatus: s.PaymentStatus,
		status:        s.Status,
		ferryName:     s.FerryName,
		createdAt:     s.CreatedAt,
		version:       s.Version,
		isConstructed: true,
	}, nil
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:            b.id,
		UserID:        b.userID,
		Trip:          b.trip,
		Payment:       b.payment,
		PaymentStatus: b.paymentStatus,
		Status:        b.status,
		FerryName:     b.ferryName,
		CreatedAt:     b.createdAt,
		Version:       b.version,
	}
}

func (b *Booking) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBookingIsNotConstructed
	}
	return nil
}

func (b *Booking) ID() kernel.UUID              { return b.id }
func (b *Booking) UserID() kernel.UUID          { return b.userID }
func (b *Booking) Trip() Trip                   { return b.trip }
func (b *Booking) Payment() Payment             { return b.payment }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) FerryName() *string           { return b.ferryName }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) Version() int                 { return b.version }
func (b *Booking) BumpVersion()                 { b.version++ }

func (b *Booking) IsOwnedBy(userID kernel.UUID) bool {
	return b.userID.IsEqual(userID)
}

// ReceiptAvailable reports whether a receipt may be issued: the booking is
// approved or assigned and its payment was accepted.
func (b *Booking) ReceiptAvailable() bool {
	return b.status.IsConfirmed() && b.paymentStatus == PaymentPaid
}

// ApprovePayment marks the payment as paid.
func (b *Booking) ApprovePayment() {
	b.paymentStatus = PaymentPaid
}

// RejectPayment marks the payment as rejected.
func (b *Booking) RejectPayment() {
	b.paymentStatus = PaymentRejected
}

// Approve moves a pending booking to approved. Approving twice is a no-op.
func (b *Booking) Approve() error {
	switch b.status {
	case StatusApproved:
		return nil
	case StatusPending:
		b.status = StatusApproved
		return nil
	default:
		return errs.NewInvalidStateError("booking", "approve", b.status.String())
	}
}

// AssignFerry places an approved booking on a ferry.
func (b *Booking) AssignFerry(ferryName string) error {
	ferryName = strings.TrimSpace(ferryName)
	if ferryName == "" {
		return errs.NewValueIsRequiredError("ferry_name")
	}
	if b.status != StatusApproved {
		return errs.NewInvalidStateError("booking", "assign ferry to", b.status.String())
	}
	b.status = StatusAssigned
	b.ferryName = &ferryName
	return nil
}

// Cancel withdraws the booking. Returns false when it was already cancelled.
func (b *Booking) Cancel() (bool, error) {
	switch b.status {
	case StatusCancelled:
		return false, nil
	case StatusPending, StatusApproved, StatusAssigned:
		b.status = StatusCancelled
		return true, nil
	default:
		return false, errs.NewInvalidStateError("booking", "cancel", b.status.String())
	}
}

// Complete closes an assigned booking after the ferry has left.
func (b *Booking) Complete() error {
	if b.status != StatusAssigned {
		return errs.NewInvalidStateError("booking", "complete", b.status.String())
	}
	b.status = StatusCompleted
	return nil
}

func validateUser(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user_id", err)
	}
	return nil
}

func validateTrip(t Trip) error {
	var errList []error
	if err := t.Type.Validate(); err != nil {
		errList = append(errList, err)
	}
	if t.TravelDate.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("travel_date"))
	}
	if t.TravelTime == "" {
		errList = append(errList, errs.NewValueIsRequiredError("travel_time"))
	}
	if t.Route == "" {
		errList = append(errList, errs.NewValueIsRequiredError("route"))
	}
	if t.NumPassengers != nil && *t.NumPassengers < 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"num_passengers is invalid", fmt.Errorf("%d is less than 1", *t.NumPassengers)))
	}
	if t.CargoWeightKg != nil && *t.CargoWeightKg < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"cargo_weight_kg is invalid", fmt.Errorf("%v is less than 0", *t.CargoWeightKg)))
	}

	switch t.Type {
	case TypePassenger:
		if t.NumPassengers == nil {
			errList = append(errList, errs.NewValueIsRequiredError("num_passengers"))
		}
	case TypeVehicle:
		if t.VehiclePlate == "" {
			errList = append(errList, errs.NewValueIsRequiredError("vehicle_plate"))
		}
	case TypeCargo:
		if t.CargoDescription == "" {
			errList = append(errList, errs.NewValueIsRequiredError("cargo_description"))
		}
	}

	return errors.Join(errList...)
}

func validateFerry(s Status, ferryName *string) error {
	if s == StatusAssigned && (ferryName == nil || *ferryName == "") {
		return errs.NewValueIsRequiredErrorWithCause("ferry_name", errors.New("assigned booking has no ferry"))
	}
	return nil
}
