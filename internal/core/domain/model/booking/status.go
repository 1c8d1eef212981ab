package booking

import (
	"fmt"
	"strings"

	"ferryops/internal/pkg/errs"
)

// Type is what travels on the ferry.
type Type int

const (
	TypeUnknown Type = iota
	TypePassenger
	TypeVehicle
	TypeCargo
)

// PaymentMethod is how the traveller paid.
type PaymentMethod int

const (
	PaymentMethodUnknown PaymentMethod = iota
	PaymentMethodMpesa
	PaymentMethodCard
	PaymentMethodCash
	PaymentMethodBank
)

// PaymentStatus is finance's view of the payment. Finance may overwrite it at
// any time.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota
	PaymentPending
	PaymentPaid
	PaymentRejected
)

// Status is the booking lifecycle.
//
//	Pending ──approve──> Approved ──assign ferry──> Assigned ──depart──> Completed
//	   └───────────────────┴──────────cancel────────────┴──> Cancelled
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusApproved
	StatusAssigned
	StatusCancelled
	StatusCompleted
)

var (
	typeNames = map[Type]string{
		TypePassenger: "passenger",
		TypeVehicle:   "vehicle",
		TypeCargo:     "cargo",
	}
	methodNames = map[PaymentMethod]string{
		PaymentMethodMpesa: "mpesa",
		PaymentMethodCard:  "card",
		PaymentMethodCash:  "cash",
		PaymentMethodBank:  "bank",
	}
	paymentNames = map[PaymentStatus]string{
		PaymentPending:  "pending",
		PaymentPaid:     "paid",
		PaymentRejected: "rejected",
	}
	statusNames = map[Status]string{
		StatusPending:   "pending",
		StatusApproved:  "approved",
		StatusAssigned:  "assigned",
		StatusCancelled: "cancelled",
		StatusCompleted: "completed",
	}
)

func lookup[T comparable](names map[T]string, v T) string {
	if str, ok := names[v]; ok {
		return str
	}
	return "unknown"
}

func parse[T comparable](names map[T]string, param, s string) (T, error) {
	for k, v := range names {
		if strings.EqualFold(v, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	var zero T
	return zero, errs.NewValueIsInvalidErrorWithCause(param+" is invalid", fmt.Errorf("%q is not a valid %s", s, param))
}

func validate[T comparable](names map[T]string, param string, v T) error {
	if _, ok := names[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(param+" is invalid", fmt.Errorf("%v is not a valid %s", v, param))
	}
	return nil
}

func (t Type) String() string          { return lookup(typeNames, t) }
func (m PaymentMethod) String() string { return lookup(methodNames, m) }
func (p PaymentStatus) String() string { return lookup(paymentNames, p) }
func (s Status) String() string        { return lookup(statusNames, s) }

func (t Type) Validate() error          { return validate(typeNames, "booking_type", t) }
func (m PaymentMethod) Validate() error { return validate(methodNames, "payment_method", m) }
func (p PaymentStatus) Validate() error { return validate(paymentNames, "payment_status", p) }
func (s Status) Validate() error        { return validate(statusNames, "booking_status", s) }

func ParseType(s string) (Type, error) { return parse(typeNames, "booking_type", s) }

// ParsePaymentMethod defaults an empty value to mpesa.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if strings.TrimSpace(s) == "" {
		return PaymentMethodMpesa, nil
	}
	return parse(methodNames, "payment_method", s)
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	return parse(paymentNames, "payment_status", s)
}

func ParseStatus(s string) (Status, error) { return parse(statusNames, "booking_status", s) }

// IsConfirmed reports whether a receipt may be produced for this status.
func (s Status) IsConfirmed() bool {
	return s == StatusApproved || s == StatusAssigned
}
