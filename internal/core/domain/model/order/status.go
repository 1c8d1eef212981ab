package order

import (
	"fmt"
	"strings"

	"ferryops/internal/pkg/errs"
)

// Status is the supplier's acceptance of the request.
//
// State transitions:
//
//	Pending ──┬──> Approved
//	          └──> Rejected
//
// Rejected is terminal. Approved only moves on other axes.
type Status int

const (
	// StatusUnknown is the zero value and is never valid.
	StatusUnknown Status = iota
	StatusPending
	StatusApproved
	StatusRejected
)

// FinanceStatus is finance's decision on the supplied amount. Any decision may
// be overwritten by a later one, and SubmitSupply reopens it to pending.
type FinanceStatus int

const (
	FinanceUnknown FinanceStatus = iota
	FinancePending
	FinanceApproved
	FinanceRejected
)

// DeliveryStatus is the physical fulfillment state.
//
// State transitions:
//
//	Pending ──mark delivered──> Delivered ──confirm──> Received
//
// Received is terminal and triggers the stock increment.
type DeliveryStatus int

const (
	DeliveryUnknown DeliveryStatus = iota
	DeliveryPending
	DeliveryDelivered
	DeliveryReceived
)

var (
	statusNames = map[Status]string{
		StatusPending:  "pending",
		StatusApproved: "approved",
		StatusRejected: "rejected",
	}
	financeNames = map[FinanceStatus]string{
		FinancePending:  "pending",
		FinanceApproved: "approved",
		FinanceRejected: "rejected",
	}
	deliveryNames = map[DeliveryStatus]string{
		DeliveryPending:   "pending",
		DeliveryDelivered: "delivered",
		DeliveryReceived:  "received",
	}
)

// String returns the persisted, lowercase name, or "unknown".
func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ParseStatus maps a persisted or user-supplied name back to a Status.
// Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	for k, v := range statusNames {
		if strings.EqualFold(v, s) {
			return k, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) decide(approve bool) (Status, error) {
	if s != StatusPending {
		op := "reject"
		if approve {
			op = "accept"
		}
		return StatusUnknown, errs.NewInvalidStateError("order", op, s.String())
	}
	if approve {
		return StatusApproved, nil
	}
	return StatusRejected, nil
}

func (s FinanceStatus) String() string {
	if str, ok := financeNames[s]; ok {
		return str
	}
	return "unknown"
}

func (s FinanceStatus) Validate() error {
	if _, ok := financeNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("finance status is invalid", fmt.Errorf("%d is not a valid finance status", s))
	}
	return nil
}

func ParseFinanceStatus(s string) (FinanceStatus, error) {
	for k, v := range financeNames {
		if strings.EqualFold(v, s) {
			return k, nil
		}
	}
	return FinanceUnknown, errs.NewValueIsInvalidErrorWithCause(
		"finance status is invalid",
		fmt.Errorf("%q is not a valid finance status", s),
	)
}

func (s DeliveryStatus) String() string {
	if str, ok := deliveryNames[s]; ok {
		return str
	}
	return "unknown"
}

func (s DeliveryStatus) Validate() error {
	if _, ok := deliveryNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery status is invalid", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	for k, v := range deliveryNames {
		if strings.EqualFold(v, s) {
			return k, nil
		}
	}
	return DeliveryUnknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery status is invalid",
		fmt.Errorf("%q is not a valid delivery status", s),
	)
}

// IsDispatched reports whether the goods have left the supplier, i.e. the
// delivered_at timestamp must be present.
func (s DeliveryStatus) IsDispatched() bool {
	return s == DeliveryDelivered || s == DeliveryReceived
}

// MarkDelivered moves Pending to Delivered.
func (s DeliveryStatus) MarkDelivered() (DeliveryStatus, error) {
	if s != DeliveryPending {
		return DeliveryUnknown, errs.NewInvalidStateError("order", "mark delivered", s.String())
	}
	return DeliveryDelivered, nil
}

// ConfirmReceived moves Delivered to Received.
func (s DeliveryStatus) ConfirmReceived() (DeliveryStatus, error) {
	if s != DeliveryDelivered {
		return DeliveryUnknown, errs.NewInvalidStateError("order", "confirm receipt of", s.String())
	}
	return DeliveryReceived, nil
}
