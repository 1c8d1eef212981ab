package queries

import (
	"errors"
	"time"

	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
	"ferryops/internal/pkg/guard"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

var ErrGetBookingsQueryIsNotConstructed = errors.New(
	"GetBookingsQuery must be created via NewGetBookingsQuery constructor",
)

// BookingFilter narrows GetBookingsQuery. A nil UserID is the staff view over
// all passengers.
type BookingFilter struct {
	UserID          *kernel.UUID
	Statuses        []booking.Status
	PaymentStatuses []booking.PaymentStatus
}

// GetBookingsQuery pages through bookings newest first. It backs the
// passenger's own list, the paid bookings list and the finance overview.
//
// Example:
//
//	userID := identity.ID
//	query, err := NewGetBookingsQuery(BookingFilter{UserID: &userID}, 1, 0)
type GetBookingsQuery struct {
	filter BookingFilter
	page   int
	limit  int

	guard guard.ConstructorGuard
}

// NewGetBookingsQuery defaults page to 1 and limit to DefaultPageSize when
// they are 0.
func NewGetBookingsQuery(filter BookingFilter, page, limit int) (GetBookingsQuery, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageSize
	}

	var errList []error
	if page < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded"))
	}
	if limit < 1 || limit > MaxPageSize {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize))
	}
	if filter.UserID != nil {
		errList = append(errList, filter.UserID.Validate())
	}
	for _, s := range filter.Statuses {
		errList = append(errList, s.Validate())
	}
	for _, s := range filter.PaymentStatuses {
		errList = append(errList, s.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return GetBookingsQuery{}, err
	}

	return GetBookingsQuery{filter: filter, page: page, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBookingsQuery) Validate() error {
	return q.guard.Validate(ErrGetBookingsQueryIsNotConstructed)
}

func (q GetBookingsQuery) Filter() BookingFilter { return q.filter }
func (q GetBookingsQuery) Page() int             { return q.page }
func (q GetBookingsQuery) Limit() int            { return q.limit }

// BookingView is the flat booking record returned to passengers and staff.
type BookingView struct {
	ID               kernel.UUID
	UserID           kernel.UUID
	Type             booking.Type
	TravelDate       time.Time
	TravelTime       string
	Route            string
	NumPassengers    *int
	VehicleType      string
	VehiclePlate     string
	CargoDescription string
	CargoWeightKg    *float64
	AmountPaid       kernel.Money
	PaymentMethod    booking.PaymentMethod
	TransactionID    string
	PaymentStatus    booking.PaymentStatus
	Status           booking.Status
	FerryName        *string
	CreatedAt        time.Time
}

type GetBookingsQueryResponse struct {
	Bookings   []BookingView
	Total      int
	Page       int
	TotalPages int
}
