package http

import (
	"errors"
	"net/http"
	"time"

	"ferryops/internal/adapters/in/http/auth"
	"ferryops/internal/core/application/usecases/commands"
	"ferryops/internal/core/application/usecases/queries"
	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateBooking handles POST /api/v1/bookings.
func (s *Server) CreateBooking(c echo.Context) error {
	var req bookingRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	trip, payment, err := req.toDomain()
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateBookingCommand(identity(c).ID, trip, payment)
	if err != nil {
		return err
	}
	b, err := s.h.CreateBooking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (r bookingRequest) toDomain() (booking.Trip, booking.Payment, error) {
	bookingType, err := booking.ParseType(r.BookingType)
	if err != nil {
		return booking.Trip{}, booking.Payment{}, err
	}
	travelDate, err := time.Parse(dateLayout, r.TravelDate)
	if err != nil {
		return booking.Trip{}, booking.Payment{}, errs.NewValueIsInvalidErrorWithCause("travel_date", err)
	}
	method, err := booking.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		return booking.Trip{}, booking.Payment{}, err
	}
	amount := kernel.ZeroMoney()
	if m, err := optionalMoney(r.AmountPaid, "amount_paid"); err != nil {
		return booking.Trip{}, booking.Payment{}, err
	} else if m != nil {
		amount = *m
	}

	trip := booking.Trip{
		Type:             bookingType,
		TravelDate:       travelDate,
		TravelTime:       r.TravelTime,
		Route:            r.Route,
		NumPassengers:    r.NumPassengers,
		VehicleType:      r.VehicleType,
		VehiclePlate:     r.VehiclePlate,
		CargoDescription: r.CargoDescription,
		CargoWeightKg:    r.CargoWeightKg,
	}
	payment := booking.Payment{AmountPaid: amount, Method: method, TransactionID: r.TransactionID}
	return trip, payment, nil
}

// MyBookings handles GET /api/v1/bookings/mine?status=&page=&limit=.
func (s *Server) MyBookings(c echo.Context) error {
	owner := identity(c).ID
	return s.listBookings(c, queries.BookingFilter{UserID: &owner})
}

// PaidBookings handles GET /api/v1/bookings/paid: the caller's bookings
// whose payment was accepted.
func (s *Server) PaidBookings(c echo.Context) error {
	owner := identity(c).ID
	return s.listBookings(c, queries.BookingFilter{
		UserID:          &owner,
		PaymentStatuses: []booking.PaymentStatus{booking.PaymentPaid},
	})
}

// ListBookings handles GET /api/v1/finance/bookings.
func (s *Server) ListBookings(c echo.Context) error {
	return s.listBookings(c, queries.BookingFilter{})
}

func (s *Server) listBookings(c echo.Context, filter queries.BookingFilter) error {
	var status, paymentStatus *string
	var page, limit int
	if err := errors.Join(
		queryParam(c, "status", &status),
		queryParam(c, "payment_status", &paymentStatus),
		queryParam(c, "page", &page),
		queryParam(c, "limit", &limit),
	); err != nil {
		return err
	}

	if status != nil {
		st, err := booking.ParseStatus(*status)
		if err != nil {
			return err
		}
		filter.Statuses = []booking.Status{st}
	}
	if paymentStatus != nil && filter.PaymentStatuses == nil {
		st, err := booking.ParsePaymentStatus(*paymentStatus)
		if err != nil {
			return err
		}
		filter.PaymentStatuses = []booking.PaymentStatus{st}
	}

	query, err := queries.NewGetBookingsQuery(filter, page, limit)
	if err != nil {
		return err
	}
	resp, err := s.h.GetBookings.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fromBookingPage(resp))
}

// CancelBooking handles PUT /api/v1/bookings/{id}/cancel.
func (s *Server) CancelBooking(c echo.Context) error {
	bookingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelBookingCommand(bookingID, identity(c).ID)
	if err != nil {
		return err
	}
	b, err := s.h.CancelBooking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// BookingReceipt handles GET /api/v1/bookings/{id}/receipt. Passengers only
// reach their own bookings; finance reaches any.
func (s *Server) BookingReceipt(c echo.Context) error {
	bookingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var owner *kernel.UUID
	if id := identity(c); id.Role == auth.RolePassenger {
		owner = &id.ID
	}

	query, err := queries.NewGetBookingReceiptQuery(bookingID, owner)
	if err != nil {
		return err
	}
	view, err := s.h.GetBookingReceipt.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fromBookingView(view))
}

// DecidePayment handles PUT /api/v1/finance/bookings/{id}/payment.
func (s *Server) DecidePayment(c echo.Context) error {
	bookingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req decisionRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	decision, err := commands.ParseDecision(req.Decision)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDecidePaymentCommand(bookingID, decision)
	if err != nil {
		return err
	}
	b, err := s.h.DecidePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// ApproveBooking handles PUT /api/v1/finance/bookings/{id}/approve.
func (s *Server) ApproveBooking(c echo.Context) error {
	bookingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewApproveBookingCommand(bookingID)
	if err != nil {
		return err
	}
	b, err := s.h.ApproveBooking.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// AssignFerry handles PUT /api/v1/finance/bookings/{id}/ferry.
func (s *Server) AssignFerry(c echo.Context) error {
	bookingID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req ferryRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAssignFerryCommand(bookingID, req.FerryName)
	if err != nil {
		return err
	}
	b, err := s.h.AssignFerry.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// FinanceSummary handles GET /api/v1/finance/summary.
func (s *Server) FinanceSummary(c echo.Context) error {
	sum, err := s.h.GetFinanceSummary.Handle(c.Request().Context(), queries.NewGetFinanceSummaryQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, financeSummaryResponse{
		TotalBookings:  sum.TotalBookings,
		TotalRevenue:   sum.TotalRevenue.String(),
		PendingAmount:  sum.PendingAmount.String(),
		RejectedAmount: sum.RejectedAmount.String(),
	})
}
