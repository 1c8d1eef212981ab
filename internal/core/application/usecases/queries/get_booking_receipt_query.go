package queries

import (
	"context"
	"database/sql"
	"errors"

	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"
	"ferryops/internal/pkg/guard"

	"github.com/jmoiron/sqlx"
)

var ErrGetBookingReceiptQueryIsNotConstructed = errors.New(
	"GetBookingReceiptQuery must be created via NewGetBookingReceiptQuery constructor",
)

// GetBookingReceiptQuery fetches the data printed on a booking receipt. A
// passenger passes their own id as owner and only sees their bookings; staff
// pass nil.
type GetBookingReceiptQuery struct {
	bookingID kernel.UUID
	owner     *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetBookingReceiptQuery(bookingID kernel.UUID, owner *kernel.UUID) (GetBookingReceiptQuery, error) {
	errList := []error{bookingID.Validate()}
	if owner != nil {
		errList = append(errList, owner.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return GetBookingReceiptQuery{}, err
	}
	return GetBookingReceiptQuery{bookingID: bookingID, owner: owner, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBookingReceiptQuery) Validate() error {
	return q.guard.Validate(ErrGetBookingReceiptQueryIsNotConstructed)
}

func (q GetBookingReceiptQuery) BookingID() kernel.UUID { return q.bookingID }
func (q GetBookingReceiptQuery) Owner() *kernel.UUID    { return q.owner }

type GetBookingReceiptQueryHandler struct {
	db *sqlx.DB
}

func NewGetBookingReceiptQueryHandler(db *sqlx.DB) GetBookingReceiptQueryHandler {
	return GetBookingReceiptQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for a missing booking or one owned by
// someone else, and errs.ErrForbidden while the booking is not approved or
// assigned with an accepted payment.
func (h GetBookingReceiptQueryHandler) Handle(ctx context.Context, query GetBookingReceiptQuery) (BookingView, error) {
	if err := query.Validate(); err != nil {
		return BookingView{}, err
	}

	var w where
	w.add("id = ?", query.BookingID().Bytes())
	if owner := query.Owner(); owner != nil {
		w.add("user_id = ?", owner.Bytes())
	}

	var row bookingRow
	q := h.db.Rebind("SELECT " + bookingColumns + " FROM bookings" + w.String())
	if err := h.db.GetContext(ctx, &row, q, w.args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BookingView{}, errs.NewObjectNotFoundError("booking_id", query.BookingID())
		}
		return BookingView{}, err
	}

	view, err := row.toView()
	if err != nil {
		return BookingView{}, err
	}
	if !view.Status.IsConfirmed() || view.PaymentStatus != booking.PaymentPaid {
		return BookingView{}, errs.NewForbiddenError("receipt is available once the booking is approved and paid")
	}
	return view, nil
}
