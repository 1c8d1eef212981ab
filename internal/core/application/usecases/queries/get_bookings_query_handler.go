package queries

import (
	"context"
	"errors"
	"time"

	"ferryops/internal/core/domain/model/booking"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const bookingColumns = `id, user_id, booking_type, travel_date, travel_time, route,
	num_passengers, vehicle_type, vehicle_plate, cargo_description, cargo_weight_kg,
	amount_paid, payment_method, transaction_id, payment_status, booking_status,
	ferry_name, created_at`

type GetBookingsQueryHandler struct {
	db *sqlx.DB
}

func NewGetBookingsQueryHandler(db *sqlx.DB) GetBookingsQueryHandler {
	return GetBookingsQueryHandler{db: db}
}

type bookingRow struct {
	ID               uuid.UUID       `db:"id"`
	UserID           uuid.UUID       `db:"user_id"`
	BookingType      string          `db:"booking_type"`
	TravelDate       time.Time       `db:"travel_date"`
	TravelTime       string          `db:"travel_time"`
	Route            string          `db:"route"`
	NumPassengers    *int            `db:"num_passengers"`
	VehicleType      *string         `db:"vehicle_type"`
	VehiclePlate     *string         `db:"vehicle_plate"`
	CargoDescription *string         `db:"cargo_description"`
	CargoWeightKg    *float64        `db:"cargo_weight_kg"`
	AmountPaid       decimal.Decimal `db:"amount_paid"`
	PaymentMethod    string          `db:"payment_method"`
	TransactionID    *string         `db:"transaction_id"`
	PaymentStatus    string          `db:"payment_status"`
	BookingStatus    string          `db:"booking_status"`
	FerryName        *string         `db:"ferry_name"`
	CreatedAt        time.Time       `db:"created_at"`
}

func (h GetBookingsQueryHandler) Handle(
	ctx context.Context,
	query GetBookingsQuery,
) (GetBookingsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBookingsQueryResponse{}, err
	}

	f := query.Filter()
	var w where
	if f.UserID != nil {
		w.add("user_id = ?", f.UserID.Bytes())
	}
	w.anyOf("booking_status", names(f.Statuses))
	w.anyOf("payment_status", names(f.PaymentStatuses))

	var total int
	if err := h.db.GetContext(ctx, &total,
		h.db.Rebind("SELECT count(*) FROM bookings"+w.String()), w.args...); err != nil {
		return GetBookingsQueryResponse{}, err
	}

	args := make([]any, 0, len(w.args)+2)
	args = append(args, w.args...)
	args = append(args, query.Limit(), (query.Page()-1)*query.Limit())
	q := h.db.Rebind("SELECT " + bookingColumns + " FROM bookings" + w.String() +
		" ORDER BY created_at DESC, id LIMIT ? OFFSET ?")

	var rows []bookingRow
	if err := h.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return GetBookingsQueryResponse{}, err
	}

	views := make([]BookingView, 0, len(rows))
	for _, r := range rows {
		v, err := r.toView()
		if err != nil {
			return GetBookingsQueryResponse{}, err
		}
		views = append(views, v)
	}

	return GetBookingsQueryResponse{
		Bookings:   views,
		Total:      total,
		Page:       query.Page(),
		TotalPages: (total + query.Limit() - 1) / query.Limit(),
	}, nil
}

func (r bookingRow) toView() (BookingView, error) {
	id, idErr := toUUID(r.ID)
	userID, userErr := toUUID(r.UserID)
	bookingType, typeErr := booking.ParseType(r.BookingType)
	method, methodErr := booking.ParsePaymentMethod(r.PaymentMethod)
	payment, paymentErr := booking.ParsePaymentStatus(r.PaymentStatus)
	status, statusErr := booking.ParseStatus(r.BookingStatus)
	amount, amountErr := toMoney(decimal.NewNullDecimal(r.AmountPaid))
	if err := errors.Join(idErr, userErr, typeErr, methodErr, paymentErr, statusErr, amountErr); err != nil {
		return BookingView{}, err
	}

	return BookingView{
		ID:               id,
		UserID:           userID,
		Type:             bookingType,
		TravelDate:       r.TravelDate.UTC(),
		TravelTime:       r.TravelTime,
		Route:            r.Route,
		NumPassengers:    r.NumPassengers,
		VehicleType:      deref(r.VehicleType),
		VehiclePlate:     deref(r.VehiclePlate),
		CargoDescription: deref(r.CargoDescription),
		CargoWeightKg:    r.CargoWeightKg,
		AmountPaid:       *amount,
		PaymentMethod:    method,
		TransactionID:    deref(r.TransactionID),
		PaymentStatus:    payment,
		Status:           status,
		FerryName:        r.FerryName,
		CreatedAt:        r.CreatedAt.UTC(),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
