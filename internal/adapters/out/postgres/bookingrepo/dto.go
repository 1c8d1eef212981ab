// Package bookingrepo persists bookings with the same versioned conditional
// update used for orders.
package bookingrepo

import (
	"time"

	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	BookingType      string    `gorm:"type:varchar(16);not null"`
	TravelDate       time.Time `gorm:"type:date;not null;index"`
	TravelTime       string    `gorm:"not null"`
	Route            string    `gorm:"not null"`
	NumPassengers    *int
	VehicleType      *string
	VehiclePlate     *string
	CargoDescription *string
	CargoWeightKg    *float64
	AmountPaid       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PaymentMethod    string          `gorm:"type:varchar(16);not null"`
	TransactionID    *string
	PaymentStatus    string    `gorm:"type:varchar(16);not null;index"`
	BookingStatus    string    `gorm:"type:varchar(16);not null;index"`
	FerryName        *string   `gorm:"type:varchar(100)"`
	CreatedAt        time.Time `gorm:"not null;index"`
	Version          int       `gorm:"not null;default:0"`
}

func (BookingDTO) TableName() string {
	return "bookings"
}

func fromDomain(b *booking.Booking) BookingDTO {
	trip, payment := b.Trip(), b.Payment()
	return BookingDTO{
		ID:               b.ID().Bytes(),
		UserID:           b.UserID().Bytes(),
		BookingType:      trip.Type.String(),
		TravelDate:       trip.TravelDate,
		TravelTime:       trip.TravelTime,
		Route:            trip.Route,
		NumPassengers:    trip.NumPassengers,
		VehicleType:      optional(trip.VehicleType),
		VehiclePlate:     optional(trip.VehiclePlate),
		CargoDescription: optional(trip.CargoDescription),
		CargoWeightKg:    trip.CargoWeightKg,
		AmountPaid:       payment.AmountPaid.Decimal(),
		PaymentMethod:    payment.Method.String(),
		TransactionID:    optional(payment.TransactionID),
		PaymentStatus:    b.PaymentStatus().String(),
		BookingStatus:    b.Status().String(),
		FerryName:        b.FerryName(),
		CreatedAt:        b.CreatedAt(),
		Version:          b.Version(),
	}
}

func toDomain(dto BookingDTO) (*booking.Booking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	bookingType, err := booking.ParseType(dto.BookingType)
	if err != nil {
		return nil, err
	}
	method, err := booking.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := booking.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	status, err := booking.ParseStatus(dto.BookingStatus)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.AmountPaid)
	if err != nil {
		return nil, err
	}

	return booking.RestoreBooking(booking.Snapshot{
		ID:     id,
		UserID: userID,
		Trip: booking.Trip{
			Type:             bookingType,
			TravelDate:       dto.TravelDate.UTC(),
			TravelTime:       dto.TravelTime,
			Route:            dto.Route,
			NumPassengers:    dto.NumPassengers,
			VehicleType:      deref(dto.VehicleType),
			VehiclePlate:     deref(dto.VehiclePlate),
			CargoDescription: deref(dto.CargoDescription),
			CargoWeightKg:    dto.CargoWeightKg,
		},
		Payment: booking.Payment{
			AmountPaid:    amount,
			Method:        method,
			TransactionID: deref(dto.TransactionID),
		},
		PaymentStatus: paymentStatus,
		Status:        status,
		FerryName:     dto.FerryName,
		CreatedAt:     dto.CreatedAt.UTC(),
		Version:       dto.Version,
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
