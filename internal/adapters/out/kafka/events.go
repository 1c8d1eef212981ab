package kafka

import (
	"time"

	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/order"
)

const (
	OrderChangedEventType   = "OrderChanged"
	BookingChangedEventType = "BookingChanged"
)

// OrderChangedEvent is published after every committed order write. Version
// lets consumers drop out-of-order deliveries.
type OrderChangedEvent struct {
	OrderID        string     `json:"order_id"`
	SupplierID     string     `json:"supplier_id"`
	ItemID         string     `json:"item_id"`
	Quantity       int        `json:"quantity"`
	Amount         *string    `json:"amount,omitempty"`
	Status         string     `json:"status"`
	FinanceStatus  string     `json:"finance_status"`
	DeliveryStatus string     `json:"delivery_status"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	ReceivedAt     *time.Time `json:"received_at,omitempty"`
	Version        int        `json:"version"`
	OccurredAt     time.Time  `json:"occurred_at"`
}

func newOrderChangedEvent(o *order.Order, now time.Time) OrderChangedEvent {
	e := OrderChangedEvent{
		OrderID:        o.ID().String(),
		SupplierID:     o.SupplierID().String(),
		ItemID:         o.ItemID().String(),
		Quantity:       o.Quantity(),
		Status:         o.Status().String(),
		FinanceStatus:  o.FinanceStatus().String(),
		DeliveryStatus: o.DeliveryStatus().String(),
		DeliveredAt:    o.DeliveredAt(),
		ReceivedAt:     o.ReceivedAt(),
		Version:        o.Version(),
		OccurredAt:     now,
	}
	if m := o.Amount(); m != nil {
		s := m.String()
		e.Amount = &s
	}
	return e
}

// BookingChangedEvent is published after every committed booking write.
type BookingChangedEvent struct {
	BookingID     string    `json:"booking_id"`
	UserID        string    `json:"user_id"`
	PaymentStatus string    `json:"payment_status"`
	BookingStatus string    `json:"booking_status"`
	FerryName     *string   `json:"ferry_name,omitempty"`
	Version       int       `json:"version"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func newBookingChangedEvent(b *booking.Booking, now time.Time) BookingChangedEvent {
	return BookingChangedEvent{
		BookingID:     b.ID().String(),
		UserID:        b.UserID().String(),
		PaymentStatus: b.PaymentStatus().String(),
		BookingStatus: b.Status().String(),
		FerryName:     b.FerryName(),
		Version:       b.Version(),
		OccurredAt:    now,
	}
}
