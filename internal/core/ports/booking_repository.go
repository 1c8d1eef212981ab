package ports

import (
	"context"
	"time"

	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/kernel"
)

// BookingRepository defines the persistence contract for bookings. Update
// follows the same versioned conditional write as OrderRepository.Update.
type BookingRepository interface {
	Add(ctx context.Context, aggregate *booking.Booking) error
	Update(ctx context.Context, aggregate *booking.Booking) error
	Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error)

	// GetAssignedDepartedBefore lists assigned bookings whose travel date is
	// before the given instant, oldest first, at most limit rows.
	GetAssignedDepartedBefore(ctx context.Context, before time.Time, limit int) ([]*booking.Booking, error)
}
