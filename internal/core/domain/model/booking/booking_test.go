package booking_test

import (
	"testing"
	"time"

	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passengerTrip() booking.Trip {
	n := 2
	return booking.Trip{
		Type:          booking.TypePassenger,
		TravelDate:    time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		TravelTime:    "08:30",
		Route:         "Likoni - Mombasa Island",
		NumPassengers: &n,
	}
}

func newBooking(t *testing.T, amount kernel.Money) *booking.Booking {
	t.Helper()

	b, err := booking.NewBooking(kernel.NewUUID(), kernel.NewUUID(), passengerTrip(),
		booking.Payment{AmountPaid: amount}, time.Now())
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	t.Run("should be paid when an amount was declared", func(t *testing.T) {
		b := newBooking(t, kernel.MustMoney(300))

		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, booking.PaymentMethodMpesa, b.Payment().Method)
		assert.Nil(t, b.FerryName())
	})

	t.Run("should be pending without payment", func(t *testing.T) {
		b := newBooking(t, kernel.ZeroMoney())

		assert.Equal(t, booking.PaymentPending, b.PaymentStatus())
	})

	t.Run("should require type specific fields", func(t *testing.T) {
		cases := map[booking.Type]string{
			booking.TypePassenger: "num_passengers",
			booking.TypeVehicle:   "vehicle_plate",
			booking.TypeCargo:     "cargo_description",
		}
		for typ, field := range cases {
			trip := passengerTrip()
			trip.Type = typ
			trip.NumPassengers = nil

			_, err := booking.NewBooking(kernel.NewUUID(), kernel.NewUUID(), trip, booking.Payment{}, time.Now())

			require.ErrorIs(t, err, errs.ErrValueIsRequired, typ.String())
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("should reject missing basics", func(t *testing.T) {
		_, err := booking.NewBooking(kernel.NewUUID(), kernel.UUID{}, booking.Trip{}, booking.Payment{}, time.Now())

		require.Error(t, err)
		for _, field := range []string{"user_id", "booking_type", "travel_date", "travel_time", "route"} {
			assert.Contains(t, err.Error(), field)
		}
	})
}

func TestBooking_Lifecycle(t *testing.T) {
	t.Run("should approve then assign a ferry", func(t *testing.T) {
		b := newBooking(t, kernel.MustMoney(300))

		require.NoError(t, b.Approve())
		require.NoError(t, b.Approve())
		require.NoError(t, b.AssignFerry(" MV Jambo "))

		assert.Equal(t, booking.StatusAssigned, b.Status())
		require.NotNil(t, b.FerryName())
		assert.Equal(t, "MV Jambo", *b.FerryName())
		assert.True(t, b.ReceiptAvailable())
	})

	t.Run("should refuse ferry assignment before approval", func(t *testing.T) {
		b := newBooking(t, kernel.MustMoney(300))

		require.ErrorIs(t, b.AssignFerry("MV Jambo"), errs.ErrInvalidState)
		assert.Nil(t, b.FerryName())
	})

	t.Run("should require a ferry name", func(t *testing.T) {
		b := newBooking(t, kernel.MustMoney(300))
		require.NoError(t, b.Approve())

		require.ErrorIs(t, b.AssignFerry("  "), errs.ErrValueIsRequired)
	})

	t.Run("should cancel idempotently but never a completed booking", func(t *testing.T) {
		b := newBooking(t, kernel.MustMoney(300))

		changed, err := b.Cancel()
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = b.Cancel()
		require.NoError(t, err)
		assert.False(t, changed)

		require.ErrorIs(t, b.Approve(), errs.ErrInvalidState)

		done := newBooking(t, kernel.MustMoney(300))
		require.NoError(t, done.Approve())
		require.NoError(t, done.AssignFerry("MV Jambo"))
		require.NoError(t, done.Complete())

		_, err = done.Cancel()
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("should only complete assigned bookings", func(t *testing.T) {
		b := newBooking(t, kernel.MustMoney(300))

		require.ErrorIs(t, b.Complete(), errs.ErrInvalidState)
	})
}

func TestBooking_Payment(t *testing.T) {
	b := newBooking(t, kernel.ZeroMoney())
	require.NoError(t, b.Approve())
	assert.False(t, b.ReceiptAvailable())

	b.ApprovePayment()
	assert.True(t, b.ReceiptAvailable())

	b.RejectPayment()
	assert.Equal(t, booking.PaymentRejected, b.PaymentStatus())
	assert.False(t, b.ReceiptAvailable())
}

func TestRestoreBooking(t *testing.T) {
	b := newBooking(t, kernel.MustMoney(300))
	s := b.Snapshot()

	restored, err := booking.RestoreBooking(s)
	require.NoError(t, err)
	assert.Equal(t, s, restored.Snapshot())

	s.Status = booking.StatusAssigned
	_, err = booking.RestoreBooking(s)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestParsers(t *testing.T) {
	m, err := booking.ParsePaymentMethod("")
	require.NoError(t, err)
	assert.Equal(t, booking.PaymentMethodMpesa, m)

	_, err = booking.ParsePaymentMethod("bitcoin")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	st, err := booking.ParseStatus("Assigned")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusAssigned, st)

	typ, err := booking.ParseType("cargo")
	require.NoError(t, err)
	assert.Equal(t, booking.TypeCargo, typ)
}
