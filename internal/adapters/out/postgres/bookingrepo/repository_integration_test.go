package bookingrepo_test

import (
	"context"
	"testing"
	"time"

	"ferryops/internal/adapters/out/postgres/bookingrepo"
	"ferryops/internal/adapters/out/postgres/pgtest"
	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type BookingRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *bookingrepo.GormBookingRepository
}

func TestBookingRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(BookingRepositoryIntegrationTestSuite))
}

func (suite *BookingRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.repository = bookingrepo.NewGormBookingRepository(db, noopTracker{})
}

func (suite *BookingRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *BookingRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *BookingRepositoryIntegrationTestSuite) addVehicleBooking(travelDate time.Time) *booking.Booking {
	weight := 1200.5
	b, err := booking.NewBooking(kernel.NewUUID(), kernel.NewUUID(), booking.Trip{
		Type:          booking.TypeVehicle,
		TravelDate:    travelDate,
		TravelTime:    "07:15",
		Route:         "Likoni - Mombasa",
		VehicleType:   "Pickup",
		VehiclePlate:  "KDA 123X",
		CargoWeightKg: &weight,
	}, booking.Payment{
		AmountPaid:    kernel.MustMoney(850),
		Method:        booking.PaymentMethodCard,
		TransactionID: "TX-991",
	}, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), b))
	return b
}

func (suite *BookingRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	b := suite.addVehicleBooking(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))

	got, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)

	suite.Equal(b.UserID(), got.UserID())
	suite.Equal(booking.TypeVehicle, got.Trip().Type)
	suite.Equal("KDA 123X", got.Trip().VehiclePlate)
	suite.Empty(got.Trip().CargoDescription)
	suite.Nil(got.Trip().NumPassengers)
	suite.Require().NotNil(got.Trip().CargoWeightKg)
	suite.InDelta(1200.5, *got.Trip().CargoWeightKg, 0.001)
	suite.True(got.Trip().TravelDate.Equal(b.Trip().TravelDate))
	suite.Equal("850", got.Payment().AmountPaid.String())
	suite.Equal(booking.PaymentMethodCard, got.Payment().Method)
	suite.Equal("TX-991", got.Payment().TransactionID)
	suite.Equal(booking.PaymentPaid, got.PaymentStatus())
	suite.Equal(booking.StatusPending, got.Status())
	suite.Nil(got.FerryName())
}

func (suite *BookingRepositoryIntegrationTestSuite) TestUpdate_VersionConflict() {
	ctx := context.Background()
	b := suite.addVehicleBooking(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))

	first, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, b.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Approve())
	suite.Require().NoError(suite.repository.Update(ctx, first))
	suite.Equal(1, first.Version())

	_, err = second.Cancel()
	suite.Require().NoError(err)
	suite.Require().ErrorIs(suite.repository.Update(ctx, second), errs.ErrVersionIsInvalid)
}

func (suite *BookingRepositoryIntegrationTestSuite) TestGetAssignedDepartedBefore() {
	ctx := context.Background()
	cutoff := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	departed := suite.addVehicleBooking(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	upcoming := suite.addVehicleBooking(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	unassigned := suite.addVehicleBooking(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))

	for _, b := range []*booking.Booking{departed, upcoming} {
		suite.Require().NoError(b.Approve())
		suite.Require().NoError(b.AssignFerry("MV Jambo"))
		suite.Require().NoError(suite.repository.Update(ctx, b))
	}

	got, err := suite.repository.GetAssignedDepartedBefore(ctx, cutoff, 10)
	suite.Require().NoError(err)

	suite.Require().Len(got, 1)
	suite.Equal(departed.ID(), got[0].ID())
	suite.Equal("MV Jambo", *got[0].FerryName())
	suite.NotEqual(unassigned.ID(), got[0].ID())
}
