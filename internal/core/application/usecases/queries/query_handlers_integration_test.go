package queries_test

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"ferryops/internal/adapters/out/postgres/bookingrepo"
	"ferryops/internal/adapters/out/postgres/chatrepo"
	"ferryops/internal/adapters/out/postgres/itemrepo"
	"ferryops/internal/adapters/out/postgres/orderrepo"
	"ferryops/internal/adapters/out/postgres/pgtest"
	"ferryops/internal/adapters/out/postgres/supplierrepo"
	"ferryops/internal/core/application/usecases/queries"
	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/order"
	"ferryops/internal/core/domain/model/supplier"
	"ferryops/internal/core/domain/services"
	"ferryops/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type QueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	reader    *sqlx.DB
	base      time.Time
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, db, err := pgtest.Start(ctx)
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db

	reader, err := pgtest.Reader(ctx, container)
	suite.Require().NoError(err)
	suite.reader = reader

	suite.base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.reader != nil {
		suite.Require().NoError(suite.reader.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *QueryHandlersTestSuite) at(minutes int) time.Time {
	return suite.base.Add(time.Duration(minutes) * time.Minute)
}

func (suite *QueryHandlersTestSuite) addSupplier(name, status string) uuid.UUID {
	dto := supplierrepo.SupplierDTO{
		ID:        uuid.New(),
		Name:      name,
		Email:     uuid.NewString() + "@suppliers.test",
		Status:    status,
		CreatedAt: suite.base,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

func (suite *QueryHandlersTestSuite) addItem(name string, stock, reorder int) uuid.UUID {
	dto := itemrepo.ItemDTO{
		ID:           uuid.New(),
		Name:         name,
		Category:     "fuel",
		Unit:         "litre",
		CurrentStock: stock,
		ReorderLevel: reorder,
		CreatedAt:    suite.base,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

type orderSeed struct {
	supplierID, itemID     uuid.UUID
	supplierName, itemName string
	quantity               int
	status, delivery       string
	minute                 int
}

func (suite *QueryHandlersTestSuite) addOrder(s orderSeed) uuid.UUID {
	amount := decimal.NewFromInt(500)
	dto := orderrepo.OrderDTO{
		ID:             uuid.New(),
		SupplierID:     s.supplierID,
		ItemID:         s.itemID,
		SupplierName:   s.supplierName,
		ItemName:       s.itemName,
		Quantity:       s.quantity,
		Amount:         &amount,
		Status:         s.status,
		FinanceStatus:  "pending",
		DeliveryStatus: s.delivery,
		CreatedAt:      suite.at(s.minute),
	}
	if s.delivery != "pending" {
		at := suite.at(s.minute + 30)
		dto.DeliveredAt = &at
	}
	if s.delivery == "received" {
		at := suite.at(s.minute + 60)
		dto.ReceivedAt = &at
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

func (suite *QueryHandlersTestSuite) addBooking(userID uuid.UUID, status, payment string, amount int64, minute int) uuid.UUID {
	passengers := 1
	dto := bookingrepo.BookingDTO{
		ID:            uuid.New(),
		UserID:        userID,
		BookingType:   "passenger",
		TravelDate:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		TravelTime:    "08:30",
		Route:         "Likoni - Mombasa",
		NumPassengers: &passengers,
		AmountPaid:    decimal.NewFromInt(amount),
		PaymentMethod: "mpesa",
		PaymentStatus: payment,
		BookingStatus: status,
		CreatedAt:     suite.at(minute),
	}
	if status == "assigned" {
		ferry := "MV Jambo"
		dto.FerryName = &ferry
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return dto.ID
}

func mustID(id uuid.UUID) kernel.UUID {
	k, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		panic(err)
	}
	return k
}

func (suite *QueryHandlersTestSuite) TestGetOrders_NewestFirstWithFilters() {
	ctx := context.Background()
	supplierA := suite.addSupplier("Pwani Oil", "active")
	supplierB := suite.addSupplier("Coast Marine", "active")
	item := suite.addItem("Diesel", 10, 5)

	oldest := suite.addOrder(orderSeed{supplierA, item, "Pwani Oil", "Diesel", 10, "pending", "pending", 0})
	newest := suite.addOrder(orderSeed{supplierA, item, "Pwani Oil", "Diesel", 20, "approved", "delivered", 20})
	suite.addOrder(orderSeed{supplierB, item, "Coast Marine", "Diesel", 5, "pending", "pending", 10})

	scoped := mustID(supplierA)
	q, err := queries.NewGetOrdersQuery(queries.OrderFilter{SupplierID: &scoped})
	suite.Require().NoError(err)
	views, err := queries.NewGetOrdersQueryHandler(suite.reader).Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.Equal(newest, views[0].ID.Bytes())
	suite.Equal(oldest, views[1].ID.Bytes())
	suite.Equal(order.DeliveryDelivered, views[0].DeliveryStatus)
	suite.NotNil(views[0].DeliveredAt)
	suite.Nil(views[0].ReceivedAt)
	suite.Require().NotNil(views[0].Amount)
	suite.True(kernel.MustMoney(500).IsEqual(*views[0].Amount))

	q, err = queries.NewGetOrdersQuery(queries.OrderFilter{
		Statuses: []order.Status{order.StatusPending},
	})
	suite.Require().NoError(err)
	views, err = queries.NewGetOrdersQueryHandler(suite.reader).Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Len(views, 2)
	for _, v := range views {
		suite.Equal(order.StatusPending, v.Status)
	}
}

func (suite *QueryHandlersTestSuite) TestGetOrders_EmptyDatabase_ReturnsEmptySlice() {
	q, err := queries.NewGetOrdersQuery(queries.OrderFilter{})
	suite.Require().NoError(err)

	views, err := queries.NewGetOrdersQueryHandler(suite.reader).Handle(context.Background(), q)

	suite.Require().NoError(err)
	suite.NotNil(views)
	suite.Empty(views)
}

func (suite *QueryHandlersTestSuite) TestGetDeliveries_FallsBackToRecordNames() {
	ctx := context.Background()
	supplierID := suite.addSupplier("Pwani Oil", "active")
	diesel := suite.addItem("Diesel", 10, 5)
	rope := suite.addItem("Mooring Rope", 2, 4)

	suite.addOrder(orderSeed{supplierID, diesel, "", "", 10, "approved", "received", 0})
	suite.addOrder(orderSeed{supplierID, rope, "Pwani Oil", "Rope (old name)", 3, "approved", "delivered", 10})
	suite.addOrder(orderSeed{supplierID, diesel, "Pwani Oil", "Diesel", 7, "approved", "delivered", 20})
	suite.addOrder(orderSeed{supplierID, diesel, "Pwani Oil", "Diesel", 99, "pending", "pending", 30})

	q, err := queries.NewGetDeliveriesQuery(nil, "", true)
	suite.Require().NoError(err)
	resp, err := queries.NewGetDeliveriesQueryHandler(suite.reader, services.NewDeliveryProjector()).Handle(ctx, q)
	suite.Require().NoError(err)

	suite.Require().Len(resp.Deliveries, 4)
	last := resp.Deliveries[3]
	suite.Equal("Diesel", last.ItemName)
	suite.Equal("Pwani Oil", last.SupplierName)
	suite.Equal("Rope (old name)", resp.Deliveries[2].ItemName)

	suite.Equal([]services.ItemTotal{
		{ItemName: "Diesel", TotalQuantity: 17, Deliveries: 2},
		{ItemName: "Rope (old name)", TotalQuantity: 3, Deliveries: 1},
	}, resp.Totals)
}

func (suite *QueryHandlersTestSuite) TestGetDeliveries_SupplierScopeAndSearch() {
	ctx := context.Background()
	pwani := suite.addSupplier("Pwani Oil", "active")
	coast := suite.addSupplier("Coast Marine", "active")
	diesel := suite.addItem("Diesel", 10, 5)
	paint := suite.addItem("Hull Paint", 10, 5)

	suite.addOrder(orderSeed{pwani, diesel, "Pwani Oil", "Diesel", 10, "approved", "delivered", 0})
	suite.addOrder(orderSeed{pwani, paint, "Pwani Oil", "Hull Paint", 4, "approved", "delivered", 10})
	suite.addOrder(orderSeed{coast, paint, "Coast Marine", "Hull Paint", 6, "approved", "delivered", 20})

	scoped := mustID(pwani)
	q, err := queries.NewGetDeliveriesQuery(&scoped, "PAINT", false)
	suite.Require().NoError(err)
	resp, err := queries.NewGetDeliveriesQueryHandler(suite.reader, services.NewDeliveryProjector()).Handle(ctx, q)
	suite.Require().NoError(err)

	suite.Require().Len(resp.Deliveries, 1)
	suite.Equal("Hull Paint", resp.Deliveries[0].ItemName)
	suite.Equal(4, resp.Deliveries[0].Quantity)
	suite.Nil(resp.Totals)
}

func (suite *QueryHandlersTestSuite) TestGetItems_LowStockOnly() {
	ctx := context.Background()
	suite.addItem("Diesel", 10, 5)
	suite.addItem("Life Jackets", 5, 5)
	suite.addItem("Mooring Rope", 1, 4)

	all, err := queries.NewGetItemsQueryHandler(suite.reader).Handle(ctx, queries.NewGetItemsQuery(false))
	suite.Require().NoError(err)
	suite.Len(all, 3)
	suite.Equal("Diesel", all[0].Name)
	suite.False(all[0].LowStock)

	low, err := queries.NewGetItemsQueryHandler(suite.reader).Handle(ctx, queries.NewGetItemsQuery(true))
	suite.Require().NoError(err)
	suite.Require().Len(low, 2)
	suite.Equal("Life Jackets", low[0].Name)
	suite.Equal("Mooring Rope", low[1].Name)
	suite.True(low[1].LowStock)
}

func (suite *QueryHandlersTestSuite) TestGetSuppliers_ByStatus() {
	ctx := context.Background()
	suite.addSupplier("Pwani Oil", "active")
	suite.addSupplier("Coast Marine", "pending")
	suite.addSupplier("Bandari Ropes", "suspended")

	status := supplier.StatusPending
	q, err := queries.NewGetSuppliersQuery(&status)
	suite.Require().NoError(err)
	views, err := queries.NewGetSuppliersQueryHandler(suite.reader).Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.Equal("Coast Marine", views[0].Name)
	suite.Equal(supplier.StatusPending, views[0].Status)

	q, err = queries.NewGetSuppliersQuery(nil)
	suite.Require().NoError(err)
	views, err = queries.NewGetSuppliersQueryHandler(suite.reader).Handle(ctx, q)
	suite.Require().NoError(err)
	suite.Len(views, 3)
}

func (suite *QueryHandlersTestSuite) TestGetBookings_PagesOwnBookings() {
	ctx := context.Background()
	passenger := uuid.New()
	other := uuid.New()
	for i := range 5 {
		suite.addBooking(passenger, "pending", "paid", 300, i)
	}
	suite.addBooking(other, "pending", "paid", 300, 10)

	owner := mustID(passenger)
	q, err := queries.NewGetBookingsQuery(queries.BookingFilter{UserID: &owner}, 2, 2)
	suite.Require().NoError(err)
	resp, err := queries.NewGetBookingsQueryHandler(suite.reader).Handle(ctx, q)
	suite.Require().NoError(err)

	suite.Equal(5, resp.Total)
	suite.Equal(2, resp.Page)
	suite.Equal(3, resp.TotalPages)
	suite.Require().Len(resp.Bookings, 2)
	suite.Equal(suite.at(2), resp.Bookings[0].CreatedAt)
	suite.Equal(suite.at(1), resp.Bookings[1].CreatedAt)
	for _, b := range resp.Bookings {
		suite.True(b.UserID.IsEqual(owner))
		suite.Equal(booking.TypePassenger, b.Type)
	}
}

func (suite *QueryHandlersTestSuite) TestGetBookings_FiltersByStatuses() {
	ctx := context.Background()
	suite.addBooking(uuid.New(), "approved", "paid", 300, 0)
	suite.addBooking(uuid.New(), "pending", "pending", 0, 1)
	suite.addBooking(uuid.New(), "assigned", "paid", 300, 2)
	suite.addBooking(uuid.New(), "approved", "rejected", 300, 3)

	q, err := queries.NewGetBookingsQuery(queries.BookingFilter{
		Statuses:        []booking.Status{booking.StatusApproved, booking.StatusAssigned},
		PaymentStatuses: []booking.PaymentStatus{booking.PaymentPaid},
	}, 1, 10)
	suite.Require().NoError(err)
	resp, err := queries.NewGetBookingsQueryHandler(suite.reader).Handle(ctx, q)
	suite.Require().NoError(err)

	suite.Equal(2, resp.Total)
	suite.Equal(1, resp.TotalPages)
	suite.Require().Len(resp.Bookings, 2)
	suite.Equal(booking.StatusAssigned, resp.Bookings[0].Status)
	suite.Require().NotNil(resp.Bookings[0].FerryName)
	suite.Equal("MV Jambo", *resp.Bookings[0].FerryName)
}

func (suite *QueryHandlersTestSuite) TestGetBookingReceipt() {
	ctx := context.Background()
	passenger := uuid.New()
	confirmed := suite.addBooking(passenger, "assigned", "paid", 1200, 0)
	unpaid := suite.addBooking(passenger, "approved", "pending", 0, 1)
	foreign := suite.addBooking(uuid.New(), "approved", "paid", 800, 2)
	handler := queries.NewGetBookingReceiptQueryHandler(suite.reader)
	owner := mustID(passenger)

	suite.Run("owner gets confirmed booking", func() {
		q, err := queries.NewGetBookingReceiptQuery(mustID(confirmed), &owner)
		suite.Require().NoError(err)
		view, err := handler.Handle(ctx, q)
		suite.Require().NoError(err)
		suite.True(kernel.MustMoney(1200).IsEqual(view.AmountPaid))
	})

	suite.Run("unpaid booking is forbidden", func() {
		q, err := queries.NewGetBookingReceiptQuery(mustID(unpaid), &owner)
		suite.Require().NoError(err)
		_, err = handler.Handle(ctx, q)
		suite.ErrorIs(err, errs.ErrForbidden)
	})

	suite.Run("someone else's booking is not found", func() {
		q, err := queries.NewGetBookingReceiptQuery(mustID(foreign), &owner)
		suite.Require().NoError(err)
		_, err = handler.Handle(ctx, q)
		suite.ErrorIs(err, errs.ErrObjectNotFound)
	})

	suite.Run("staff see any booking", func() {
		q, err := queries.NewGetBookingReceiptQuery(mustID(foreign), nil)
		suite.Require().NoError(err)
		view, err := handler.Handle(ctx, q)
		suite.Require().NoError(err)
		suite.Equal(booking.StatusApproved, view.Status)
	})
}

func (suite *QueryHandlersTestSuite) TestGetFinanceSummary() {
	ctx := context.Background()
	suite.addBooking(uuid.New(), "approved", "paid", 1200, 0)
	suite.addBooking(uuid.New(), "assigned", "paid", 800, 1)
	suite.addBooking(uuid.New(), "pending", "pending", 0, 2)
	suite.addBooking(uuid.New(), "pending", "pending", 150, 3)
	suite.addBooking(uuid.New(), "cancelled", "rejected", 400, 4)

	summary, err := queries.NewGetFinanceSummaryQueryHandler(suite.reader).
		Handle(ctx, queries.NewGetFinanceSummaryQuery())
	suite.Require().NoError(err)

	suite.Equal(5, summary.TotalBookings)
	suite.True(kernel.MustMoney(2000).IsEqual(summary.TotalRevenue))
	suite.True(kernel.MustMoney(150).IsEqual(summary.PendingAmount))
	suite.True(kernel.MustMoney(400).IsEqual(summary.RejectedAmount))
}

func (suite *QueryHandlersTestSuite) TestGetFinanceSummary_NoBookings() {
	summary, err := queries.NewGetFinanceSummaryQueryHandler(suite.reader).
		Handle(context.Background(), queries.NewGetFinanceSummaryQuery())

	suite.Require().NoError(err)
	suite.Zero(summary.TotalBookings)
	suite.True(summary.TotalRevenue.IsZero())
}

func (suite *QueryHandlersTestSuite) TestGetChatHistory_OldestFirst() {
	ctx := context.Background()
	for i, body := range []string{"third", "first", "second"} {
		minute := []int{20, 0, 10}[i]
		dto := chatrepo.MessageDTO{
			ID:        uuid.New(),
			RoomID:    "supplier-1:inventory",
			Sender:    "inventory",
			Message:   body,
			Timestamp: suite.at(minute),
		}
		suite.Require().NoError(suite.db.Create(&dto).Error)
	}
	other := chatrepo.MessageDTO{ID: uuid.New(), RoomID: "elsewhere", Sender: "x", Message: "noise", Timestamp: suite.base}
	suite.Require().NoError(suite.db.Create(&other).Error)

	q, err := queries.NewGetChatHistoryQuery("supplier-1:inventory", 0)
	suite.Require().NoError(err)
	msgs, err := queries.NewGetChatHistoryQueryHandler(suite.reader).Handle(ctx, q)
	suite.Require().NoError(err)

	suite.Require().Len(msgs, 3)
	suite.Equal("first", msgs[0].Message)
	suite.Equal("second", msgs[1].Message)
	suite.Equal("third", msgs[2].Message)
}

func (suite *QueryHandlersTestSuite) TestGetChatHistory_ReturnsLatestWindow() {
	ctx := context.Background()
	for i := range 5 {
		dto := chatrepo.MessageDTO{
			ID:        uuid.New(),
			RoomID:    "order-9",
			Sender:    "supplier",
			Message:   fmt.Sprintf("update %d", i),
			Timestamp: suite.at(i),
		}
		suite.Require().NoError(suite.db.Create(&dto).Error)
	}

	q, err := queries.NewGetChatHistoryQuery("order-9", 2)
	suite.Require().NoError(err)
	msgs, err := queries.NewGetChatHistoryQueryHandler(suite.reader).Handle(ctx, q)
	suite.Require().NoError(err)

	suite.Require().Len(msgs, 2)
	suite.Equal("update 3", msgs[0].Message)
	suite.Equal("update 4", msgs[1].Message)
}

func (suite *QueryHandlersTestSuite) TestGetDeliveries_SameCreationTimeIsStable() {
	ctx := context.Background()
	pwani := suite.addSupplier("Pwani Oil", "active")
	diesel := suite.addItem("Diesel", 10, 5)

	var ids []string
	for range 4 {
		id := suite.addOrder(orderSeed{pwani, diesel, "Pwani Oil", "Diesel", 1, "approved", "delivered", 0})
		ids = append(ids, id.String())
	}
	slices.Sort(ids)

	q, err := queries.NewGetDeliveriesQuery(nil, "", false)
	suite.Require().NoError(err)
	handler := queries.NewGetDeliveriesQueryHandler(suite.reader, services.NewDeliveryProjector())

	for range 3 {
		resp, err := handler.Handle(ctx, q)
		suite.Require().NoError(err)
		suite.Require().Len(resp.Deliveries, 4)

		got := make([]string, len(resp.Deliveries))
		for i, d := range resp.Deliveries {
			got[i] = d.OrderID.String()
		}
		suite.Equal(ids, got)
	}
}

func TestQueryHandlersTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(QueryHandlersTestSuite))
}
