package commands_test

import (
	"context"
	"testing"
	"time"

	"ferryops/internal/core/application/usecases/commands"
	"ferryops/internal/core/domain/model/booking"
	"ferryops/internal/core/domain/model/chat"
	"ferryops/internal/core/domain/model/inventory"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/order"
	"ferryops/internal/core/domain/model/supplier"
	"ferryops/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) Add(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockItemRepository) IncrementStock(ctx context.Context, id kernel.UUID, quantity int) error {
	return m.Called(ctx, id, quantity).Error(0)
}

type MockSupplierRepository struct{ mock.Mock }

func (m *MockSupplierRepository) Add(ctx context.Context, s *supplier.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSupplierRepository) Update(ctx context.Context, s *supplier.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSupplierRepository) Get(ctx context.Context, id kernel.UUID) (*supplier.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplier.Supplier), args.Error(1)
}

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) Add(ctx context.Context, b *booking.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetAssignedDepartedBefore(
	ctx context.Context,
	before time.Time,
	limit int,
) ([]*booking.Booking, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

type MockChatRepository struct{ mock.Mock }

func (m *MockChatRepository) Add(ctx context.Context, msg *chat.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type MockBroadcaster struct{ mock.Mock }

func (m *MockBroadcaster) Broadcast(ctx context.Context, msg *chat.Message, excludeClient string) error {
	return m.Called(ctx, msg, excludeClient).Error(0)
}

// MockUoW satisfies every segmented unit of work used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ItemRepository() ports.ItemRepository {
	return m.Called().Get(0).(ports.ItemRepository)
}

func (m *MockUoW) SupplierRepository() ports.SupplierRepository {
	return m.Called().Get(0).(ports.SupplierRepository)
}

func (m *MockUoW) BookingRepository() ports.BookingRepository {
	return m.Called().Get(0).(ports.BookingRepository)
}

func (m *MockUoW) ChatMessageRepository() ports.ChatMessageRepository {
	return m.Called().Get(0).(ports.ChatMessageRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) create() *MockUoW { return m.Called().Get(0).(*MockUoW) }

type orderFactory struct{ *MockUoWFactory }

func (f orderFactory) Create() commands.OrderUoW { return f.create() }

type inventoryFactory struct{ *MockUoWFactory }

func (f inventoryFactory) Create() commands.InventoryUoW { return f.create() }

type supplierFactory struct{ *MockUoWFactory }

func (f supplierFactory) Create() commands.SupplierUoW { return f.create() }

type bookingFactory struct{ *MockUoWFactory }

func (f bookingFactory) Create() commands.BookingUoW { return f.create() }

type chatFactory struct{ *MockUoWFactory }

func (f chatFactory) Create() commands.ChatUoW { return f.create() }

var createdAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// orderIn restores an order with the given axes and consistent timestamps.
func orderIn(
	t *testing.T,
	supplierID kernel.UUID,
	status order.Status,
	finance order.FinanceStatus,
	delivery order.DeliveryStatus,
) *order.Order {
	t.Helper()

	s := order.Snapshot{
		ID:             kernel.NewUUID(),
		SupplierID:     supplierID,
		ItemID:         kernel.NewUUID(),
		SupplierName:   "Pwani Fuel",
		ItemName:       "Diesel",
		Quantity:       10,
		Status:         status,
		FinanceStatus:  finance,
		DeliveryStatus: delivery,
		CreatedAt:      createdAt,
		Version:        1,
	}
	if delivery.IsDispatched() {
		at := createdAt.Add(time.Hour)
		s.DeliveredAt = &at
	}
	if delivery == order.DeliveryReceived {
		at := createdAt.Add(2 * time.Hour)
		s.ReceivedAt = &at
	}

	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}
