package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	adapter "ferryops/internal/adapters/out/postgres"
	"ferryops/internal/adapters/out/postgres/pgtest"
	"ferryops/internal/core/application/usecases/commands"
	"ferryops/internal/core/domain/model/inventory"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/order"
	"ferryops/internal/core/domain/model/supplier"
	"ferryops/internal/core/ports"
	"ferryops/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingListener struct {
	mu        sync.Mutex
	committed [][]ports.TrackedAggregate
}

func (l *recordingListener) AggregatesCommitted(_ context.Context, aggregates []ports.TrackedAggregate) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.committed = append(l.committed, aggregates)
}

func (l *recordingListener) batches() [][]ports.TrackedAggregate {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.committed
}

type orderUoWFactory struct {
	f *adapter.GormUnitOfWorkFactory
}

func (o orderUoWFactory) Create() commands.OrderUoW { return o.f.Create() }

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	listener  *recordingListener
	factory   *adapter.GormUnitOfWorkFactory
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.listener = &recordingListener{}
	suite.factory = adapter.NewGormUnitOfWorkFactory(suite.db, suite.listener)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_NotifiesListeners() {
	ctx := context.Background()
	item := suite.newItem(0)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ItemRepository().Add(ctx, item))
	suite.Require().NoError(uow.Commit(ctx))

	batches := suite.listener.batches()
	suite.Require().Len(batches, 1)
	suite.Require().Len(batches[0], 1)
	suite.Equal(item.ID(), batches[0][0].ID)
	suite.Same(item, batches[0][0].Aggregate)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWritesAndEvents() {
	ctx := context.Background()
	item := suite.newItem(0)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ItemRepository().Add(ctx, item))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().ItemRepository().Get(ctx, item.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Empty(suite.listener.batches())
}

// TestOrderPipeline_EndToEnd walks an order through every axis and confirms
// receipt twice concurrently; stock must move exactly once.
func (suite *UnitOfWorkIntegrationTestSuite) TestOrderPipeline_EndToEnd() {
	ctx := context.Background()
	f := orderUoWFactory{suite.factory}

	s := suite.newSupplier()
	item := suite.addItem(5)

	create, err := commands.NewCreateOrderCommand(s.ID(), item.ID(), 10, nil)
	suite.Require().NoError(err)
	o, err := commands.NewCreateOrderCommandHandler(f).Handle(ctx, create)
	suite.Require().NoError(err)
	suite.Equal("Diesel", o.ItemName())

	accept, err := commands.NewDecideOrderCommand(o.ID(), s.ID(), commands.DecisionApprove)
	suite.Require().NoError(err)
	_, err = commands.NewDecideOrderCommandHandler(f).Handle(ctx, accept)
	suite.Require().NoError(err)

	amount := kernel.MustMoney(500)
	supply, err := commands.NewSubmitSupplyCommand(o.ID(), s.ID(), &amount)
	suite.Require().NoError(err)
	_, err = commands.NewSubmitSupplyCommandHandler(f).Handle(ctx, supply)
	suite.Require().NoError(err)

	finance, err := commands.NewDecideFinanceCommand(o.ID(), commands.DecisionApprove)
	suite.Require().NoError(err)
	_, err = commands.NewDecideFinanceCommandHandler(f).Handle(ctx, finance)
	suite.Require().NoError(err)

	deliver, err := commands.NewMarkDeliveredCommand(o.ID(), s.ID())
	suite.Require().NoError(err)
	_, err = commands.NewMarkDeliveredCommandHandler(f).Handle(ctx, deliver)
	suite.Require().NoError(err)

	confirm, err := commands.NewConfirmReceivedCommand(o.ID())
	suite.Require().NoError(err)
	handler := commands.NewConfirmReceivedCommandHandler(f, zap.NewNop())

	var wg sync.WaitGroup
	results := make([]commands.ConfirmReceivedResult, 2)
	errList := make([]error, 2)
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errList[i] = handler.Handle(ctx, confirm)
		}()
	}
	wg.Wait()

	suite.Require().NoError(errList[0])
	suite.Require().NoError(errList[1])
	suite.NotEqual(results[0].AlreadyReceived, results[1].AlreadyReceived)

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusApproved, stored.Status())
	suite.Equal(order.FinanceApproved, stored.FinanceStatus())
	suite.Equal(order.DeliveryReceived, stored.DeliveryStatus())
	suite.NotNil(stored.DeliveredAt())
	suite.NotNil(stored.ReceivedAt())

	gotItem, err := suite.factory.Create().ItemRepository().Get(ctx, item.ID())
	suite.Require().NoError(err)
	suite.Equal(15, gotItem.CurrentStock())

	again, err := handler.Handle(ctx, confirm)
	suite.Require().NoError(err)
	suite.True(again.AlreadyReceived)

	gotItem, err = suite.factory.Create().ItemRepository().Get(ctx, item.ID())
	suite.Require().NoError(err)
	suite.Equal(15, gotItem.CurrentStock())
}

func (suite *UnitOfWorkIntegrationTestSuite) newItem(stock int) *inventory.Item {
	item, err := inventory.NewItem(kernel.NewUUID(), "Diesel", "Fuel", "litres", stock, 50,
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	return item
}

func (suite *UnitOfWorkIntegrationTestSuite) addItem(stock int) *inventory.Item {
	item := suite.newItem(stock)
	suite.Require().NoError(suite.factory.Create().ItemRepository().Add(context.Background(), item))
	return item
}

func (suite *UnitOfWorkIntegrationTestSuite) newSupplier() *supplier.Supplier {
	s, err := supplier.RestoreSupplier(kernel.NewUUID(), "Pwani Fuel", "sales@pwani.co.ke", "", "",
		supplier.StatusActive, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().SupplierRepository().Add(context.Background(), s))
	return s
}
