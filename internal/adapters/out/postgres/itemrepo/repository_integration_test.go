package itemrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"ferryops/internal/adapters/out/postgres/itemrepo"
	"ferryops/internal/adapters/out/postgres/pgtest"
	"ferryops/internal/core/domain/model/inventory"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type ItemRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *itemrepo.GormItemRepository
}

func TestItemRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ItemRepositoryIntegrationTestSuite))
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.repository = itemrepo.NewGormItemRepository(db, noopTracker{})
}

func (suite *ItemRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *ItemRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ItemRepositoryIntegrationTestSuite) addItem(stock int) *inventory.Item {
	item, err := inventory.NewItem(kernel.NewUUID(), "Diesel", "Fuel", "litres", stock, 50,
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), item))
	return item
}

func (suite *ItemRepositoryIntegrationTestSuite) TestUpdate_DoesNotOverwriteStock() {
	ctx := context.Background()
	item := suite.addItem(10)

	stale, err := suite.repository.Get(ctx, item.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.IncrementStock(ctx, item.ID(), 5))
	suite.Require().NoError(stale.Update("Diesel EN590", "Fuel", "litres", 40))
	suite.Require().NoError(suite.repository.Update(ctx, stale))

	got, err := suite.repository.Get(ctx, item.ID())
	suite.Require().NoError(err)
	suite.Equal("Diesel EN590", got.Name())
	suite.Equal(40, got.ReorderLevel())
	suite.Equal(15, got.CurrentStock())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestIncrementStock_ConcurrentIncrementsAllApply() {
	ctx := context.Background()
	item := suite.addItem(0)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			suite.NoError(suite.repository.IncrementStock(ctx, item.ID(), 3))
		}()
	}
	wg.Wait()

	got, err := suite.repository.Get(ctx, item.ID())
	suite.Require().NoError(err)
	suite.Equal(30, got.CurrentStock())
}

func (suite *ItemRepositoryIntegrationTestSuite) TestIncrementStock_UnknownItem() {
	err := suite.repository.IncrementStock(context.Background(), kernel.NewUUID(), 1)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ItemRepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	item := suite.addItem(3)

	suite.Require().NoError(suite.repository.Delete(ctx, item.ID()))

	_, err := suite.repository.Get(ctx, item.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.Delete(ctx, item.ID()), errs.ErrObjectNotFound)
}
