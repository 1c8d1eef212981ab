package cmd

import (
	"context"

	httpadapter "ferryops/internal/adapters/in/http"
	"ferryops/internal/adapters/in/http/auth"
	chathttp "ferryops/internal/adapters/in/http/chat"
	"ferryops/internal/adapters/out/postgres"
	"ferryops/internal/core/application/usecases/commands"
	"ferryops/internal/core/application/usecases/queries"
	"ferryops/internal/core/domain/services"
	"ferryops/internal/core/ports"
	"ferryops/internal/jobs"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg         Config
	readDB      *sqlx.DB
	logger      *zap.Logger
	uowFactory  *postgres.GormUnitOfWorkFactory
	gate        *auth.Gate
	hub         *chathttp.Hub
	broadcaster ports.ChatBroadcaster
}

// NewCompositionRoot wires the write side on gormDB and the read side on
// readDB. listeners are told about every committed aggregate. Chat messages
// go to local websocket clients until UseChatBroadcaster says otherwise.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	readDB *sqlx.DB,
	logger *zap.Logger,
	listeners ...ports.CommitListener,
) *CompositionRoot {
	hub := chathttp.NewHub(logger)
	return &CompositionRoot{
		cfg:         cfg,
		readDB:      readDB,
		logger:      logger,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB, listeners...),
		gate:        auth.NewGate(cfg.JWTSecret),
		hub:         hub,
		broadcaster: hub,
	}
}

// Hub is the set of websocket clients connected to this instance.
func (c *CompositionRoot) Hub() *chathttp.Hub {
	return c.hub
}

// UseChatBroadcaster replaces in-process fan-out, e.g. with the Redis relay.
// Call it before building handlers.
func (c *CompositionRoot) UseChatBroadcaster(b ports.ChatBroadcaster) {
	c.broadcaster = b
}

func (c *CompositionRoot) Gate() *auth.Gate {
	return c.gate
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) inventoryUoWFactory() commands.InventoryUoWFactory {
	return FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) supplierUoWFactory() commands.SupplierUoWFactory {
	return FuncSupplierUoWFactory(func() commands.SupplierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) bookingUoWFactory() commands.BookingUoWFactory {
	return FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) chatUoWFactory() commands.ChatUoWFactory {
	return FuncChatUoWFactory(func() commands.ChatUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateRelayChatMessageCommandHandler() commands.RelayChatMessageCommandHandler {
	return commands.NewRelayChatMessageCommandHandler(c.chatUoWFactory(), c.broadcaster, c.logger)
}

func (c *CompositionRoot) CreateCompleteDepartedBookingsCommandHandler() commands.CompleteDepartedBookingsCommandHandler {
	return commands.NewCompleteDepartedBookingsCommandHandler(c.bookingUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetItemsQueryHandler() queries.GetItemsQueryHandler {
	return queries.NewGetItemsQueryHandler(c.readDB)
}

// HTTPHandlers builds every use case the REST API serves.
func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateOrder:     commands.NewCreateOrderCommandHandler(c.orderUoWFactory()),
		DecideOrder:     commands.NewDecideOrderCommandHandler(c.orderUoWFactory()),
		SubmitSupply:    commands.NewSubmitSupplyCommandHandler(c.orderUoWFactory()),
		DecideFinance:   commands.NewDecideFinanceCommandHandler(c.orderUoWFactory()),
		MarkDelivered:   commands.NewMarkDeliveredCommandHandler(c.orderUoWFactory()),
		ConfirmReceived: commands.NewConfirmReceivedCommandHandler(c.orderUoWFactory(), c.logger),

		CreateItem:           commands.NewCreateItemCommandHandler(c.inventoryUoWFactory()),
		UpdateItem:           commands.NewUpdateItemCommandHandler(c.inventoryUoWFactory()),
		DeleteItem:           commands.NewDeleteItemCommandHandler(c.inventoryUoWFactory()),
		RegisterSupplier:     commands.NewRegisterSupplierCommandHandler(c.supplierUoWFactory()),
		ChangeSupplierStatus: commands.NewChangeSupplierStatusCommandHandler(c.supplierUoWFactory()),

		CreateBooking:  commands.NewCreateBookingCommandHandler(c.bookingUoWFactory()),
		DecidePayment:  commands.NewDecidePaymentCommandHandler(c.bookingUoWFactory()),
		ApproveBooking: commands.NewApproveBookingCommandHandler(c.bookingUoWFactory()),
		AssignFerry:    commands.NewAssignFerryCommandHandler(c.bookingUoWFactory()),
		CancelBooking:  commands.NewCancelBookingCommandHandler(c.bookingUoWFactory()),

		PostChatMessage: commands.NewPostChatMessageCommandHandler(c.chatUoWFactory(), c.broadcaster, c.logger),

		GetOrders:         queries.NewGetOrdersQueryHandler(c.readDB),
		GetDeliveries:     queries.NewGetDeliveriesQueryHandler(c.readDB, services.NewDeliveryProjector()),
		GetItems:          c.CreateGetItemsQueryHandler(),
		GetSuppliers:      queries.NewGetSuppliersQueryHandler(c.readDB),
		GetBookings:       queries.NewGetBookingsQueryHandler(c.readDB),
		GetBookingReceipt: queries.NewGetBookingReceiptQueryHandler(c.readDB),
		GetFinanceSummary: queries.NewGetFinanceSummaryQueryHandler(c.readDB),
		GetChatHistory:    queries.NewGetChatHistoryQueryHandler(c.readDB),
	}
}

// NewRouter builds the HTTP surface: REST API, chat socket, docs and metrics.
func (c *CompositionRoot) NewRouter(ctx context.Context) (*echo.Echo, error) {
	socket := chathttp.NewHandler(c.hub, c.CreateRelayChatMessageCommandHandler(), c.logger)

	return httpadapter.NewRouter(ctx, httpadapter.RouterDeps{
		Server:     httpadapter.NewServer(c.HTTPHandlers()),
		Gate:       c.gate,
		ChatSocket: socket.Serve,
		Logger:     c.logger,
	})
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetItemsQueryHandler(),
		c.CreateCompleteDepartedBookingsCommandHandler(),
		jobs.Schedules{
			LowStock:          c.cfg.LowStockSchedule,
			BookingCompletion: c.cfg.BookingCompletionSchedule,
		},
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncSupplierUoWFactory func() commands.SupplierUoW

func (f FuncSupplierUoWFactory) Create() commands.SupplierUoW {
	return f()
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncChatUoWFactory func() commands.ChatUoW

func (f FuncChatUoWFactory) Create() commands.ChatUoW {
	return f()
}
