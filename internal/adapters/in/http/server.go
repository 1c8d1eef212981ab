// Package http is the REST adapter: it binds requests, checks roles, calls
// the command and query handlers and renders their results as JSON.
package http

import (
	"ferryops/internal/core/application/usecases/commands"
	"ferryops/internal/core/application/usecases/queries"
)

// Handlers are the use cases the REST API exposes.
type Handlers struct {
	CreateOrder     commands.CreateOrderCommandHandler
	DecideOrder     commands.DecideOrderCommandHandler
	SubmitSupply    commands.SubmitSupplyCommandHandler
	DecideFinance   commands.DecideFinanceCommandHandler
	MarkDelivered   commands.MarkDeliveredCommandHandler
	ConfirmReceived commands.ConfirmReceivedCommandHandler

	CreateItem           commands.CreateItemCommandHandler
	UpdateItem           commands.UpdateItemCommandHandler
	DeleteItem           commands.DeleteItemCommandHandler
	RegisterSupplier     commands.RegisterSupplierCommandHandler
	ChangeSupplierStatus commands.ChangeSupplierStatusCommandHandler

	CreateBooking  commands.CreateBookingCommandHandler
	DecidePayment  commands.DecidePaymentCommandHandler
	ApproveBooking commands.ApproveBookingCommandHandler
	AssignFerry    commands.AssignFerryCommandHandler
	CancelBooking  commands.CancelBookingCommandHandler

	PostChatMessage commands.PostChatMessageCommandHandler

	GetOrders         queries.GetOrdersQueryHandler
	GetDeliveries     queries.GetDeliveriesQueryHandler
	GetItems          queries.GetItemsQueryHandler
	GetSuppliers      queries.GetSuppliersQueryHandler
	GetBookings       queries.GetBookingsQueryHandler
	GetBookingReceipt queries.GetBookingReceiptQueryHandler
	GetFinanceSummary queries.GetFinanceSummaryQueryHandler
	GetChatHistory    queries.GetChatHistoryQueryHandler
}

// Server implements the /api/v1 endpoints.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}
