package http

import (
	"ferryops/internal/adapters/in/http/auth"

	"github.com/labstack/echo/v4"
)

// Register mounts every endpoint on g behind the roles allowed to call it.
// after runs once the caller is authorized.
func (s *Server) Register(g *echo.Group, gate *auth.Gate, after ...echo.MiddlewareFunc) {
	only := func(roles ...auth.Role) []echo.MiddlewareFunc {
		return append([]echo.MiddlewareFunc{auth.RequireRole(gate, roles...)}, after...)
	}
	supplier := only(auth.RoleSupplier)
	inventory := only(auth.RoleInventory)
	finance := only(auth.RoleFinance)
	passenger := only(auth.RolePassenger)
	admin := only(auth.RoleAdmin)
	pipeline := only(auth.RoleSupplier, auth.RoleInventory, auth.RoleFinance)
	chat := only(auth.RoleSupplier, auth.RoleInventory)

	g.GET("/orders", s.ListOrders, pipeline...)
	g.POST("/orders", s.CreateOrder, inventory...)
	g.PUT("/orders/:id/accept", s.AcceptOrder, supplier...)
	g.PUT("/orders/:id/reject", s.RejectOrder, supplier...)
	g.PUT("/orders/:id/supply", s.SubmitSupply, supplier...)
	g.PUT("/orders/:id/delivered", s.MarkDelivered, supplier...)
	g.PUT("/orders/:id/finance", s.DecideFinance, finance...)
	g.PUT("/orders/:id/received", s.ConfirmReceived, inventory...)
	g.GET("/deliveries", s.ListDeliveries, pipeline...)

	g.GET("/items", s.ListItems, inventory...)
	g.POST("/items", s.CreateItem, inventory...)
	g.PUT("/items/:id", s.UpdateItem, inventory...)
	g.DELETE("/items/:id", s.DeleteItem, inventory...)

	g.GET("/suppliers", s.ListSuppliers, only(auth.RoleInventory, auth.RoleAdmin)...)
	g.POST("/suppliers", s.RegisterSupplier, admin...)
	g.PUT("/suppliers/:id/activate", s.ActivateSupplier, admin...)
	g.PUT("/suppliers/:id/suspend", s.SuspendSupplier, admin...)

	g.POST("/bookings", s.CreateBooking, passenger...)
	g.GET("/bookings/mine", s.MyBookings, passenger...)
	g.GET("/bookings/paid", s.PaidBookings, passenger...)
	g.PUT("/bookings/:id/cancel", s.CancelBooking, passenger...)
	g.GET("/bookings/:id/receipt", s.BookingReceipt, only(auth.RolePassenger, auth.RoleFinance)...)

	g.GET("/finance/bookings", s.ListBookings, finance...)
	g.PUT("/finance/bookings/:id/payment", s.DecidePayment, finance...)
	g.PUT("/finance/bookings/:id/approve", s.ApproveBooking, finance...)
	g.PUT("/finance/bookings/:id/ferry", s.AssignFerry, finance...)
	g.GET("/finance/summary", s.FinanceSummary, finance...)

	g.GET("/chat/rooms/:roomId/messages", s.ChatHistory, chat...)
	g.POST("/chat/rooms/:roomId/messages", s.PostChatMessage, chat...)
}

// identity is only called behind RequireRole.
func identity(c echo.Context) auth.Identity {
	id, _ := auth.IdentityFrom(c)
	return id
}
