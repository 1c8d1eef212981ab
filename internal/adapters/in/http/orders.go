package http

import (
	"net/http"

	"ferryops/internal/adapters/in/http/auth"
	"ferryops/internal/core/application/usecases/commands"
	"ferryops/internal/core/application/usecases/queries"
	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// ListOrders handles GET /api/v1/orders. Suppliers only see their own orders.
func (s *Server) ListOrders(c echo.Context) error {
	var status, financeStatus, deliveryStatus *string
	if err := queryParam(c, "status", &status); err != nil {
		return err
	}
	if err := queryParam(c, "finance_status", &financeStatus); err != nil {
		return err
	}
	if err := queryParam(c, "delivery_status", &deliveryStatus); err != nil {
		return err
	}

	var filter queries.OrderFilter
	if id := identity(c); id.Role == auth.RoleSupplier {
		filter.SupplierID = &id.ID
	}
	if status != nil {
		st, err := order.ParseStatus(*status)
		if err != nil {
			return err
		}
		filter.Statuses = []order.Status{st}
	}
	if financeStatus != nil {
		st, err := order.ParseFinanceStatus(*financeStatus)
		if err != nil {
			return err
		}
		filter.FinanceStatuses = []order.FinanceStatus{st}
	}
	if deliveryStatus != nil {
		st, err := order.ParseDeliveryStatus(*deliveryStatus)
		if err != nil {
			return err
		}
		filter.DeliveryStatuses = []order.DeliveryStatus{st}
	}

	query, err := queries.NewGetOrdersQuery(filter)
	if err != nil {
		return err
	}
	views, err := s.h.GetOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]orderResponse, len(views))
	for i, v := range views {
		resp[i] = fromOrderView(v)
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	supplierID, err := parseUUID(req.SupplierID, "supplier_id")
	if err != nil {
		return err
	}
	itemID, err := parseUUID(req.ItemID, "item_id")
	if err != nil {
		return err
	}
	amount, err := optionalMoney(req.Amount, "amount")
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(supplierID, itemID, req.Quantity, amount)
	if err != nil {
		return err
	}
	o, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderResponse(o))
}

// AcceptOrder handles PUT /api/v1/orders/{id}/accept.
func (s *Server) AcceptOrder(c echo.Context) error {
	return s.decideOrder(c, commands.DecisionApprove)
}

// RejectOrder handles PUT /api/v1/orders/{id}/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	return s.decideOrder(c, commands.DecisionReject)
}

func (s *Server) decideOrder(c echo.Context, decision commands.Decision) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDecideOrderCommand(orderID, identity(c).ID, decision)
	if err != nil {
		return err
	}
	o, err := s.h.DecideOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// SubmitSupply handles PUT /api/v1/orders/{id}/supply.
func (s *Server) SubmitSupply(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req supplyRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	amount, err := optionalMoney(&req.Amount, "amount")
	if err != nil {
		return err
	}

	cmd, err := commands.NewSubmitSupplyCommand(orderID, identity(c).ID, amount)
	if err != nil {
		return err
	}
	o, err := s.h.SubmitSupply.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// DecideFinance handles PUT /api/v1/orders/{id}/finance.
func (s *Server) DecideFinance(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req decisionRequest
	if err = bind(c, &req); err != nil {
		return err
	}
	decision, err := commands.ParseDecision(req.Decision)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDecideFinanceCommand(orderID, decision)
	if err != nil {
		return err
	}
	o, err := s.h.DecideFinance.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// MarkDelivered handles PUT /api/v1/orders/{id}/delivered.
func (s *Server) MarkDelivered(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID, identity(c).ID)
	if err != nil {
		return err
	}
	o, err := s.h.MarkDelivered.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// ConfirmReceived handles PUT /api/v1/orders/{id}/received. A repeated
// confirmation answers 200 with already_received set.
func (s *Server) ConfirmReceived(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewConfirmReceivedCommand(orderID)
	if err != nil {
		return err
	}
	res, err := s.h.ConfirmReceived.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, confirmReceivedResponse{
		Order:           toOrderResponse(res.Order),
		AlreadyReceived: res.AlreadyReceived,
	})
}

// ListDeliveries handles GET /api/v1/deliveries?q=&group=.
func (s *Server) ListDeliveries(c echo.Context) error {
	var search string
	var group bool
	if err := queryParam(c, "q", &search); err != nil {
		return err
	}
	if err := queryParam(c, "group", &group); err != nil {
		return err
	}

	var supplierID *kernel.UUID
	if id := identity(c); id.Role == auth.RoleSupplier {
		supplierID = &id.ID
	}

	query, err := queries.NewGetDeliveriesQuery(supplierID, search, group)
	if err != nil {
		return err
	}
	resp, err := s.h.GetDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fromDeliveries(resp))
}
