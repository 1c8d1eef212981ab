package http

import (
	"net/http"

	"ferryops/internal/core/application/usecases/commands"
	"ferryops/internal/core/application/usecases/queries"
	"ferryops/internal/core/domain/model/supplier"

	"github.com/labstack/echo/v4"
)

// ListItems handles GET /api/v1/items?low_stock=.
func (s *Server) ListItems(c echo.Context) error {
	var lowStock bool
	if err := queryParam(c, "low_stock", &lowStock); err != nil {
		return err
	}

	views, err := s.h.GetItems.Handle(c.Request().Context(), queries.NewGetItemsQuery(lowStock))
	if err != nil {
		return err
	}

	resp := make([]itemResponse, len(views))
	for i, v := range views {
		resp[i] = fromItemView(v)
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateItem handles POST /api/v1/items.
func (s *Server) CreateItem(c echo.Context) error {
	var req itemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateItemCommand(req.details(), req.CurrentStock)
	if err != nil {
		return err
	}
	item, err := s.h.CreateItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

// UpdateItem handles PUT /api/v1/items/{id}. current_stock in the body is
// ignored; stock only moves through receipts.
func (s *Server) UpdateItem(c echo.Context) error {
	itemID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req itemRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateItemCommand(itemID, req.details())
	if err != nil {
		return err
	}
	item, err := s.h.UpdateItem.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

// DeleteItem handles DELETE /api/v1/items/{id}.
func (s *Server) DeleteItem(c echo.Context) error {
	itemID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteItemCommand(itemID)
	if err != nil {
		return err
	}
	if err = s.h.DeleteItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (r itemRequest) details() commands.ItemDetails {
	return commands.ItemDetails{
		Name:         r.Name,
		Category:     r.Category,
		Unit:         r.Unit,
		ReorderLevel: r.ReorderLevel,
	}
}

// ListSuppliers handles GET /api/v1/suppliers?status=.
func (s *Server) ListSuppliers(c echo.Context) error {
	var status *string
	if err := queryParam(c, "status", &status); err != nil {
		return err
	}

	var filter *supplier.Status
	if status != nil {
		st, err := supplier.ParseStatus(*status)
		if err != nil {
			return err
		}
		filter = &st
	}

	query, err := queries.NewGetSuppliersQuery(filter)
	if err != nil {
		return err
	}
	views, err := s.h.GetSuppliers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := make([]supplierResponse, len(views))
	for i, v := range views {
		resp[i] = fromSupplierView(v)
	}
	return c.JSON(http.StatusOK, resp)
}

// RegisterSupplier handles POST /api/v1/suppliers. New suppliers start pending.
func (s *Server) RegisterSupplier(c echo.Context) error {
	var req supplierRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterSupplierCommand(req.Name, req.Email, req.Phone, req.Address)
	if err != nil {
		return err
	}
	sup, err := s.h.RegisterSupplier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSupplierResponse(sup))
}

func (s *Server) ActivateSupplier(c echo.Context) error {
	return s.changeSupplierStatus(c, commands.SupplierActionActivate)
}

func (s *Server) SuspendSupplier(c echo.Context) error {
	return s.changeSupplierStatus(c, commands.SupplierActionSuspend)
}

func (s *Server) changeSupplierStatus(c echo.Context, action commands.SupplierAction) error {
	supplierID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewChangeSupplierStatusCommand(supplierID, action)
	if err != nil {
		return err
	}
	sup, err := s.h.ChangeSupplierStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSupplierResponse(sup))
}
