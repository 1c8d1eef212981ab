package queries

import (
	"errors"
	"time"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/order"
	"ferryops/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// OrderFilter narrows GetOrdersQuery. Empty slices match every value; a nil
// SupplierID lists orders of all suppliers.
type OrderFilter struct {
	SupplierID       *kernel.UUID
	Statuses         []order.Status
	FinanceStatuses  []order.FinanceStatus
	DeliveryStatuses []order.DeliveryStatus
}

// GetOrdersQuery lists orders newest first.
//
// Example:
//
//	supplierID := identity.ID
//	query, err := NewGetOrdersQuery(OrderFilter{
//	    SupplierID: &supplierID,
//	    Statuses:   []order.Status{order.StatusPending},
//	})
type GetOrdersQuery struct {
	filter OrderFilter
	guard  guard.ConstructorGuard
}

func NewGetOrdersQuery(filter OrderFilter) (GetOrdersQuery, error) {
	var errList []error
	if filter.SupplierID != nil {
		errList = append(errList, filter.SupplierID.Validate())
	}
	for _, s := range filter.Statuses {
		errList = append(errList, s.Validate())
	}
	for _, s := range filter.FinanceStatuses {
		errList = append(errList, s.Validate())
	}
	for _, s := range filter.DeliveryStatuses {
		errList = append(errList, s.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return GetOrdersQuery{}, err
	}
	return GetOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) Filter() OrderFilter { return q.filter }

// OrderView is one order as shown on the supplier, inventory and finance
// dashboards.
type OrderView struct {
	ID             kernel.UUID
	SupplierID     kernel.UUID
	ItemID         kernel.UUID
	SupplierName   string
	ItemName       string
	Quantity       int
	Amount         *kernel.Money
	Status         order.Status
	FinanceStatus  order.FinanceStatus
	DeliveryStatus order.DeliveryStatus
	CreatedAt      time.Time
	DeliveredAt    *time.Time
	ReceivedAt     *time.Time
}
