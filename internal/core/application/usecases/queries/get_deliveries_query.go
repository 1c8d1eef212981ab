package queries

import (
	"errors"
	"strings"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/services"
	"ferryops/internal/pkg/guard"
)

var ErrGetDeliveriesQueryIsNotConstructed = errors.New(
	"GetDeliveriesQuery must be created via NewGetDeliveriesQuery constructor",
)

// GetDeliveriesQuery builds the delivery view of every order, optionally for
// one supplier, filtered by a free-text search on item or supplier name.
// With groupByItem the response also carries per-item delivered totals.
type GetDeliveriesQuery struct {
	supplierID  *kernel.UUID
	search      string
	groupByItem bool

	guard guard.ConstructorGuard
}

func NewGetDeliveriesQuery(supplierID *kernel.UUID, search string, groupByItem bool) (GetDeliveriesQuery, error) {
	if supplierID != nil {
		if err := supplierID.Validate(); err != nil {
			return GetDeliveriesQuery{}, err
		}
	}
	return GetDeliveriesQuery{
		supplierID:  supplierID,
		search:      strings.TrimSpace(search),
		groupByItem: groupByItem,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

func (q GetDeliveriesQuery) SupplierID() *kernel.UUID { return q.supplierID }
func (q GetDeliveriesQuery) Search() string           { return q.search }
func (q GetDeliveriesQuery) GroupByItem() bool        { return q.groupByItem }

// GetDeliveriesQueryResponse holds the deliveries newest first. Totals is nil
// unless grouping was requested.
type GetDeliveriesQueryResponse struct {
	Deliveries []services.Delivery
	Totals     []services.ItemTotal
}
