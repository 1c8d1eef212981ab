package queries

import (
	"context"
	"errors"
	"time"

	"ferryops/internal/core/domain/model/order"
	"ferryops/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// GetDeliveriesQueryHandler reads orders joined with their item and supplier
// records and hands them to the DeliveryProjector. Nothing is written back.
type GetDeliveriesQueryHandler struct {
	db        *sqlx.DB
	projector services.DeliveryProjector
}

func NewGetDeliveriesQueryHandler(db *sqlx.DB, projector services.DeliveryProjector) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{db: db, projector: projector}
}

type deliveryRow struct {
	OrderID            uuid.UUID           `db:"id"`
	ItemName           string              `db:"item_name"`
	SupplierName       string              `db:"supplier_name"`
	ItemRecordName     string              `db:"item_record_name"`
	SupplierRecordName string              `db:"supplier_record_name"`
	Quantity           int                 `db:"quantity"`
	Amount             decimal.NullDecimal `db:"amount"`
	DeliveredAt        *time.Time          `db:"delivered_at"`
	DeliveryStatus     string              `db:"delivery_status"`
	CreatedAt          time.Time           `db:"created_at"`
}

func (h GetDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveriesQuery,
) (GetDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveriesQueryResponse{}, err
	}

	var w where
	if id := query.SupplierID(); id != nil {
		w.add("o.supplier_id = ?", id.Bytes())
	}

	q := h.db.Rebind(`
		SELECT o.id, o.item_name, o.supplier_name,
		       COALESCE(i.name, '') AS item_record_name,
		       COALESCE(s.name, '') AS supplier_record_name,
		       o.quantity, o.amount, o.delivered_at, o.delivery_status, o.created_at
		FROM orders o
		LEFT JOIN inventory_items i ON i.id = o.item_id
		LEFT JOIN suppliers s ON s.id = o.supplier_id` + w.String() + `
		ORDER BY o.created_at DESC, o.id`)

	var rows []deliveryRow
	if err := h.db.SelectContext(ctx, &rows, q, w.args...); err != nil {
		return GetDeliveriesQueryResponse{}, err
	}

	sources := make([]services.DeliverySource, 0, len(rows))
	for _, r := range rows {
		src, err := r.toSource()
		if err != nil {
			return GetDeliveriesQueryResponse{}, err
		}
		sources = append(sources, src)
	}

	deliveries := h.projector.FilterDeliveries(h.projector.Project(sources), query.Search())
	resp := GetDeliveriesQueryResponse{Deliveries: deliveries}
	if query.GroupByItem() {
		resp.Totals = h.projector.GroupByItem(deliveries)
		if resp.Totals == nil {
			resp.Totals = []services.ItemTotal{}
		}
	}
	return resp, nil
}

func (r deliveryRow) toSource() (services.DeliverySource, error) {
	id, idErr := toUUID(r.OrderID)
	amount, amountErr := toMoney(r.Amount)
	status, statusErr := order.ParseDeliveryStatus(r.DeliveryStatus)
	if err := errors.Join(idErr, amountErr, statusErr); err != nil {
		return services.DeliverySource{}, err
	}

	return services.DeliverySource{
		OrderID:            id,
		ItemName:           r.ItemName,
		SupplierName:       r.SupplierName,
		ItemRecordName:     r.ItemRecordName,
		SupplierRecordName: r.SupplierRecordName,
		Quantity:           r.Quantity,
		Amount:             amount,
		DeliveredAt:        utcPtr(r.DeliveredAt),
		DeliveryStatus:     status,
		CreatedAt:          r.CreatedAt.UTC(),
	}, nil
}
