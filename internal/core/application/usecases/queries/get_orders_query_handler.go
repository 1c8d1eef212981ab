package queries

import (
	"context"
	"errors"
	"time"

	"ferryops/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type GetOrdersQueryHandler struct {
	db *sqlx.DB
}

func NewGetOrdersQueryHandler(db *sqlx.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

type orderRow struct {
	ID             uuid.UUID           `db:"id"`
	SupplierID     uuid.UUID           `db:"supplier_id"`
	ItemID         uuid.UUID           `db:"item_id"`
	SupplierName   string              `db:"supplier_name"`
	ItemName       string              `db:"item_name"`
	Quantity       int                 `db:"quantity"`
	Amount         decimal.NullDecimal `db:"amount"`
	Status         string              `db:"status"`
	FinanceStatus  string              `db:"finance_status"`
	DeliveryStatus string              `db:"delivery_status"`
	CreatedAt      time.Time           `db:"created_at"`
	DeliveredAt    *time.Time          `db:"delivered_at"`
	ReceivedAt     *time.Time          `db:"received_at"`
}

// Handle returns the matching orders ordered by created_at descending.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	f := query.Filter()
	var w where
	if f.SupplierID != nil {
		w.add("supplier_id = ?", f.SupplierID.Bytes())
	}
	w.anyOf("status", names(f.Statuses))
	w.anyOf("finance_status", names(f.FinanceStatuses))
	w.anyOf("delivery_status", names(f.DeliveryStatuses))

	q := h.db.Rebind(`
		SELECT id, supplier_id, item_id, supplier_name, item_name, quantity, amount,
		       status, finance_status, delivery_status, created_at, delivered_at, received_at
		FROM orders` + w.String() + `
		ORDER BY created_at DESC, id`)

	var rows []orderRow
	if err := h.db.SelectContext(ctx, &rows, q, w.args...); err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(rows))
	for _, r := range rows {
		v, err := r.toView()
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (r orderRow) toView() (OrderView, error) {
	id, idErr := toUUID(r.ID)
	supplierID, supplierErr := toUUID(r.SupplierID)
	itemID, itemErr := toUUID(r.ItemID)
	amount, amountErr := toMoney(r.Amount)
	status, statusErr := order.ParseStatus(r.Status)
	finance, financeErr := order.ParseFinanceStatus(r.FinanceStatus)
	delivery, deliveryErr := order.ParseDeliveryStatus(r.DeliveryStatus)
	if err := errors.Join(idErr, supplierErr, itemErr, amountErr, statusErr, financeErr, deliveryErr); err != nil {
		return OrderView{}, err
	}

	return OrderView{
		ID:             id,
		SupplierID:     supplierID,
		ItemID:         itemID,
		SupplierName:   r.SupplierName,
		ItemName:       r.ItemName,
		Quantity:       r.Quantity,
		Amount:         amount,
		Status:         status,
		FinanceStatus:  finance,
		DeliveryStatus: delivery,
		CreatedAt:      r.CreatedAt.UTC(),
		DeliveredAt:    utcPtr(r.DeliveredAt),
		ReceivedAt:     utcPtr(r.ReceivedAt),
	}, nil
}
