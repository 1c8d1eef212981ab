package queries

import (
	"context"
	"errors"
	"time"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrGetItemsQueryIsNotConstructed = errors.New(
	"GetItemsQuery must be created via NewGetItemsQuery constructor",
)

// GetItemsQuery lists inventory items by name. With lowStockOnly only items at
// or below their reorder level are returned.
type GetItemsQuery struct {
	lowStockOnly bool
	guard        guard.ConstructorGuard
}

func NewGetItemsQuery(lowStockOnly bool) GetItemsQuery {
	return GetItemsQuery{lowStockOnly: lowStockOnly, guard: guard.NewConstructorGuard()}
}

func (q GetItemsQuery) Validate() error {
	return q.guard.Validate(ErrGetItemsQueryIsNotConstructed)
}

func (q GetItemsQuery) LowStockOnly() bool { return q.lowStockOnly }

type ItemView struct {
	ID           kernel.UUID
	Name         string
	Category     string
	Unit         string
	CurrentStock int
	ReorderLevel int
	LowStock     bool
	CreatedAt    time.Time
}

type GetItemsQueryHandler struct {
	db *sqlx.DB
}

func NewGetItemsQueryHandler(db *sqlx.DB) GetItemsQueryHandler {
	return GetItemsQueryHandler{db: db}
}

type itemRow struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Category     string    `db:"category"`
	Unit         string    `db:"unit"`
	CurrentStock int       `db:"current_stock"`
	ReorderLevel int       `db:"reorder_level"`
	CreatedAt    time.Time `db:"created_at"`
}

func (h GetItemsQueryHandler) Handle(ctx context.Context, query GetItemsQuery) ([]ItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var w where
	if query.LowStockOnly() {
		w.add("current_stock <= reorder_level")
	}

	var rows []itemRow
	q := `SELECT id, name, category, unit, current_stock, reorder_level, created_at
		FROM inventory_items` + w.String() + ` ORDER BY name, id`
	if err := h.db.SelectContext(ctx, &rows, h.db.Rebind(q), w.args...); err != nil {
		return nil, err
	}

	views := make([]ItemView, 0, len(rows))
	for _, r := range rows {
		id, err := toUUID(r.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, ItemView{
			ID:           id,
			Name:         r.Name,
			Category:     r.Category,
			Unit:         r.Unit,
			CurrentStock: r.CurrentStock,
			ReorderLevel: r.ReorderLevel,
			LowStock:     r.CurrentStock <= r.ReorderLevel,
			CreatedAt:    r.CreatedAt.UTC(),
		})
	}
	return views, nil
}
