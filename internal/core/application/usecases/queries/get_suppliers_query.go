package queries

import (
	"context"
	"errors"
	"time"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/core/domain/model/supplier"
	"ferryops/internal/pkg/guard"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrGetSuppliersQueryIsNotConstructed = errors.New(
	"GetSuppliersQuery must be created via NewGetSuppliersQuery constructor",
)

// GetSuppliersQuery lists suppliers by name, optionally in one status.
type GetSuppliersQuery struct {
	status *supplier.Status
	guard  guard.ConstructorGuard
}

func NewGetSuppliersQuery(status *supplier.Status) (GetSuppliersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetSuppliersQuery{}, err
		}
	}
	return GetSuppliersQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSuppliersQuery) Validate() error {
	return q.guard.Validate(ErrGetSuppliersQueryIsNotConstructed)
}

func (q GetSuppliersQuery) Status() *supplier.Status { return q.status }

type SupplierView struct {
	ID        kernel.UUID
	Name      string
	Email     string
	Phone     string
	Address   string
	Status    supplier.Status
	CreatedAt time.Time
}

type GetSuppliersQueryHandler struct {
	db *sqlx.DB
}

func NewGetSuppliersQueryHandler(db *sqlx.DB) GetSuppliersQueryHandler {
	return GetSuppliersQueryHandler{db: db}
}

type supplierRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Address   string    `db:"address"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

func (h GetSuppliersQueryHandler) Handle(ctx context.Context, query GetSuppliersQuery) ([]SupplierView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var w where
	if s := query.Status(); s != nil {
		w.add("status = ?", s.String())
	}

	var rows []supplierRow
	q := `SELECT id, name, email, phone, address, status, created_at
		FROM suppliers` + w.String() + ` ORDER BY name, id`
	if err := h.db.SelectContext(ctx, &rows, h.db.Rebind(q), w.args...); err != nil {
		return nil, err
	}

	views := make([]SupplierView, 0, len(rows))
	for _, r := range rows {
		id, idErr := toUUID(r.ID)
		status, statusErr := supplier.ParseStatus(r.Status)
		if err := errors.Join(idErr, statusErr); err != nil {
			return nil, err
		}
		views = append(views, SupplierView{
			ID:        id,
			Name:      r.Name,
			Email:     r.Email,
			Phone:     r.Phone,
			Address:   r.Address,
			Status:    status,
			CreatedAt: r.CreatedAt.UTC(),
		})
	}
	return views, nil
}
