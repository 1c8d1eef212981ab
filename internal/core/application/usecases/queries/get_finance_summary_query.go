package queries

import (
	"context"
	"errors"

	"ferryops/internal/core/domain/model/kernel"
	"ferryops/internal/pkg/guard"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var ErrGetFinanceSummaryQueryIsNotConstructed = errors.New(
	"GetFinanceSummaryQuery must be created via NewGetFinanceSummaryQuery constructor",
)

// GetFinanceSummaryQuery totals booking payments by payment status.
type GetFinanceSummaryQuery struct {
	guard guard.ConstructorGuard
}

func NewGetFinanceSummaryQuery() GetFinanceSummaryQuery {
	return GetFinanceSummaryQuery{guard: guard.NewConstructorGuard()}
}

func (q GetFinanceSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetFinanceSummaryQueryIsNotConstructed)
}

// FinanceSummary: TotalRevenue sums paid bookings, PendingAmount and
// RejectedAmount sum the other two payment states.
type FinanceSummary struct {
	TotalBookings  int
	TotalRevenue   kernel.Money
	PendingAmount  kernel.Money
	RejectedAmount kernel.Money
}

type GetFinanceSummaryQueryHandler struct {
	db *sqlx.DB
}

func NewGetFinanceSummaryQueryHandler(db *sqlx.DB) GetFinanceSummaryQueryHandler {
	return GetFinanceSummaryQueryHandler{db: db}
}

type summaryRow struct {
	TotalBookings  int             `db:"total_bookings"`
	TotalRevenue   decimal.Decimal `db:"total_revenue"`
	PendingAmount  decimal.Decimal `db:"pending_amount"`
	RejectedAmount decimal.Decimal `db:"rejected_amount"`
}

func (h GetFinanceSummaryQueryHandler) Handle(ctx context.Context, query GetFinanceSummaryQuery) (FinanceSummary, error) {
	if err := query.Validate(); err != nil {
		return FinanceSummary{}, err
	}

	var row summaryRow
	err := h.db.GetContext(ctx, &row, `
		SELECT count(*) AS total_bookings,
		       COALESCE(SUM(amount_paid) FILTER (WHERE payment_status = 'paid'), 0) AS total_revenue,
		       COALESCE(SUM(amount_paid) FILTER (WHERE payment_status = 'pending'), 0) AS pending_amount,
		       COALESCE(SUM(amount_paid) FILTER (WHERE payment_status = 'rejected'), 0) AS rejected_amount
		FROM bookings`)
	if err != nil {
		return FinanceSummary{}, err
	}

	revenue, revenueErr := kernel.NewMoney(row.TotalRevenue)
	pending, pendingErr := kernel.NewMoney(row.PendingAmount)
	rejected, rejectedErr := kernel.NewMoney(row.RejectedAmount)
	if err = errors.Join(revenueErr, pendingErr, rejectedErr); err != nil {
		return FinanceSummary{}, err
	}

	return FinanceSummary{
		TotalBookings:  row.TotalBookings,
		TotalRevenue:   revenue,
		PendingAmount:  pending,
		RejectedAmount: rejected,
	}, nil
}
