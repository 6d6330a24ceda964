package repositories

import (
	"context"

	"github.com/billkhata/billkhata/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementRepository provides the period-scoped aggregates the balance
// calculator is built on. All sums filter to APPROVED rows except meals,
// which are always live.
type SettlementRepository interface {
	// GetPeriodShoppingTotal sums approved shopping expenses of the period.
	// Legacy rows with a NULL category count as shopping.
	GetPeriodShoppingTotal(ctx context.Context, roomID, periodID string) (decimal.Decimal, error)
	// GetPeriodMealsTotal sums meal totals of the period.
	GetPeriodMealsTotal(ctx context.Context, roomID, periodID string) (int, error)
	// GetMemberTotals returns one row per current room member (members with
	// no activity included with zero totals).
	GetMemberTotals(ctx context.Context, roomID, periodID string) ([]domain.MemberTotals, error)
}
