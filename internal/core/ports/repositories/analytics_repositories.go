package repositories

import (
	"context"
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AnalyticsRepository provides the wall-clock-windowed aggregates behind the
// dashboard. Windows are [from, to) on created_at, except bills which
// filter on due_date.
type AnalyticsRepository interface {
	// GetShoppingTotal sums approved shopping expenses created in the window.
	GetShoppingTotal(ctx context.Context, roomID string, from, to time.Time) (decimal.Decimal, error)
	// GetDepositTotal sums approved deposits created in the window.
	GetDepositTotal(ctx context.Context, roomID string, from, to time.Time) (decimal.Decimal, error)
	// GetMealsTotal sums meal totals for dates in the window.
	GetMealsTotal(ctx context.Context, roomID string, from, to time.Time) (int, error)
	// GetBillTotal sums bill amounts due in the window.
	GetBillTotal(ctx context.Context, roomID string, from, to time.Time) (decimal.Decimal, error)
	// GetBillCategoryTotals sums bill amounts due in the window per category.
	GetBillCategoryTotals(ctx context.Context, roomID string, from, to time.Time) ([]domain.CategoryAmount, error)
	GetMonthlyDeposits(ctx context.Context, roomID string, from, to time.Time) ([]domain.MonthlyAmount, error)
	GetMonthlyShopping(ctx context.Context, roomID string, from, to time.Time) ([]domain.MonthlyAmount, error)
	GetMonthlyBillTotals(ctx context.Context, roomID string, from, to time.Time) ([]domain.MonthlyAmount, error)
	GetMonthlyBillCategoryTotals(ctx context.Context, roomID string, from, to time.Time) ([]domain.MonthlyCategoryAmount, error)
}
