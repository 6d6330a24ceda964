package pgsql

import (
	"context"
	"time"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type analyticsRepository struct {
	BaseRepository
}

// newAnalyticsRepository creates the repository backing the dashboard
// aggregator. All windows are half-open [from, to).
func newAnalyticsRepository(pool *pgxpool.Pool) portsrepo.AnalyticsRepository {
	return &analyticsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AnalyticsRepository = (*analyticsRepository)(nil)

func (r *analyticsRepository) sumAmount(ctx context.Context, query string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute analytics sum", err)
	}
	return total, nil
}

func (r *analyticsRepository) GetShoppingTotal(ctx context.Context, roomID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE room_id = $1 AND status = 'APPROVED'
			AND (category = 'SHOPPING' OR category IS NULL)
			AND created_at >= $2 AND created_at < $3
	`
	return r.sumAmount(ctx, query, roomID, from, to)
}

func (r *analyticsRepository) GetDepositTotal(ctx context.Context, roomID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM deposits
		WHERE room_id = $1 AND status = 'APPROVED'
			AND created_at >= $2 AND created_at < $3
	`
	return r.sumAmount(ctx, query, roomID, from, to)
}

func (r *analyticsRepository) GetMealsTotal(ctx context.Context, roomID string, from, to time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(total_meals), 0)
		FROM meals
		WHERE room_id = $1 AND date >= $2 AND date < $3
	`
	var total int
	if err := r.Pool.QueryRow(ctx, query, roomID, from, to).Scan(&total); err != nil {
		return 0, apperrors.NewAppError(500, "failed to sum meals in range", err)
	}
	return total, nil
}

func (r *analyticsRepository) GetBillTotal(ctx context.Context, roomID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM bills
		WHERE room_id = $1 AND due_date >= $2 AND due_date < $3
	`
	return r.sumAmount(ctx, query, roomID, from, to)
}

func (r *analyticsRepository) GetBillCategoryTotals(ctx context.Context, roomID string, from, to time.Time) ([]domain.CategoryAmount, error) {
	query := `
		SELECT category, SUM(total_amount) AS amount
		FROM bills
		WHERE room_id = $1 AND due_date >= $2 AND due_date < $3
		GROUP BY category
		ORDER BY category
	`
	rows, err := r.Pool.Query(ctx, query, roomID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bill category totals", err)
	}
	defer rows.Close()

	var result []domain.CategoryAmount
	for rows.Next() {
		var row domain.CategoryAmount
		if err := rows.Scan(&row.Category, &row.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bill category row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate bill category rows", err)
	}
	return result, nil
}

func (r *analyticsRepository) monthlyAmounts(ctx context.Context, query string, args ...any) ([]domain.MonthlyAmount, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query monthly amounts", err)
	}
	defer rows.Close()

	var result []domain.MonthlyAmount
	for rows.Next() {
		var year, month int
		var amount decimal.Decimal
		if err := rows.Scan(&year, &month, &amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan monthly amount row", err)
		}
		result = append(result, domain.MonthlyAmount{Year: year, Month: time.Month(month), Amount: amount})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate monthly amount rows", err)
	}
	return result, nil
}

func (r *analyticsRepository) GetMonthlyDeposits(ctx context.Context, roomID string, from, to time.Time) ([]domain.MonthlyAmount, error) {
	query := `
		SELECT EXTRACT(YEAR FROM created_at)::int, EXTRACT(MONTH FROM created_at)::int, SUM(amount)
		FROM deposits
		WHERE room_id = $1 AND status = 'APPROVED'
			AND created_at >= $2 AND created_at < $3
		GROUP BY 1, 2
		ORDER BY 1, 2
	`
	return r.monthlyAmounts(ctx, query, roomID, from, to)
}

func (r *analyticsRepository) GetMonthlyShopping(ctx context.Context, roomID string, from, to time.Time) ([]domain.MonthlyAmount, error) {
	query := `
		SELECT EXTRACT(YEAR FROM created_at)::int, EXTRACT(MONTH FROM created_at)::int, SUM(amount)
		FROM expenses
		WHERE room_id = $1 AND status = 'APPROVED'
			AND (category = 'SHOPPING' OR category IS NULL)
			AND created_at >= $2 AND created_at < $3
		GROUP BY 1, 2
		ORDER BY 1, 2
	`
	return r.monthlyAmounts(ctx, query, roomID, from, to)
}

func (r *analyticsRepository) GetMonthlyBillTotals(ctx context.Context, roomID string, from, to time.Time) ([]domain.MonthlyAmount, error) {
	query := `
		SELECT EXTRACT(YEAR FROM due_date)::int, EXTRACT(MONTH FROM due_date)::int, SUM(total_amount)
		FROM bills
		WHERE room_id = $1 AND due_date >= $2 AND due_date < $3
		GROUP BY 1, 2
		ORDER BY 1, 2
	`
	return r.monthlyAmounts(ctx, query, roomID, from, to)
}

func (r *analyticsRepository) GetMonthlyBillCategoryTotals(ctx context.Context, roomID string, from, to time.Time) ([]domain.MonthlyCategoryAmount, error) {
	query := `
		SELECT EXTRACT(YEAR FROM due_date)::int, EXTRACT(MONTH FROM due_date)::int, category, SUM(total_amount)
		FROM bills
		WHERE room_id = $1 AND due_date >= $2 AND due_date < $3
		GROUP BY 1, 2, 3
		ORDER BY 1, 2, 3
	`
	rows, err := r.Pool.Query(ctx, query, roomID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query monthly bill category totals", err)
	}
	defer rows.Close()

	var result []domain.MonthlyCategoryAmount
	for rows.Next() {
		var year, month int
		var row domain.MonthlyCategoryAmount
		if err := rows.Scan(&year, &month, &row.Category, &row.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan monthly bill category row", err)
		}
		row.Year = year
		row.Month = time.Month(month)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate monthly bill category rows", err)
	}
	return result, nil
}
