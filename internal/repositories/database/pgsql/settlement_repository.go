package pgsql

import (
	"context"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type settlementRepository struct {
	BaseRepository
}

// newSettlementRepository creates the repository backing the balance
// calculator.
func newSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepository {
	return &settlementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SettlementRepository = (*settlementRepository)(nil)

// GetPeriodShoppingTotal sums approved shopping spend of the period. Legacy
// rows with a NULL category predate the category column and count as
// shopping.
func (r *settlementRepository) GetPeriodShoppingTotal(ctx context.Context, roomID, periodID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(e.amount), 0)
		FROM expenses e
		WHERE e.room_id = $1
			AND e.calculation_period_id = $2
			AND e.status = 'APPROVED'
			AND (e.category = 'SHOPPING' OR e.category IS NULL)
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, roomID, periodID).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum shopping expenses", err)
	}
	return total, nil
}

func (r *settlementRepository) GetPeriodMealsTotal(ctx context.Context, roomID, periodID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(m.total_meals), 0)
		FROM meals m
		WHERE m.room_id = $1 AND m.calculation_period_id = $2
	`
	var total int
	if err := r.Pool.QueryRow(ctx, query, roomID, periodID).Scan(&total); err != nil {
		return 0, apperrors.NewAppError(500, "failed to sum meals", err)
	}
	return total, nil
}

// GetMemberTotals returns one row per current member of the room, left
// joined against the period's approved deposits, meals, and approved bill
// payments so inactive members still appear with zero totals.
func (r *settlementRepository) GetMemberTotals(ctx context.Context, roomID, periodID string) ([]domain.MemberTotals, error) {
	query := `
		SELECT
			ur.user_id,
			u.name AS user_name,
			COALESCE(d.total, 0) AS total_deposits,
			COALESCE(m.total, 0)::int AS total_meals,
			COALESCE(bp.total, 0) AS total_bill_payments
		FROM user_rooms ur
		JOIN users u ON u.user_id = ur.user_id
		LEFT JOIN (
			SELECT user_id, SUM(amount) AS total
			FROM deposits
			WHERE room_id = $1 AND calculation_period_id = $2 AND status = 'APPROVED'
			GROUP BY user_id
		) d ON d.user_id = ur.user_id
		LEFT JOIN (
			SELECT user_id, SUM(total_meals) AS total
			FROM meals
			WHERE room_id = $1 AND calculation_period_id = $2
			GROUP BY user_id
		) m ON m.user_id = ur.user_id
		LEFT JOIN (
			SELECT user_id, SUM(amount) AS total
			FROM expenses
			WHERE room_id = $1 AND calculation_period_id = $2
				AND status = 'APPROVED' AND category = 'BILL_PAYMENT'
			GROUP BY user_id
		) bp ON bp.user_id = ur.user_id
		WHERE ur.room_id = $1 AND ur.role <> 'REMOVED'
		ORDER BY u.name
	`
	rows, err := r.Pool.Query(ctx, query, roomID, periodID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query member totals", err)
	}
	defer rows.Close()

	var result []domain.MemberTotals
	for rows.Next() {
		var row domain.MemberTotals
		if err := rows.Scan(
			&row.UserID,
			&row.UserName,
			&row.TotalDeposits,
			&row.TotalMeals,
			&row.TotalBillPayments,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan member totals row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate member totals rows", err)
	}

	if len(result) == 0 {
		return []domain.MemberTotals{}, nil
	}
	return result, nil
}
