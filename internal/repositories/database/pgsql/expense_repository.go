package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expenses.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

var FULL_EXPENSE_SELECT_QUERY = `
SELECT
	e.expense_id, e.room_id, e.user_id, e.amount, e.category, e.status,
	e.calculation_period_id, e.source_share, e.description,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
FROM expenses e
`

func (r *PgxExpenseRepository) getExpenses(ctx context.Context, filterQuery string, args ...any) ([]domain.Expense, error) {
	query := FULL_EXPENSE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	defer rows.Close()
	expenses, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Expense])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Expense{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect expense rows", err)
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	query := `
		INSERT INTO expenses (
			expense_id, room_id, user_id, amount, category, status,
			calculation_period_id, source_share, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.RoomID,
		expense.UserID,
		expense.Amount,
		expense.Category,
		expense.Status,
		expense.CalculationPeriodID,
		expense.SourceShare,
		expense.Description,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("expense already exists")
		}
		return apperrors.NewAppError(500, "failed to save expense "+expense.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expenses, err := r.getExpenses(ctx, `WHERE e.expense_id = $1`, expenseID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &expenses[0], nil
}

func (r *PgxExpenseRepository) ListExpensesByRoom(ctx context.Context, roomID string, periodID *string) ([]domain.Expense, error) {
	if periodID != nil {
		return r.getExpenses(ctx, `WHERE e.room_id = $1 AND e.calculation_period_id = $2 ORDER BY e.created_at DESC`, roomID, *periodID)
	}
	return r.getExpenses(ctx, `WHERE e.room_id = $1 ORDER BY e.created_at DESC`, roomID)
}

func (r *PgxExpenseRepository) UpdateExpenseStatus(ctx context.Context, expenseID string, status domain.ApprovalStatus, approverID string) error {
	query := `
		UPDATE expenses
		SET status = $2, last_updated_at = $4, last_updated_by = $3
		WHERE expense_id = $1 AND status = 'PENDING';
	`
	tag, err := r.Pool.Exec(ctx, query, expenseID, status, approverID, time.Now())
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of expense "+expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewValidationFailedError("expense is not pending")
	}
	return nil
}
