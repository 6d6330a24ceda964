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

type PgxDepositRepository struct {
	BaseRepository
}

// newPgxDepositRepository creates a new repository for deposits.
func newPgxDepositRepository(pool *pgxpool.Pool) portsrepo.DepositRepository {
	return &PgxDepositRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DepositRepository = (*PgxDepositRepository)(nil)

var FULL_DEPOSIT_SELECT_QUERY = `
SELECT
	d.deposit_id, d.room_id, d.user_id, d.amount, d.status,
	d.calculation_period_id, d.approved_by, d.note,
	d.created_at, d.created_by, d.last_updated_at, d.last_updated_by
FROM deposits d
`

func (r *PgxDepositRepository) getDeposits(ctx context.Context, filterQuery string, args ...any) ([]domain.Deposit, error) {
	query := FULL_DEPOSIT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query deposits", err)
	}
	defer rows.Close()
	deposits, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Deposit])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Deposit{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect deposit rows", err)
	}
	return deposits, nil
}

func (r *PgxDepositRepository) SaveDeposit(ctx context.Context, deposit domain.Deposit) error {
	query := `
		INSERT INTO deposits (
			deposit_id, room_id, user_id, amount, status,
			calculation_period_id, approved_by, note,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		deposit.DepositID,
		deposit.RoomID,
		deposit.UserID,
		deposit.Amount,
		deposit.Status,
		deposit.CalculationPeriodID,
		deposit.ApprovedBy,
		deposit.Note,
		deposit.CreatedAt,
		deposit.CreatedBy,
		deposit.LastUpdatedAt,
		deposit.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("deposit ID " + deposit.DepositID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save deposit "+deposit.DepositID, err)
	}
	return nil
}

func (r *PgxDepositRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error) {
	deposits, err := r.getDeposits(ctx, `WHERE d.deposit_id = $1`, depositID)
	if err != nil {
		return nil, err
	}
	if len(deposits) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &deposits[0], nil
}

func (r *PgxDepositRepository) ListDepositsByRoom(ctx context.Context, roomID string, periodID *string) ([]domain.Deposit, error) {
	if periodID != nil {
		return r.getDeposits(ctx, `WHERE d.room_id = $1 AND d.calculation_period_id = $2 ORDER BY d.created_at DESC`, roomID, *periodID)
	}
	return r.getDeposits(ctx, `WHERE d.room_id = $1 ORDER BY d.created_at DESC`, roomID)
}

func (r *PgxDepositRepository) UpdateDepositStatus(ctx context.Context, depositID string, status domain.ApprovalStatus, approverID string) error {
	query := `
		UPDATE deposits
		SET status = $2, approved_by = $3, last_updated_at = $4, last_updated_by = $3
		WHERE deposit_id = $1 AND status = 'PENDING';
	`
	tag, err := r.Pool.Exec(ctx, query, depositID, status, approverID, time.Now())
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of deposit "+depositID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewValidationFailedError("deposit is not pending")
	}
	return nil
}
