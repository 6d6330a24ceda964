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

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for calculation periods.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepository {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PeriodRepository = (*PgxPeriodRepository)(nil)

var FULL_PERIOD_SELECT_QUERY = `
SELECT
	p.period_id, p.room_id, p.name, p.start_date, p.end_date, p.status,
	p.started_by, p.ended_by,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM calculation_periods p
`

func (r *PgxPeriodRepository) getPeriods(ctx context.Context, filterQuery string, args ...any) ([]domain.CalculationPeriod, error) {
	query := FULL_PERIOD_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query calculation periods", err)
	}
	defer rows.Close()
	periods, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.CalculationPeriod])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.CalculationPeriod{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect calculation period rows", err)
	}
	return periods, nil
}

// OpenPeriod inserts the new ACTIVE period and adopts unassigned ledger rows
// of the room into it in a single transaction. The partial unique index on
// (room_id) WHERE status = 'ACTIVE' rejects a second open period.
func (r *PgxPeriodRepository) OpenPeriod(ctx context.Context, period domain.CalculationPeriod) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insert := `
		INSERT INTO calculation_periods (
			period_id, room_id, name, start_date, end_date, status,
			started_by, ended_by,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, NULL, $5, $6, NULL, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insert,
		period.PeriodID,
		period.RoomID,
		period.Name,
		period.StartDate,
		period.Status,
		period.StartedBy,
		period.CreatedAt,
		period.CreatedBy,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("room " + period.RoomID + " already has an active calculation period")
		}
		return apperrors.NewAppError(500, "failed to insert calculation period "+period.PeriodID, err)
	}

	// Adopt rows logged before any period existed into the new window.
	adoptions := []string{
		`UPDATE deposits SET calculation_period_id = $1 WHERE room_id = $2 AND calculation_period_id IS NULL`,
		`UPDATE expenses SET calculation_period_id = $1 WHERE room_id = $2 AND calculation_period_id IS NULL`,
		`UPDATE meals SET calculation_period_id = $1 WHERE room_id = $2 AND calculation_period_id IS NULL`,
	}
	for _, adoption := range adoptions {
		if _, err := tx.Exec(ctx, adoption, period.PeriodID, period.RoomID); err != nil {
			return apperrors.NewAppError(500, "failed to adopt unassigned rows into period "+period.PeriodID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPeriodRepository) EndPeriod(ctx context.Context, periodID, endedBy string, endDate time.Time) error {
	query := `
		UPDATE calculation_periods
		SET status = 'ENDED', end_date = $2, ended_by = $3,
			last_updated_at = $4, last_updated_by = $3
		WHERE period_id = $1 AND status = 'ACTIVE';
	`
	tag, err := r.Pool.Exec(ctx, query, periodID, endDate, endedBy, time.Now())
	if err != nil {
		return apperrors.NewAppError(500, "failed to end calculation period "+periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewValidationFailedError("calculation period is not active")
	}
	return nil
}

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.CalculationPeriod, error) {
	periods, err := r.getPeriods(ctx, `WHERE p.period_id = $1`, periodID)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &periods[0], nil
}

func (r *PgxPeriodRepository) FindActivePeriod(ctx context.Context, roomID string) (*domain.CalculationPeriod, error) {
	periods, err := r.getPeriods(ctx, `WHERE p.room_id = $1 AND p.status = 'ACTIVE'`, roomID)
	if err != nil {
		return nil, err
	}
	if len(periods) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &periods[0], nil
}

func (r *PgxPeriodRepository) ListPeriodsByRoom(ctx context.Context, roomID string) ([]domain.CalculationPeriod, error) {
	return r.getPeriods(ctx, `WHERE p.room_id = $1 ORDER BY p.start_date DESC`, roomID)
}

func (r *PgxPeriodRepository) HasAnyPeriod(ctx context.Context, roomID string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM calculation_periods WHERE room_id = $1)`, roomID,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check for calculation periods", err)
	}
	return exists, nil
}
