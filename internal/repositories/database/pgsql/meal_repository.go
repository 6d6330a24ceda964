package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMealRepository struct {
	BaseRepository
}

// newPgxMealRepository creates a new repository for meal records.
func newPgxMealRepository(pool *pgxpool.Pool) portsrepo.MealRepository {
	return &PgxMealRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.MealRepository = (*PgxMealRepository)(nil)

var FULL_MEAL_SELECT_QUERY = `
SELECT
	m.meal_id, m.room_id, m.user_id, m.date,
	m.breakfast, m.lunch, m.dinner, m.total_meals, m.calculation_period_id,
	m.created_at, m.created_by, m.last_updated_at, m.last_updated_by
FROM meals m
`

func (r *PgxMealRepository) getMeals(ctx context.Context, filterQuery string, args ...any) ([]domain.Meal, error) {
	query := FULL_MEAL_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query meals", err)
	}
	defer rows.Close()
	meals, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Meal])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Meal{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect meal rows", err)
	}
	return meals, nil
}

// UpsertMeal replaces the whole (room, user, date) record. Concurrent writes
// resolve last-write-wins, which matches the client's full-record submits.
func (r *PgxMealRepository) UpsertMeal(ctx context.Context, meal domain.Meal) error {
	query := `
		INSERT INTO meals (
			meal_id, room_id, user_id, date,
			breakfast, lunch, dinner, total_meals, calculation_period_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (room_id, user_id, date) DO UPDATE SET
			breakfast = EXCLUDED.breakfast,
			lunch = EXCLUDED.lunch,
			dinner = EXCLUDED.dinner,
			total_meals = EXCLUDED.total_meals,
			calculation_period_id = EXCLUDED.calculation_period_id,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		meal.MealID,
		meal.RoomID,
		meal.UserID,
		meal.Date,
		meal.Breakfast,
		meal.Lunch,
		meal.Dinner,
		meal.TotalMeals,
		meal.CalculationPeriodID,
		meal.CreatedAt,
		meal.CreatedBy,
		meal.LastUpdatedAt,
		meal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert meal for user "+meal.UserID, err)
	}
	return nil
}

func (r *PgxMealRepository) ListMealsByRoom(ctx context.Context, roomID string, periodID *string) ([]domain.Meal, error) {
	if periodID != nil {
		return r.getMeals(ctx, `WHERE m.room_id = $1 AND m.calculation_period_id = $2 ORDER BY m.date DESC`, roomID, *periodID)
	}
	return r.getMeals(ctx, `WHERE m.room_id = $1 ORDER BY m.date DESC`, roomID)
}

func (r *PgxMealRepository) FindDateLock(ctx context.Context, roomID string, date time.Time) (*domain.MealDateLock, error) {
	query := `
		SELECT room_id, date, locked_by, locked_at
		FROM meal_date_locks
		WHERE room_id = $1 AND date = $2
	`
	var lock domain.MealDateLock
	err := r.Pool.QueryRow(ctx, query, roomID, date).Scan(
		&lock.RoomID, &lock.Date, &lock.LockedBy, &lock.LockedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to query meal date lock", err)
	}
	return &lock, nil
}

func (r *PgxMealRepository) SaveDateLock(ctx context.Context, lock domain.MealDateLock) error {
	query := `
		INSERT INTO meal_date_locks (room_id, date, locked_by, locked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (room_id, date) DO NOTHING;
	` // Re-finalizing an already locked date is harmless
	_, err := r.Pool.Exec(ctx, query, lock.RoomID, lock.Date, lock.LockedBy, lock.LockedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save meal date lock", err)
	}
	return nil
}
