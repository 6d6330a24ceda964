package repositories

import (
	"context"
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// MealRepository manages per-day meal records and date finalization.
type MealRepository interface {
	// UpsertMeal inserts or fully replaces the (room, user, date) record.
	// Last write wins on the whole row.
	UpsertMeal(ctx context.Context, meal domain.Meal) error
	ListMealsByRoom(ctx context.Context, roomID string, periodID *string) ([]domain.Meal, error)
	// FindDateLock returns apperrors.ErrNotFound when the date is open.
	FindDateLock(ctx context.Context, roomID string, date time.Time) (*domain.MealDateLock, error)
	SaveDateLock(ctx context.Context, lock domain.MealDateLock) error
}
