package repositories

import (
	"context"
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// PeriodRepository manages calculation periods.
type PeriodRepository interface {
	// OpenPeriod inserts a new ACTIVE period and adopts any unassigned
	// (calculation_period_id IS NULL) deposit, expense, and meal rows of
	// the room into it, all in one transaction. Returns
	// apperrors.ErrDuplicate when the room already has an ACTIVE period.
	OpenPeriod(ctx context.Context, period domain.CalculationPeriod) error
	// EndPeriod transitions an ACTIVE period to ENDED exactly once.
	EndPeriod(ctx context.Context, periodID, endedBy string, endDate time.Time) error
	FindPeriodByID(ctx context.Context, periodID string) (*domain.CalculationPeriod, error)
	// FindActivePeriod returns apperrors.ErrNotFound when the room has no
	// ACTIVE period.
	FindActivePeriod(ctx context.Context, roomID string) (*domain.CalculationPeriod, error)
	ListPeriodsByRoom(ctx context.Context, roomID string) ([]domain.CalculationPeriod, error)
	// HasAnyPeriod reports whether the room has ever had a period. The
	// settlement engine uses this to distinguish the zero-filled degenerate
	// case from a bad period reference.
	HasAnyPeriod(ctx context.Context, roomID string) (bool, error)
}
