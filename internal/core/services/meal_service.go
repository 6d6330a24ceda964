package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/dto"
)

// MealService manages per-day meal records. Meals have no approval flow:
// every row is live and counts toward the meal rate the moment it lands.
type MealService struct {
	BaseService
	mealRepo   portsrepo.MealRepository
	periodRepo portsrepo.PeriodRepository
}

// NewMealService creates a new MealService.
func NewMealService(mr portsrepo.MealRepository, pr portsrepo.PeriodRepository, authorizer portssvc.RoomAuthorizerSvc) portssvc.MealSvcFacade {
	return &MealService{
		BaseService: BaseService{RoomAuthorizer: authorizer},
		mealRepo:    mr,
		periodRepo:  pr,
	}
}

var _ portssvc.MealSvcFacade = (*MealService)(nil)

// UpsertMeal writes the full meal record for one (user, date). Managers may
// log on behalf of another member via req.UserID and may write past a
// finalized date; members may not do either.
func (s *MealService) UpsertMeal(ctx context.Context, roomID string, req dto.UpsertMealRequest, requesterID string) (*domain.Meal, error) {
	if err := s.AuthorizeUser(ctx, requesterID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	isManager := s.AuthorizeUser(ctx, requesterID, roomID, domain.RoleManager) == nil

	targetUserID := requesterID
	if req.UserID != nil && *req.UserID != requesterID {
		if !isManager {
			return nil, fmt.Errorf("%w: only managers can log meals for other members", apperrors.ErrForbidden)
		}
		targetUserID = *req.UserID
	}

	if !isManager {
		if _, err := s.mealRepo.FindDateLock(ctx, roomID, date); err == nil {
			return nil, fmt.Errorf("%w: meals for %s are finalized", apperrors.ErrForbidden, req.Date)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check date lock", slog.String("room_id", roomID))
			return nil, fmt.Errorf("failed to check date lock: %w", err)
		}
	}

	now := time.Now()
	meal := domain.Meal{
		MealID:     uuid.NewString(),
		RoomID:     roomID,
		UserID:     targetUserID,
		Date:       date,
		Breakfast:  req.Breakfast,
		Lunch:      req.Lunch,
		Dinner:     req.Dinner,
		TotalMeals: req.Breakfast + req.Lunch + req.Dinner,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterID,
		},
	}

	period, err := s.periodRepo.FindActivePeriod(ctx, roomID)
	if err == nil {
		meal.CalculationPeriodID = &period.PeriodID
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to resolve active period", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to resolve active period: %w", err)
	}

	if err := s.mealRepo.UpsertMeal(ctx, meal); err != nil {
		s.LogError(ctx, err, "Failed to upsert meal",
			slog.String("room_id", roomID), slog.String("user_id", targetUserID))
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}

	s.LogInfo(ctx, "Meal recorded",
		slog.String("room_id", roomID),
		slog.String("user_id", targetUserID),
		slog.String("date", req.Date),
		slog.Int("total_meals", meal.TotalMeals))
	return &meal, nil
}

// ListMeals lists the room's meals, optionally scoped to one period.
func (s *MealService) ListMeals(ctx context.Context, roomID string, periodID *string, userID string) ([]domain.Meal, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}
	meals, err := s.mealRepo.ListMealsByRoom(ctx, roomID, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list meals", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}

// FinalizeDate locks a date against non-manager edits. Manager only.
// Finalizing an already-locked date succeeds without changing the lock.
func (s *MealService) FinalizeDate(ctx context.Context, roomID string, date time.Time, managerID string) error {
	if err := s.AuthorizeUser(ctx, managerID, roomID, domain.RoleManager); err != nil {
		return err
	}

	lock := domain.MealDateLock{
		RoomID:   roomID,
		Date:     date,
		LockedBy: managerID,
		LockedAt: time.Now(),
	}
	if err := s.mealRepo.SaveDateLock(ctx, lock); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil
		}
		s.LogError(ctx, err, "Failed to finalize meal date", slog.String("room_id", roomID))
		return fmt.Errorf("failed to finalize date: %w", err)
	}

	s.LogInfo(ctx, "Meal date finalized",
		slog.String("room_id", roomID),
		slog.String("date", date.Format(time.DateOnly)))
	return nil
}
