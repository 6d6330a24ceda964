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
)

// PeriodService manages calculation periods. At most one ACTIVE period
// exists per room; opening a period adopts any ledger rows logged before the
// first period was ever created.
type PeriodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepository
	roomReader portssvc.RoomReaderSvc
	notifier   portssvc.NotificationDispatcher
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(pr portsrepo.PeriodRepository, authorizer portssvc.RoomAuthorizerSvc, reader portssvc.RoomReaderSvc, notifier portssvc.NotificationDispatcher) portssvc.PeriodSvcFacade {
	return &PeriodService{
		BaseService: BaseService{RoomAuthorizer: authorizer},
		periodRepo:  pr,
		roomReader:  reader,
		notifier:    notifier,
	}
}

var _ portssvc.PeriodSvcFacade = (*PeriodService)(nil)

// OpenPeriod opens a new ACTIVE period. Manager only. Returns ErrDuplicate
// when the room already has an ACTIVE period.
func (s *PeriodService) OpenPeriod(ctx context.Context, roomID, name, userID string) (*domain.CalculationPeriod, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleManager); err != nil {
		return nil, err
	}

	now := time.Now()
	period := domain.CalculationPeriod{
		PeriodID:  uuid.NewString(),
		RoomID:    roomID,
		Name:      name,
		StartDate: now,
		Status:    domain.PeriodActive,
		StartedBy: userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.periodRepo.OpenPeriod(ctx, period); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: room already has an active period", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to open period", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to open period: %w", err)
	}

	s.LogInfo(ctx, "Calculation period opened",
		slog.String("period_id", period.PeriodID),
		slog.String("room_id", roomID))
	s.notifyMembers(ctx, roomID, userID, domain.NotifyPeriodOpened,
		fmt.Sprintf("Calculation period %q has started", name))
	return &period, nil
}

// EndPeriod ends an ACTIVE period. Manager only. Ending is idempotent at the
// storage layer: a second end on the same period fails with ErrNotFound
// because the row is no longer ACTIVE.
func (s *PeriodService) EndPeriod(ctx context.Context, roomID, periodID, userID string) (*domain.CalculationPeriod, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleManager); err != nil {
		return nil, err
	}

	period, err := s.findRoomPeriod(ctx, roomID, periodID)
	if err != nil {
		return nil, err
	}
	if period.Status != domain.PeriodActive {
		return nil, fmt.Errorf("%w: period is already ended", apperrors.ErrValidation)
	}

	now := time.Now()
	if err := s.periodRepo.EndPeriod(ctx, periodID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to end period", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to end period: %w", err)
	}

	period.Status = domain.PeriodEnded
	period.EndDate = &now
	period.EndedBy = &userID
	period.LastUpdatedAt = now
	period.LastUpdatedBy = userID

	s.LogInfo(ctx, "Calculation period ended",
		slog.String("period_id", periodID),
		slog.String("room_id", roomID))
	s.notifyMembers(ctx, roomID, userID, domain.NotifyPeriodEnded,
		fmt.Sprintf("Calculation period %q has ended", period.Name))
	return period, nil
}

// GetPeriod fetches one period of the room.
func (s *PeriodService) GetPeriod(ctx context.Context, roomID, periodID, userID string) (*domain.CalculationPeriod, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.findRoomPeriod(ctx, roomID, periodID)
}

// ListPeriods lists the room's periods, newest first.
func (s *PeriodService) ListPeriods(ctx context.Context, roomID, userID string) ([]domain.CalculationPeriod, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}
	periods, err := s.periodRepo.ListPeriodsByRoom(ctx, roomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

// findRoomPeriod loads a period and verifies it belongs to roomID. A period
// of another room is reported as not found rather than leaked.
func (s *PeriodService) findRoomPeriod(ctx context.Context, roomID, periodID string) (*domain.CalculationPeriod, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to find period", slog.String("period_id", periodID))
		return nil, fmt.Errorf("failed to get period: %w", err)
	}
	if period.RoomID != roomID {
		return nil, fmt.Errorf("%w: period not found in this room", apperrors.ErrNotFound)
	}
	return period, nil
}

// notifyMembers dispatches a notification to every member except actorID.
func (s *PeriodService) notifyMembers(ctx context.Context, roomID, actorID string, kind domain.NotificationKind, message string) {
	if s.notifier == nil || s.roomReader == nil {
		return
	}
	members, err := s.roomReader.GetRoomMembers(ctx, roomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load members for notification", slog.String("room_id", roomID))
		return
	}
	for _, m := range members {
		if m.UserID == actorID {
			continue
		}
		s.notifier.Dispatch(ctx, roomID, m.UserID, kind, message)
	}
}
