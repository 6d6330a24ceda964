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

// DepositService manages meal-fund deposits and their approval lifecycle.
type DepositService struct {
	BaseService
	depositRepo portsrepo.DepositRepository
	periodRepo  portsrepo.PeriodRepository
	notifier    portssvc.NotificationDispatcher
}

// NewDepositService creates a new DepositService.
func NewDepositService(dr portsrepo.DepositRepository, pr portsrepo.PeriodRepository, authorizer portssvc.RoomAuthorizerSvc, notifier portssvc.NotificationDispatcher) portssvc.DepositSvcFacade {
	return &DepositService{
		BaseService: BaseService{RoomAuthorizer: authorizer},
		depositRepo: dr,
		periodRepo:  pr,
		notifier:    notifier,
	}
}

var _ portssvc.DepositSvcFacade = (*DepositService)(nil)

// CreateDeposit logs a PENDING deposit for userID. When the room has an
// ACTIVE period the deposit is assigned to it; otherwise it stays unassigned
// and is adopted when the next period opens.
func (s *DepositService) CreateDeposit(ctx context.Context, roomID string, req dto.CreateDepositRequest, userID string) (*domain.Deposit, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	deposit := domain.Deposit{
		DepositID: uuid.NewString(),
		RoomID:    roomID,
		UserID:    userID,
		Amount:    req.Amount,
		Status:    domain.ApprovalPending,
		Note:      req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	periodID, err := s.activePeriodID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	deposit.CalculationPeriodID = periodID

	if err := s.depositRepo.SaveDeposit(ctx, deposit); err != nil {
		s.LogError(ctx, err, "Failed to save deposit", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to create deposit: %w", err)
	}

	s.LogInfo(ctx, "Deposit created",
		slog.String("deposit_id", deposit.DepositID),
		slog.String("room_id", roomID))
	return &deposit, nil
}

// ListDeposits lists the room's deposits, optionally scoped to one period.
func (s *DepositService) ListDeposits(ctx context.Context, roomID string, periodID *string, userID string) ([]domain.Deposit, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}
	deposits, err := s.depositRepo.ListDepositsByRoom(ctx, roomID, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list deposits", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	return deposits, nil
}

// SetDepositStatus approves or rejects a PENDING deposit. Manager only.
func (s *DepositService) SetDepositStatus(ctx context.Context, roomID, depositID string, status domain.ApprovalStatus, approverID string) (*domain.Deposit, error) {
	if err := s.AuthorizeUser(ctx, approverID, roomID, domain.RoleManager); err != nil {
		return nil, err
	}
	if status != domain.ApprovalApproved && status != domain.ApprovalRejected {
		return nil, fmt.Errorf("%w: status must be APPROVED or REJECTED", apperrors.ErrValidation)
	}

	deposit, err := s.depositRepo.FindDepositByID(ctx, depositID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to find deposit", slog.String("deposit_id", depositID))
		return nil, fmt.Errorf("failed to get deposit: %w", err)
	}
	if deposit.RoomID != roomID {
		return nil, fmt.Errorf("%w: deposit not found in this room", apperrors.ErrNotFound)
	}

	if err := s.depositRepo.UpdateDepositStatus(ctx, depositID, status, approverID); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, fmt.Errorf("%w: deposit is no longer pending", apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to update deposit status", slog.String("deposit_id", depositID))
		return nil, fmt.Errorf("failed to update deposit status: %w", err)
	}

	deposit.Status = status
	deposit.ApprovedBy = &approverID
	deposit.LastUpdatedAt = time.Now()
	deposit.LastUpdatedBy = approverID

	if s.notifier != nil {
		s.notifier.Dispatch(ctx, roomID, deposit.UserID, domain.NotifyDepositStatus,
			fmt.Sprintf("Your deposit of %s was %s", deposit.Amount.StringFixed(2), status))
	}
	s.LogInfo(ctx, "Deposit status updated",
		slog.String("deposit_id", depositID),
		slog.String("status", string(status)))
	return deposit, nil
}

// activePeriodID returns the room's ACTIVE period ID, or nil when none.
func (s *DepositService) activePeriodID(ctx context.Context, roomID string) (*string, error) {
	period, err := s.periodRepo.FindActivePeriod(ctx, roomID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to resolve active period", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to resolve active period: %w", err)
	}
	return &period.PeriodID, nil
}
