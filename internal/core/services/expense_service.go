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

// ExpenseService manages shopping expenses. BILL_PAYMENT expenses are never
// created here; the bill service derives them from share approvals.
type ExpenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepository
	periodRepo  portsrepo.PeriodRepository
	notifier    portssvc.NotificationDispatcher
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(er portsrepo.ExpenseRepository, pr portsrepo.PeriodRepository, authorizer portssvc.RoomAuthorizerSvc, notifier portssvc.NotificationDispatcher) portssvc.ExpenseSvcFacade {
	return &ExpenseService{
		BaseService: BaseService{RoomAuthorizer: authorizer},
		expenseRepo: er,
		periodRepo:  pr,
		notifier:    notifier,
	}
}

var _ portssvc.ExpenseSvcFacade = (*ExpenseService)(nil)

// CreateExpense logs a PENDING shopping expense for userID.
func (s *ExpenseService) CreateExpense(ctx context.Context, roomID string, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	category := domain.CategoryShopping
	if req.Category != "" {
		category = domain.ExpenseCategory(req.Category)
		if category != domain.CategoryShopping {
			return nil, fmt.Errorf("%w: only SHOPPING expenses can be logged directly", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		RoomID:      roomID,
		UserID:      userID,
		Amount:      req.Amount,
		Category:    &category,
		Status:      domain.ApprovalPending,
		Description: req.Description,
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
	expense.CalculationPeriodID = periodID

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.LogInfo(ctx, "Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("room_id", roomID))
	return &expense, nil
}

// ListExpenses lists the room's expenses, optionally scoped to one period.
func (s *ExpenseService) ListExpenses(ctx context.Context, roomID string, periodID *string, userID string) ([]domain.Expense, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListExpensesByRoom(ctx, roomID, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// SetExpenseStatus approves or rejects a PENDING expense. Manager only.
func (s *ExpenseService) SetExpenseStatus(ctx context.Context, roomID, expenseID string, status domain.ApprovalStatus, approverID string) (*domain.Expense, error) {
	if err := s.AuthorizeUser(ctx, approverID, roomID, domain.RoleManager); err != nil {
		return nil, err
	}
	if status != domain.ApprovalApproved && status != domain.ApprovalRejected {
		return nil, fmt.Errorf("%w: status must be APPROVED or REJECTED", apperrors.ErrValidation)
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to find expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	if expense.RoomID != roomID {
		return nil, fmt.Errorf("%w: expense not found in this room", apperrors.ErrNotFound)
	}

	if err := s.expenseRepo.UpdateExpenseStatus(ctx, expenseID, status, approverID); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, fmt.Errorf("%w: expense is no longer pending", apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to update expense status", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense status: %w", err)
	}

	expense.Status = status
	expense.LastUpdatedAt = time.Now()
	expense.LastUpdatedBy = approverID

	if s.notifier != nil {
		s.notifier.Dispatch(ctx, roomID, expense.UserID, domain.NotifyExpenseStatus,
			fmt.Sprintf("Your expense of %s was %s", expense.Amount.StringFixed(2), status))
	}
	s.LogInfo(ctx, "Expense status updated",
		slog.String("expense_id", expenseID),
		slog.String("status", string(status)))
	return expense, nil
}

func (s *ExpenseService) activePeriodID(ctx context.Context, roomID string) (*string, error) {
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
