package services

import (
	"context"
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
	"github.com/billkhata/billkhata/internal/dto"
)

// PeriodSvcFacade manages calculation periods.
type PeriodSvcFacade interface {
	OpenPeriod(ctx context.Context, roomID, name, userID string) (*domain.CalculationPeriod, error)
	EndPeriod(ctx context.Context, roomID, periodID, userID string) (*domain.CalculationPeriod, error)
	GetPeriod(ctx context.Context, roomID, periodID, userID string) (*domain.CalculationPeriod, error)
	ListPeriods(ctx context.Context, roomID, userID string) ([]domain.CalculationPeriod, error)
}

// DepositSvcFacade manages meal-fund deposits.
type DepositSvcFacade interface {
	CreateDeposit(ctx context.Context, roomID string, req dto.CreateDepositRequest, userID string) (*domain.Deposit, error)
	ListDeposits(ctx context.Context, roomID string, periodID *string, userID string) ([]domain.Deposit, error)
	// SetDepositStatus is a manager-only approval transition.
	SetDepositStatus(ctx context.Context, roomID, depositID string, status domain.ApprovalStatus, approverID string) (*domain.Deposit, error)
}

// ExpenseSvcFacade manages shopping expenses.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, roomID string, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, roomID string, periodID *string, userID string) ([]domain.Expense, error)
	SetExpenseStatus(ctx context.Context, roomID, expenseID string, status domain.ApprovalStatus, approverID string) (*domain.Expense, error)
}

// MealSvcFacade manages per-day meal records.
type MealSvcFacade interface {
	// UpsertMeal logs meals for requesterID, or for req.UserID when the
	// requester is a manager. Returns apperrors.ErrForbidden when a
	// non-manager writes to a finalized date.
	UpsertMeal(ctx context.Context, roomID string, req dto.UpsertMealRequest, requesterID string) (*domain.Meal, error)
	ListMeals(ctx context.Context, roomID string, periodID *string, userID string) ([]domain.Meal, error)
	// FinalizeDate locks a date against non-manager edits.
	FinalizeDate(ctx context.Context, roomID string, date time.Time, managerID string) error
}
