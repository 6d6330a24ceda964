package repositories

import (
	"context"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// ExpenseRepository manages shopping and bill-payment expenses.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListExpensesByRoom(ctx context.Context, roomID string, periodID *string) ([]domain.Expense, error)
	// UpdateExpenseStatus transitions a PENDING expense to APPROVED or
	// REJECTED.
	UpdateExpenseStatus(ctx context.Context, expenseID string, status domain.ApprovalStatus, approverID string) error
}
