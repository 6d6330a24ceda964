package dto

import (
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest is the payload for logging a shopping expense. Bill
// payments are never created through this endpoint; they are derived from
// bill-share approvals.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"omitempty,oneof=SHOPPING"`
	Description string          `json:"description"`
}

// ExpenseResponse is the caller-facing representation of an expense.
type ExpenseResponse struct {
	ExpenseID           string          `json:"expenseID"`
	RoomID              string          `json:"roomID"`
	UserID              string          `json:"userID"`
	Amount              decimal.Decimal `json:"amount"`
	Category            string          `json:"category"`
	Status              string          `json:"status"`
	CalculationPeriodID *string         `json:"calculationPeriodID,omitempty"`
	Description         string          `json:"description"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// ToExpenseResponse converts a domain expense to its response DTO, resolving
// the legacy NULL category to SHOPPING.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:           e.ExpenseID,
		RoomID:              e.RoomID,
		UserID:              e.UserID,
		Amount:              e.Amount,
		Category:            string(e.EffectiveCategory()),
		Status:              string(e.Status),
		CalculationPeriodID: e.CalculationPeriodID,
		Description:         e.Description,
		CreatedAt:           e.CreatedAt,
	}
}

// ToExpenseResponses converts domain expenses to response DTOs.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = ToExpenseResponse(&expenses[i])
	}
	return out
}
