package dto

import (
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDepositRequest is the payload for logging a meal-fund deposit. The
// deposit starts PENDING until a manager approves it.
type CreateDepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note"`
}

// UpdateApprovalStatusRequest moves a PENDING deposit or expense to
// APPROVED or REJECTED.
type UpdateApprovalStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

// DepositResponse is the caller-facing representation of a deposit.
type DepositResponse struct {
	DepositID           string          `json:"depositID"`
	RoomID              string          `json:"roomID"`
	UserID              string          `json:"userID"`
	Amount              decimal.Decimal `json:"amount"`
	Status              string          `json:"status"`
	CalculationPeriodID *string         `json:"calculationPeriodID,omitempty"`
	ApprovedBy          *string         `json:"approvedBy,omitempty"`
	Note                string          `json:"note"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// ToDepositResponse converts a domain deposit to its response DTO.
func ToDepositResponse(d *domain.Deposit) DepositResponse {
	return DepositResponse{
		DepositID:           d.DepositID,
		RoomID:              d.RoomID,
		UserID:              d.UserID,
		Amount:              d.Amount,
		Status:              string(d.Status),
		CalculationPeriodID: d.CalculationPeriodID,
		ApprovedBy:          d.ApprovedBy,
		Note:                d.Note,
		CreatedAt:           d.CreatedAt,
	}
}

// ToDepositResponses converts domain deposits to response DTOs.
func ToDepositResponses(deposits []domain.Deposit) []DepositResponse {
	out := make([]DepositResponse, len(deposits))
	for i := range deposits {
		out[i] = ToDepositResponse(&deposits[i])
	}
	return out
}
