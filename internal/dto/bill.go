package dto

import (
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BillShareInput describes one member's portion when creating a bill. When
// Amount is nil for every share, the bill splits equally.
type BillShareInput struct {
	UserID string           `json:"userID" binding:"required"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// CreateBillRequest is the payload for creating a split bill.
type CreateBillRequest struct {
	Title       string           `json:"title" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	TotalAmount decimal.Decimal  `json:"totalAmount" binding:"required"`
	DueDate     string           `json:"dueDate" binding:"required"` // YYYY-MM-DD
	Shares      []BillShareInput `json:"shares" binding:"required,min=1,dive"`
}

// ShareTransitionRequest moves one bill share through its payment lifecycle.
// PaidFromMealFund is only honored on transitions into PAID.
type ShareTransitionRequest struct {
	Status           string `json:"status" binding:"required,oneof=UNPAID PENDING_APPROVAL PAID"`
	PaidFromMealFund bool   `json:"paidFromMealFund"`
}

// BillShareResponse is one member's share in a bill response.
type BillShareResponse struct {
	UserID           string          `json:"userID"`
	UserName         string          `json:"userName"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	PaidFromMealFund bool            `json:"paidFromMealFund"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
}

// BillResponse is the caller-facing representation of a bill.
type BillResponse struct {
	BillID      string              `json:"billID"`
	RoomID      string              `json:"roomID"`
	Title       string              `json:"title"`
	Category    string              `json:"category"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	DueDate     string              `json:"dueDate"`
	Shares      []BillShareResponse `json:"shares"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// ToBillResponse converts a domain bill to its response DTO.
func ToBillResponse(b *domain.Bill) BillResponse {
	resp := BillResponse{
		BillID:      b.BillID,
		RoomID:      b.RoomID,
		Title:       b.Title,
		Category:    b.Category,
		TotalAmount: b.TotalAmount,
		DueDate:     b.DueDate.Format(time.DateOnly),
		Shares:      make([]BillShareResponse, len(b.Shares)),
		CreatedAt:   b.CreatedAt,
	}
	for i, s := range b.Shares {
		resp.Shares[i] = BillShareResponse{
			UserID:           s.UserID,
			UserName:         s.UserName,
			Amount:           s.Amount,
			Status:           string(s.Status),
			PaidFromMealFund: s.PaidFromMealFund,
			PaidAt:           s.PaidAt,
		}
	}
	return resp
}

// ToBillResponses converts domain bills to response DTOs.
func ToBillResponses(bills []domain.Bill) []BillResponse {
	out := make([]BillResponse, len(bills))
	for i := range bills {
		out[i] = ToBillResponse(&bills[i])
	}
	return out
}
