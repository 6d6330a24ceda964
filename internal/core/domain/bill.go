package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShareStatus is the payment lifecycle of one member's portion of a bill.
//
//	UNPAID -> PENDING_APPROVAL -> PAID
//	UNPAID <-> OVERDUE (time-based side state)
//
// Managers may also deny (PENDING_APPROVAL -> UNPAID) or record a payment
// directly (UNPAID/OVERDUE -> PAID).
type ShareStatus string

const (
	ShareUnpaid          ShareStatus = "UNPAID"
	SharePendingApproval ShareStatus = "PENDING_APPROVAL"
	SharePaid            ShareStatus = "PAID"
	ShareOverdue         ShareStatus = "OVERDUE"
)

// IsValid reports whether s is a known share status.
func (s ShareStatus) IsValid() bool {
	switch s {
	case ShareUnpaid, SharePendingApproval, SharePaid, ShareOverdue:
		return true
	}
	return false
}

// Bill is a recurring room bill split across members.
type Bill struct {
	BillID      string          `json:"billID"`
	RoomID      string          `json:"roomID"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	DueDate     time.Time       `json:"dueDate"`
	Shares      []BillShare     `json:"shares"`
	AuditFields
}

// BillShare is one member's portion of a bill with its own payment status.
type BillShare struct {
	BillID           string          `json:"billID"`
	UserID           string          `json:"userID"`
	UserName         string          `json:"userName"`
	Amount           decimal.Decimal `json:"amount"`
	Status           ShareStatus     `json:"status"`
	PaidFromMealFund bool            `json:"paidFromMealFund"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
}

// ShareFor returns the share belonging to userID, or nil.
func (b *Bill) ShareFor(userID string) *BillShare {
	for i := range b.Shares {
		if b.Shares[i].UserID == userID {
			return &b.Shares[i]
		}
	}
	return nil
}
