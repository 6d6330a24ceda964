package domain

import "github.com/shopspring/decimal"

// Deposit is a member's contribution to the room's meal fund. Only APPROVED
// deposits count toward settlement balances.
type Deposit struct {
	DepositID           string          `json:"depositID"`
	RoomID              string          `json:"roomID"`
	UserID              string          `json:"userID"`
	Amount              decimal.Decimal `json:"amount"`
	Status              ApprovalStatus  `json:"status"`
	CalculationPeriodID *string         `json:"calculationPeriodID,omitempty"`
	ApprovedBy          *string         `json:"approvedBy,omitempty"`
	Note                string          `json:"note"`
	AuditFields
}
