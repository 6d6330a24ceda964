package domain

import "github.com/shopspring/decimal"

// ExpenseCategory distinguishes shopping spend (which feeds the meal rate)
// from bill payments drawn against a member's deposits.
type ExpenseCategory string

const (
	CategoryShopping    ExpenseCategory = "SHOPPING"
	CategoryBillPayment ExpenseCategory = "BILL_PAYMENT"
)

// IsValid reports whether c is a known expense category.
func (c ExpenseCategory) IsValid() bool {
	return c == CategoryShopping || c == CategoryBillPayment
}

// Expense is a spend record against the room's meal fund. Rows predating the
// category column have a NULL category and are treated as SHOPPING.
type Expense struct {
	ExpenseID           string           `json:"expenseID"`
	RoomID              string           `json:"roomID"`
	UserID              string           `json:"userID"`
	Amount              decimal.Decimal  `json:"amount"`
	Category            *ExpenseCategory `json:"category,omitempty"`
	Status              ApprovalStatus   `json:"status"`
	CalculationPeriodID *string          `json:"calculationPeriodID,omitempty"`
	// SourceShare links a BILL_PAYMENT expense back to the bill share that
	// produced it ("billID:userID"). Unique, so repeated approvals of the
	// same share cannot create a second expense.
	SourceShare *string `json:"sourceShare,omitempty"`
	Description string  `json:"description"`
	AuditFields
}

// EffectiveCategory resolves the legacy NULL category to SHOPPING.
func (e Expense) EffectiveCategory() ExpenseCategory {
	if e.Category == nil {
		return CategoryShopping
	}
	return *e.Category
}
