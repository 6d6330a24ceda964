package domain

import "github.com/shopspring/decimal"

// MemberTotals is the raw per-member aggregation a settlement is derived
// from: approved deposits, meal counts, and approved bill payments, all
// scoped to one calculation period.
type MemberTotals struct {
	UserID            string
	UserName          string
	TotalDeposits     decimal.Decimal
	TotalMeals        int
	TotalBillPayments decimal.Decimal
}

// MemberBalance is one member's row in the settlement report.
//
// Balance = TotalDeposits - MealCost - TotalBillPayments. Balances do not
// sum to zero across members: the figure measures each member's standing
// against the shared fund, not pairwise debt.
type MemberBalance struct {
	UserID            string          `json:"userID"`
	UserName          string          `json:"userName"`
	TotalDeposits     decimal.Decimal `json:"totalDeposits"`
	TotalMeals        int             `json:"totalMeals"`
	MealCost          decimal.Decimal `json:"mealCost"`
	TotalBillPayments decimal.Decimal `json:"totalBillPayments"`
	Balance           decimal.Decimal `json:"balance"`
}

// Settlement is the full balance report for a room and calculation period.
type Settlement struct {
	RoomID        string          `json:"roomID"`
	PeriodID      string          `json:"periodID,omitempty"`
	PeriodName    string          `json:"periodName,omitempty"`
	TotalShopping decimal.Decimal `json:"totalShopping"`
	TotalMeals    int             `json:"totalMeals"`
	MealRate      decimal.Decimal `json:"mealRate"`
	Members       []MemberBalance `json:"members"`
}
