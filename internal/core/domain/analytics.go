package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsRange selects the wall-clock window for dashboard aggregation.
// Unlike settlement, analytics is bucketed by createdAt/dueDate, not by
// calculation period.
type AnalyticsRange string

const (
	RangeThisMonth  AnalyticsRange = "This Month"
	RangeLastSixMonths AnalyticsRange = "Last 6 Months"
)

// IsValid reports whether r is a known analytics range.
func (r AnalyticsRange) IsValid() bool {
	return r == RangeThisMonth || r == RangeLastSixMonths
}

// CategorySlice is one pie-chart bucket: a bill category (or the synthetic
// Shopping bucket) with its summed amount and a deterministic color.
type CategorySlice struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Color  string          `json:"color"`
}

// TrendPoint is one calendar month in the six-month trend. Values carries
// the fixed Deposits/Shopping/"All Bills" series plus one series per bill
// category observed in the window.
type TrendPoint struct {
	Month  string                     `json:"month"` // e.g. "Jan 2026"
	Values map[string]decimal.Decimal `json:"values"`
}

// Analytics is the dashboard bundle for one room and range.
//
// FundHealth is deposits minus shopping; bills are deliberately excluded
// because bill shares settle against members, not the meal fund.
type Analytics struct {
	RoomID                string          `json:"roomID"`
	Range                 AnalyticsRange  `json:"range"`
	TotalShoppingExpenses decimal.Decimal `json:"totalShoppingExpenses"`
	TotalBillAmount       decimal.Decimal `json:"totalBillAmount"`
	TotalDeposits         decimal.Decimal `json:"totalDeposits"`
	TotalMealsCount       int             `json:"totalMealsCount"`
	AvgMealCost           decimal.Decimal `json:"avgMealCost"`
	FundHealth            decimal.Decimal `json:"fundHealth"`
	BillCategoryData      []CategorySlice `json:"billCategoryData"`
	TrendData             []TrendPoint    `json:"trendData"`
	GeneratedAt           time.Time       `json:"generatedAt"`
}

// CategoryAmount is a (category, amount) pair from an aggregate query.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// MonthlyAmount is an amount bucketed into a (year, month) pair.
type MonthlyAmount struct {
	Year   int
	Month  time.Month
	Amount decimal.Decimal
}

// MonthlyCategoryAmount is a per-category amount bucketed by month.
type MonthlyCategoryAmount struct {
	Year     int
	Month    time.Month
	Category string
	Amount   decimal.Decimal
}
