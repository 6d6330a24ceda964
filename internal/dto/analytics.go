package dto

import (
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategorySliceResponse is one pie-chart bucket in the analytics bundle.
type CategorySliceResponse struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Color  string          `json:"color"`
}

// TrendPointResponse is one month in the six-month trend.
type TrendPointResponse struct {
	Month  string                     `json:"month"`
	Values map[string]decimal.Decimal `json:"values"`
}

// AnalyticsResponse is the dashboard bundle for one room and range.
type AnalyticsResponse struct {
	RoomID                string                  `json:"roomID"`
	Range                 string                  `json:"range"`
	TotalShoppingExpenses decimal.Decimal         `json:"totalShoppingExpenses"`
	TotalBillAmount       decimal.Decimal         `json:"totalBillAmount"`
	TotalDeposits         decimal.Decimal         `json:"totalDeposits"`
	TotalMealsCount       int                     `json:"totalMealsCount"`
	AvgMealCost           decimal.Decimal         `json:"avgMealCost"`
	FundHealth            decimal.Decimal         `json:"fundHealth"`
	BillCategoryData      []CategorySliceResponse `json:"billCategoryData"`
	TrendData             []TrendPointResponse    `json:"trendData"`
	GeneratedAt           time.Time               `json:"generatedAt"`
}

// ToAnalyticsResponse converts a domain analytics bundle to its response DTO.
func ToAnalyticsResponse(a *domain.Analytics) AnalyticsResponse {
	resp := AnalyticsResponse{
		RoomID:                a.RoomID,
		Range:                 string(a.Range),
		TotalShoppingExpenses: a.TotalShoppingExpenses,
		TotalBillAmount:       a.TotalBillAmount,
		TotalDeposits:         a.TotalDeposits,
		TotalMealsCount:       a.TotalMealsCount,
		AvgMealCost:           a.AvgMealCost,
		FundHealth:            a.FundHealth,
		BillCategoryData:      make([]CategorySliceResponse, len(a.BillCategoryData)),
		TrendData:             make([]TrendPointResponse, len(a.TrendData)),
		GeneratedAt:           a.GeneratedAt,
	}
	for i, s := range a.BillCategoryData {
		resp.BillCategoryData[i] = CategorySliceResponse(s)
	}
	for i, t := range a.TrendData {
		resp.TrendData[i] = TrendPointResponse{Month: t.Month, Values: t.Values}
	}
	return resp
}
