package dto

import (
	"github.com/billkhata/billkhata/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MemberBalanceResponse is one member's row in the balances report.
type MemberBalanceResponse struct {
	UserID            string          `json:"userID"`
	UserName          string          `json:"userName"`
	TotalDeposits     decimal.Decimal `json:"totalDeposits"`
	TotalMeals        int             `json:"totalMeals"`
	MealCost          decimal.Decimal `json:"mealCost"`
	TotalBillPayments decimal.Decimal `json:"totalBillPayments"`
	Balance           decimal.Decimal `json:"balance"`
}

// SettlementResponse is the balances report for one room and period.
type SettlementResponse struct {
	RoomID        string                  `json:"roomID"`
	PeriodID      string                  `json:"periodID,omitempty"`
	PeriodName    string                  `json:"periodName,omitempty"`
	TotalShopping decimal.Decimal         `json:"totalShopping"`
	TotalMeals    int                     `json:"totalMeals"`
	MealRate      decimal.Decimal         `json:"mealRate"`
	Members       []MemberBalanceResponse `json:"members"`
}

// ToSettlementResponse converts a domain settlement to its response DTO.
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	resp := SettlementResponse{
		RoomID:        s.RoomID,
		PeriodID:      s.PeriodID,
		PeriodName:    s.PeriodName,
		TotalShopping: s.TotalShopping,
		TotalMeals:    s.TotalMeals,
		MealRate:      s.MealRate,
		Members:       make([]MemberBalanceResponse, len(s.Members)),
	}
	for i, m := range s.Members {
		resp.Members[i] = MemberBalanceResponse{
			UserID:            m.UserID,
			UserName:          m.UserName,
			TotalDeposits:     m.TotalDeposits,
			TotalMeals:        m.TotalMeals,
			MealCost:          m.MealCost,
			TotalBillPayments: m.TotalBillPayments,
			Balance:           m.Balance,
		}
	}
	return resp
}
