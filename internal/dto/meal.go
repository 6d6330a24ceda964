package dto

import (
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// UpsertMealRequest logs (or replaces) a member's meal counts for one date.
// UserID may only be set by a manager logging on behalf of another member.
type UpsertMealRequest struct {
	Date      string  `json:"date" binding:"required"` // YYYY-MM-DD
	Breakfast int     `json:"breakfast" binding:"min=0"`
	Lunch     int     `json:"lunch" binding:"min=0"`
	Dinner    int     `json:"dinner" binding:"min=0"`
	UserID    *string `json:"userID,omitempty"`
}

// FinalizeMealDateRequest locks a date against non-manager edits.
type FinalizeMealDateRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

// MealResponse is the caller-facing representation of a meal record.
type MealResponse struct {
	MealID              string  `json:"mealID"`
	RoomID              string  `json:"roomID"`
	UserID              string  `json:"userID"`
	Date                string  `json:"date"`
	Breakfast           int     `json:"breakfast"`
	Lunch               int     `json:"lunch"`
	Dinner              int     `json:"dinner"`
	TotalMeals          int     `json:"totalMeals"`
	CalculationPeriodID *string `json:"calculationPeriodID,omitempty"`
}

// ToMealResponse converts a domain meal to its response DTO.
func ToMealResponse(m *domain.Meal) MealResponse {
	return MealResponse{
		MealID:              m.MealID,
		RoomID:              m.RoomID,
		UserID:              m.UserID,
		Date:                m.Date.Format(time.DateOnly),
		Breakfast:           m.Breakfast,
		Lunch:               m.Lunch,
		Dinner:              m.Dinner,
		TotalMeals:          m.TotalMeals,
		CalculationPeriodID: m.CalculationPeriodID,
	}
}

// ToMealResponses converts domain meals to response DTOs.
func ToMealResponses(meals []domain.Meal) []MealResponse {
	out := make([]MealResponse, len(meals))
	for i := range meals {
		out[i] = ToMealResponse(&meals[i])
	}
	return out
}
