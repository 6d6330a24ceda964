package domain

import "time"

// Meal records how many meals a member ate on a given date. One row exists
// per (room, user, date); concurrent writes resolve by upsert, last write
// wins on the full record. Meals are always live: there is no approval
// status, every row counts toward the meal rate immediately.
type Meal struct {
	MealID              string    `json:"mealID"`
	RoomID              string    `json:"roomID"`
	UserID              string    `json:"userID"`
	Date                time.Time `json:"date"`
	Breakfast           int       `json:"breakfast"`
	Lunch               int       `json:"lunch"`
	Dinner              int       `json:"dinner"`
	TotalMeals          int       `json:"totalMeals"`
	CalculationPeriodID *string   `json:"calculationPeriodID,omitempty"`
	AuditFields
}

// MealDateLock marks a date as finalized by a manager. Non-managers can no
// longer upsert meals for that date in the room.
type MealDateLock struct {
	RoomID   string    `json:"roomID"`
	Date     time.Time `json:"date"`
	LockedBy string    `json:"lockedBy"`
	LockedAt time.Time `json:"lockedAt"`
}
