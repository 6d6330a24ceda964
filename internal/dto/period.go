package dto

import (
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// OpenPeriodRequest opens a new ACTIVE calculation period for a room.
type OpenPeriodRequest struct {
	Name string `json:"name" binding:"required"`
}

// PeriodResponse is the caller-facing representation of a calculation period.
type PeriodResponse struct {
	PeriodID  string     `json:"periodID"`
	RoomID    string     `json:"roomID"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	Status    string     `json:"status"`
	StartedBy string     `json:"startedBy"`
	EndedBy   *string    `json:"endedBy,omitempty"`
}

// ToPeriodResponse converts a domain period to its response DTO.
func ToPeriodResponse(p *domain.CalculationPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		RoomID:    p.RoomID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    string(p.Status),
		StartedBy: p.StartedBy,
		EndedBy:   p.EndedBy,
	}
}

// ToPeriodResponses converts domain periods to response DTOs.
func ToPeriodResponses(periods []domain.CalculationPeriod) []PeriodResponse {
	out := make([]PeriodResponse, len(periods))
	for i := range periods {
		out[i] = ToPeriodResponse(&periods[i])
	}
	return out
}
