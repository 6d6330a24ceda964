package domain

import "time"

// PeriodStatus is the lifecycle of a calculation period.
type PeriodStatus string

const (
	PeriodActive PeriodStatus = "ACTIVE"
	PeriodEnded  PeriodStatus = "ENDED"
)

// CalculationPeriod is the time-boxed accounting window that scopes all
// settlement aggregation. At most one ACTIVE period exists per room at any
// time (enforced by a partial unique index in the database). Once ENDED a
// period is immutable; history is append-only.
type CalculationPeriod struct {
	PeriodID  string       `json:"periodID"`
	RoomID    string       `json:"roomID"`
	Name      string       `json:"name"`
	StartDate time.Time    `json:"startDate"`
	EndDate   *time.Time   `json:"endDate,omitempty"`
	Status    PeriodStatus `json:"status"`
	StartedBy string       `json:"startedBy"`
	EndedBy   *string      `json:"endedBy,omitempty"`
	AuditFields
}
