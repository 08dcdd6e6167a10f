package domain

import (
	"time"

	"github.com/google/uuid"
)

// Schedule status values. The transition is one-way: pending → completed.
const (
	ScheduleStatusPending   = "pending"
	ScheduleStatusCompleted = "completed"
)

// Schedule is a planned visit appointment. VisitDate is a calendar date
// (time-of-day is carried separately in VisitTime as entered at the gate,
// e.g. "14:30"). Unlike visitors and trips, schedules may be deleted at any
// point regardless of status.
type Schedule struct {
	ID          uuid.UUID `json:"id"`
	VisitorName string    `json:"visitor_name"`
	Company     string    `json:"company,omitempty"`
	VisitDate   time.Time `json:"visit_date"`
	VisitTime   string    `json:"visit_time"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
