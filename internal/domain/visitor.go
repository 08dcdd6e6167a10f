// Package domain contains the core data types for the gatekeeper backend.
// This package has zero external dependencies beyond uuid and time and is
// imported by every other internal package (repo, service, handler, export).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Visitor is one visit to the facility, from gate entry to gate exit.
// ExitTime is nil while the visitor is still on the premises; setting it is
// the only mutation a visitor record ever receives. Records are retained
// indefinitely for auditing and are never deleted.
type Visitor struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Document     string     `json:"document"`
	EntryTime    time.Time  `json:"entry_time"`
	ExitTime     *time.Time `json:"exit_time,omitempty"`
	VehiclePlate string     `json:"vehicle_plate,omitempty"`
	Company      string     `json:"company,omitempty"`
	Observation  string     `json:"observation,omitempty"`
	Invoice      string     `json:"invoice,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Active reports whether the visitor is still inside (no exit registered).
func (v Visitor) Active() bool {
	return v.ExitTime == nil
}
