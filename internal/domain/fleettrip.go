package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Trip status values exposed over the API. The Portuguese labels are part of
// the wire contract consumed by the front end.
const (
	TripStatusOut      = "em_viagem"
	TripStatusReturned = "retornado"
)

// FleetTrip is one outing of a facility vehicle, from gate departure to gate
// return. ArrivalKm is nil while the vehicle is out; setting it is the only
// mutation a trip record ever receives. Records are never deleted.
//
// Status and Distance are derived from ArrivalKm on read and are not stored,
// so a corrected odometer reading can never leave a stale derived value behind.
type FleetTrip struct {
	ID          uuid.UUID `json:"id"`
	DriverName  string    `json:"driver_name"`
	Vehicle     string    `json:"vehicle"`
	DepartureKm float64   `json:"departure_km"`
	ArrivalKm   *float64  `json:"arrival_km,omitempty"`
	DepartedAt  time.Time `json:"departed_at"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Status returns "retornado" when the trip is closed, "em_viagem" otherwise.
func (t FleetTrip) Status() string {
	if t.ArrivalKm != nil {
		return TripStatusReturned
	}
	return TripStatusOut
}

// Active reports whether the vehicle is still out.
func (t FleetTrip) Active() bool {
	return t.ArrivalKm == nil
}

// Distance returns arrival_km − departure_km rounded to one decimal place,
// or nil while the trip is open. The value may be negative: the gate does not
// reject an arrival reading below the departure reading.
func (t FleetTrip) Distance() *float64 {
	if t.ArrivalKm == nil {
		return nil
	}
	d := math.Round((*t.ArrivalKm-t.DepartureKm)*10) / 10
	return &d
}
