package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

// tripResponse augments a FleetTrip with its derived status and distance,
// which are computed on read and never stored.
type tripResponse struct {
	domain.FleetTrip
	Status   string   `json:"status"`
	Distance *float64 `json:"distance"`
}

func toTripResponse(t domain.FleetTrip) tripResponse {
	return tripResponse{FleetTrip: t, Status: t.Status(), Distance: t.Distance()}
}

func toTripResponses(trips []domain.FleetTrip) []tripResponse {
	out := make([]tripResponse, len(trips))
	for i, t := range trips {
		out[i] = toTripResponse(t)
	}
	return out
}

// createFleetTripRequest is the POST /api/fleet body.
// DepartureKm is a pointer so a missing field is distinguishable from 0.
type createFleetTripRequest struct {
	DriverName  string   `json:"driver_name"`
	Vehicle     string   `json:"vehicle"`
	DepartureKm *float64 `json:"departure_km"`
}

// returnFleetTripRequest is the PUT /api/fleet/{id}/return body.
type returnFleetTripRequest struct {
	ArrivalKm *float64 `json:"arrival_km"`
}

// createFleetTrip handles POST /api/fleet (departure registration).
func (s *Server) createFleetTrip(w http.ResponseWriter, r *http.Request) {
	var req createFleetTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}
	if req.DepartureKm == nil {
		requestError(w, "departure_km is required")
		return
	}

	created, err := s.deps.Fleet.RegisterDeparture(r.Context(), domain.FleetTrip{
		DriverName:  req.DriverName,
		Vehicle:     req.Vehicle,
		DepartureKm: *req.DepartureKm,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTripResponse(created))
}

// listFleetTrips handles GET /api/fleet.
// ?active=true lists vehicles still out; otherwise ?date= (default today)
// lists the day's departures.
func (s *Server) listFleetTrips(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.URL.Query().Get("active") == "true" {
		trips, err := s.deps.Fleet.ListActive(ctx)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTripResponses(trips))
		return
	}

	date, err := dateParam(r)
	if err != nil {
		requestError(w, "invalid date, expected YYYY-MM-DD")
		return
	}

	trips, err := s.deps.Fleet.ListByDate(ctx, date)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTripResponses(trips))
}

// returnFleetTrip handles PUT /api/fleet/{id}/return.
// A second return attempt gets 409 and the stored arrival reading stands.
func (s *Server) returnFleetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	var req returnFleetTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}
	if req.ArrivalKm == nil {
		requestError(w, "arrival_km is required")
		return
	}

	closed, err := s.deps.Fleet.RegisterReturn(r.Context(), id, *req.ArrivalKm)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "trip not found")
			return
		}
		if errors.Is(err, domain.ErrConflict) {
			writeError(w, http.StatusConflict, "conflict", "trip already returned")
			return
		}
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTripResponse(closed))
}
