package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

// createVisitorRequest is the POST /api/visitors body.
type createVisitorRequest struct {
	Name         string `json:"name"`
	Document     string `json:"document"`
	VehiclePlate string `json:"vehicle_plate"`
	Company      string `json:"company"`
	Observation  string `json:"observation"`
	Invoice      string `json:"invoice"`
}

// createVisitor handles POST /api/visitors (entry registration).
func (s *Server) createVisitor(w http.ResponseWriter, r *http.Request) {
	var req createVisitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	created, err := s.deps.Visitors.RegisterEntry(r.Context(), domain.Visitor{
		Name:         req.Name,
		Document:     req.Document,
		VehiclePlate: req.VehiclePlate,
		Company:      req.Company,
		Observation:  req.Observation,
		Invoice:      req.Invoice,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// listVisitors handles GET /api/visitors.
// Query modes, in priority order: ?q= searches across all dates,
// ?active=true lists everyone still inside, otherwise ?date= (default today)
// lists the day's entries.
func (s *Server) listVisitors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if q := r.URL.Query().Get("q"); q != "" {
		visitors, err := s.deps.Visitors.Search(ctx, q)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, visitors)
		return
	}

	if r.URL.Query().Get("active") == "true" {
		visitors, err := s.deps.Visitors.ListActive(ctx)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, visitors)
		return
	}

	date, err := dateParam(r)
	if err != nil {
		requestError(w, "invalid date, expected YYYY-MM-DD")
		return
	}

	visitors, err := s.deps.Visitors.ListByDate(ctx, date)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, visitors)
}

// checkoutVisitor handles PUT /api/visitors/{id}/checkout.
// No body: the exit time is the server clock. A second checkout returns 409
// and leaves the recorded exit time untouched.
func (s *Server) checkoutVisitor(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		requestError(w, "invalid visitor id")
		return
	}

	closed, err := s.deps.Visitors.RegisterExit(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "visitor not found")
			return
		}
		if errors.Is(err, domain.ErrConflict) {
			writeError(w, http.StatusConflict, "conflict", "visitor already checked out")
			return
		}
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, closed)
}
