package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

// createScheduleRequest is the POST /api/schedules body.
type createScheduleRequest struct {
	VisitorName string `json:"visitor_name"`
	Company     string `json:"company"`
	VisitDate   string `json:"visit_date"`
	VisitTime   string `json:"visit_time"`
	Notes       string `json:"notes"`
}

// createSchedule handles POST /api/schedules.
func (s *Server) createSchedule(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}
	if req.VisitDate == "" {
		requestError(w, "visit_date is required")
		return
	}
	visitDate, err := domain.ParseDate(req.VisitDate)
	if err != nil {
		requestError(w, "invalid visit_date, expected YYYY-MM-DD")
		return
	}

	created, err := s.deps.Schedules.Create(r.Context(), domain.Schedule{
		VisitorName: req.VisitorName,
		Company:     req.Company,
		VisitDate:   visitDate,
		VisitTime:   req.VisitTime,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// listSchedules handles GET /api/schedules: every schedule, agenda order.
func (s *Server) listSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := s.deps.Schedules.ListAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedules)
}

// listTodaySchedules handles GET /api/schedules/today: today's pending
// appointments only. The length of this list is the notification badge.
func (s *Server) listTodaySchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := s.deps.Schedules.ListToday(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schedules)
}

// completeSchedule handles PUT /api/schedules/{id}/complete.
// Idempotent: completing twice is a no-op success.
func (s *Server) completeSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		requestError(w, "invalid schedule id")
		return
	}

	completed, err := s.deps.Schedules.Complete(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "schedule not found")
			return
		}
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, completed)
}

// deleteSchedule handles DELETE /api/schedules/{id}.
func (s *Server) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		requestError(w, "invalid schedule id")
		return
	}

	if err := s.deps.Schedules.Remove(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "schedule not found")
			return
		}
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
