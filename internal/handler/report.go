package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/export"
)

// reportResponse is the GET /api/reports/daily body. It mirrors
// domain.DailyReport with fleet trips augmented by their derived fields.
type reportResponse struct {
	Date        string           `json:"date"`
	Visitors    []domain.Visitor `json:"visitors"`
	Fleet       []tripResponse   `json:"fleet"`
	Schedules   []domain.Schedule `json:"schedules"`
	Observation string           `json:"observation"`
	PorterName  string           `json:"porter_name"`
}

// saveObservationRequest is the POST /api/reports/observation body.
type saveObservationRequest struct {
	Observation string `json:"observation"`
	PorterName  string `json:"porter_name"`
}

// dailyReport handles GET /api/reports/daily?date= (default today).
func (s *Server) dailyReport(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		requestError(w, "invalid date, expected YYYY-MM-DD")
		return
	}

	report, err := s.deps.Reports.BuildReport(r.Context(), date)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reportResponse{
		Date:        report.Date,
		Visitors:    report.Visitors,
		Fleet:       toTripResponses(report.Fleet),
		Schedules:   report.Schedules,
		Observation: report.Observation,
		PorterName:  report.PorterName,
	})
}

// saveObservation handles POST /api/reports/observation?date= (default today).
// Upsert: saving again overwrites both fields; empty strings clear them.
func (s *Server) saveObservation(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		requestError(w, "invalid date, expected YYYY-MM-DD")
		return
	}

	var req saveObservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	obs, err := s.deps.Reports.SaveObservation(r.Context(), date, req.Observation, req.PorterName)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, obs)
}

// exportExcel handles GET /api/reports/export/excel?date=.
// The export consumes BuildReport's output verbatim; rendering owns no rules.
func (s *Server) exportExcel(w http.ResponseWriter, r *http.Request) {
	s.exportReport(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", export.Excel)
}

// exportPDF handles GET /api/reports/export/pdf?date=.
func (s *Server) exportPDF(w http.ResponseWriter, r *http.Request) {
	s.exportReport(w, r, "application/pdf", "pdf", export.PDF)
}

// exportReport builds the report for the requested date and streams it
// through the given renderer as a file download.
func (s *Server) exportReport(w http.ResponseWriter, r *http.Request, contentType, ext string, render func(domain.DailyReport) ([]byte, error)) {
	date, err := dateParam(r)
	if err != nil {
		requestError(w, "invalid date, expected YYYY-MM-DD")
		return
	}

	report, err := s.deps.Reports.BuildReport(r.Context(), date)
	if err != nil {
		respondError(w, err)
		return
	}

	file, err := render(report)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=relatorio_%s.%s", report.Date, ext))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file)
}
