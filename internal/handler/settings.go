package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

// updateSettingsRequest is the PUT /api/settings body.
type updateSettingsRequest struct {
	ServerIP    string `json:"server_ip"`
	ServerPort  string `json:"server_port"`
	BackendPort string `json:"backend_port"`
}

// getSettings handles GET /api/settings.
func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.deps.Settings.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// updateSettings handles PUT /api/settings. The route is admin-gated via the
// authorization predicate; by the time this runs the role check has passed.
func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	updated, err := s.deps.Settings.Update(r.Context(), domain.Settings{
		ServerIP:    req.ServerIP,
		ServerPort:  req.ServerPort,
		BackendPort: req.BackendPort,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
