package handler

import "net/http"

// dashboardStats handles GET /api/dashboard/stats.
// Counters are computed fresh on every call; the front end polls this.
func (s *Server) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.Dashboard.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
