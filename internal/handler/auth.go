package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/middleware"
)

// loginRequest is the POST /api/auth/login body.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse pairs the issued token with the authenticated user.
type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// login handles POST /api/auth/login.
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		requestError(w, "username and password are required")
		return
	}

	token, user, err := s.deps.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// verifyToken handles GET /api/auth/verify.
// Reaching it at all means the auth middleware accepted the token; the
// handler just echoes the resolved identity back.
func (s *Server) verifyToken(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": map[string]string{
			"id":       identity.UserID.String(),
			"username": identity.Username,
			"name":     identity.Name,
			"role":     identity.Role,
		},
	})
}
