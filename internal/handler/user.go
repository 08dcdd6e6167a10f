package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/middleware"
	"github.com/rmfarias/gatekeeper/backend/internal/service"
)

// userRequest is the body for both POST /api/users and PUT /api/users/{id}.
// On update, empty fields keep their current value.
type userRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (req userRequest) toInput() service.UserInput {
	return service.UserInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	}
}

// listUsers handles GET /api/users.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Users.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// createUser handles POST /api/users.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	created, err := s.deps.Users.Create(r.Context(), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			writeError(w, http.StatusConflict, "conflict", "username already taken")
			return
		}
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// updateUser handles PUT /api/users/{id}.
func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		requestError(w, "invalid user id")
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	updated, err := s.deps.Users.Update(r.Context(), id, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		if errors.Is(err, domain.ErrConflict) {
			writeError(w, http.StatusConflict, "conflict", "username already taken")
			return
		}
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// deleteUser handles DELETE /api/users/{id}.
// The caller identity comes from the auth middleware; deleting yourself is
// rejected by the service.
func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		requestError(w, "invalid user id")
		return
	}

	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing token")
		return
	}

	if err := s.deps.Users.Delete(r.Context(), identity.UserID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
