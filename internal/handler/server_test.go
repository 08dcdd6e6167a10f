package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmfarias/gatekeeper/backend/internal/authz"
	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/handler"
)

// Tokens accepted by the stub verifier. Handler tests exercise routing,
// status mapping, and role gating; real JWT verification is covered by the
// auth package tests.
const (
	adminToken    = "admin-token"
	porteiroToken = "porteiro-token"
)

var (
	adminID    = uuid.New()
	porteiroID = uuid.New()
)

// stubVerifier resolves the two well-known test tokens.
type stubVerifier struct{}

func (stubVerifier) Verify(token string) (domain.Identity, error) {
	switch token {
	case adminToken:
		return domain.Identity{UserID: adminID, Username: "admin", Name: "Administrador", Role: domain.RoleAdmin}, nil
	case porteiroToken:
		return domain.Identity{UserID: porteiroID, Username: "porteiro1", Name: "Porteiro Um", Role: domain.RolePorteiro}, nil
	default:
		return domain.Identity{}, domain.ErrUnauthorized
	}
}

// newTestHandler wires a Server with the given service mocks, the stub
// verifier, and the real authorization policy.
func newTestHandler(t *testing.T, deps handler.Deps) http.Handler {
	t.Helper()

	if deps.Verifier == nil {
		deps.Verifier = stubVerifier{}
	}
	if deps.Roles == nil {
		enforcer, err := authz.NewEnforcer()
		require.NoError(t, err)
		deps.Roles = enforcer
	}
	return handler.NewServer(deps).Routes()
}

// doRequest performs one request against h. An empty token sends no
// Authorization header.
func doRequest(h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeError unmarshals the standard error envelope.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// ---- health and authentication ---------------------------------------------

func TestHealth_NoTokenRequired(t *testing.T) {
	h := newTestHandler(t, handler.Deps{})

	rec := doRequest(h, http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestProtectedRoute_MissingToken(t *testing.T) {
	h := newTestHandler(t, handler.Deps{})

	rec := doRequest(h, http.MethodGet, "/dashboard/stats", "", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeError(t, rec).Error.Code)
}

func TestProtectedRoute_InvalidToken(t *testing.T) {
	h := newTestHandler(t, handler.Deps{})

	rec := doRequest(h, http.MethodGet, "/dashboard/stats", "forged", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoute_QueryParamToken(t *testing.T) {
	// Export downloads open in a new browser tab and cannot set headers,
	// so the token is also accepted as a query parameter.
	h := newTestHandler(t, handler.Deps{Dashboard: &mockDashboardServicer{
		stats: func() (domain.DashboardStats, error) { return domain.DashboardStats{}, nil },
	}})

	rec := doRequest(h, http.MethodGet, "/dashboard/stats?authorization="+adminToken, "", "")

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestVerifyToken_EchoesIdentity(t *testing.T) {
	h := newTestHandler(t, handler.Deps{})

	rec := doRequest(h, http.MethodGet, "/auth/verify", porteiroToken, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		User map[string]string `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "porteiro1", resp.User["username"])
	assert.Equal(t, domain.RolePorteiro, resp.User["role"])
}
