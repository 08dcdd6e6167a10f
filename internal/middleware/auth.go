package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

// identityKey is the context key under which the resolved caller identity is
// stored. Unexported struct key, so no other package can collide with it.
type identityKey struct{}

// TokenVerifier resolves a raw bearer token into a caller identity.
// auth.TokenManager satisfies it; tests can inject a stub.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// NewAuthenticator returns a middleware that requires a valid session token
// on every request. The token is read from the Authorization header (with or
// without the "Bearer " prefix), falling back to the `authorization` query
// parameter — export downloads open in a new tab and cannot set headers.
//
// On success the resolved domain.Identity is stored in the request context;
// otherwise the request is rejected with 401 before reaching any handler.
func NewAuthenticator(verifier TokenVerifier, reject func(w http.ResponseWriter, status int, code, message string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				token = r.URL.Query().Get("authorization")
			}
			if token == "" {
				reject(w, http.StatusUnauthorized, "unauthorized", "missing token")
				return
			}
			token = strings.TrimPrefix(token, "Bearer ")

			identity, err := verifier.Verify(token)
			if err != nil {
				reject(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom returns the caller identity stored by NewAuthenticator.
// The second return is false when the request never passed authentication.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}
