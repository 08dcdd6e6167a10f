package middleware

import (
	"net/http"
)

// RoleChecker is the single authorization predicate consulted before any
// role-gated operation. authz.Enforcer satisfies it.
type RoleChecker interface {
	Can(role, object, action string) bool
}

// NewAuthorizer returns a middleware that permits the request only when the
// authenticated caller's role may perform action on object. It must be wired
// after NewAuthenticator; a request with no identity is rejected with 401.
func NewAuthorizer(checker RoleChecker, object, action string, reject func(w http.ResponseWriter, status int, code, message string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				reject(w, http.StatusUnauthorized, "unauthorized", "missing token")
				return
			}
			if !checker.Can(identity.Role, object, action) {
				reject(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
