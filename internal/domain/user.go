package domain

import (
	"time"

	"github.com/google/uuid"
)

// User roles. An admin manages users and settings; a porteiro (gate
// attendant) operates the day-to-day registers.
const (
	RoleAdmin    = "admin"
	RolePorteiro = "porteiro"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RolePorteiro
}

// User is an operator account. PasswordHash is a bcrypt hash and must never
// be serialized; the json tag drops it from every response.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the resolved caller of a request: the subset of User the core
// consumes for authorization. It is produced by the auth middleware from a
// verified token and travels in the request context.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Name     string
	Role     string
}
