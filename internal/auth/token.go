package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

// TokenTTL is how long an issued session token remains valid.
const TokenTTL = 24 * time.Hour

// claims are the JWT claims carried by a session token. The string fields
// mirror what the front end reads out of the token payload.
type claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager constructs a TokenManager signing with the given secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// Issue returns a signed token for the given user, valid for TokenTTL.
func (m *TokenManager) Issue(u domain.User) (string, error) {
	now := m.now()
	c := claims{
		UserID:   u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth.TokenManager.Issue: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the identity it carries.
// Returns domain.ErrUnauthorized for any invalid, expired, or malformed token.
func (m *TokenManager) Verify(tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth.TokenManager.Verify: %v: %w", err, domain.ErrUnauthorized)
	}

	c, ok := token.Claims.(*claims)
	if !ok {
		return domain.Identity{}, fmt.Errorf("auth.TokenManager.Verify: %w", domain.ErrUnauthorized)
	}

	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("auth.TokenManager.Verify: bad user_id claim: %w", domain.ErrUnauthorized)
	}

	return domain.Identity{
		UserID:   userID,
		Username: c.Username,
		Name:     c.Name,
		Role:     c.Role,
	}, nil
}
