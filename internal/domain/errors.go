package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, negative odometer reading).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a state transition is not permitted from the
// record's current state: checking out a visitor that already left,
// registering a return for a trip that already returned, or reusing a
// username. Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when no valid identity accompanies the request
// (missing, expired, or malformed token). Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the caller's role does not permit the
// operation (e.g. a porteiro writing settings). Handlers should map this to
// HTTP 403.
var ErrForbidden = errors.New("forbidden")
