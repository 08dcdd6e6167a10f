package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

// ErrorResponse is the JSON error envelope returned on every failure.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. Encoding failures are
// swallowed: headers are already out, there is nothing useful left to do.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the standard error envelope.
// Its signature matches what the auth middleware expects for rejections.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// respondError maps a service error onto the HTTP taxonomy:
// validation → 422, not found → 404, conflict → 409, unauthorized → 401,
// forbidden → 403, anything else → 500 with a generic message.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", unwrapMessage(err, domain.ErrNotFound))
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", unwrapMessage(err, domain.ErrConflict))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", unwrapMessage(err, domain.ErrUnauthorized))
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", unwrapMessage(err, domain.ErrForbidden))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// requestError rejects a request before it reaches the service layer
// (malformed body, bad query parameter).
func requestError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel error.
// e.g. "service.VisitorService.RegisterEntry: validation error: name is required"
// → "name is required". When the sentinel carries no detail, its own text is
// returned (e.g. "not found").
func unwrapMessage(err error, sentinel error) string {
	msg := err.Error()

	// "prefix: sentinel: detail" → "detail"
	if idx := strings.LastIndex(msg, sentinel.Error()+": "); idx >= 0 {
		return msg[idx+len(sentinel.Error())+2:]
	}
	// "detail: sentinel" → "detail" (drop any "layer.Type.Method: " prefixes)
	msg = strings.TrimSuffix(msg, ": "+sentinel.Error())
	if idx := strings.LastIndex(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
