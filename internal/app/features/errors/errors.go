// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/0-LuckyPenny/react-node-test/internal/app/system/authz"
	"go.uber.org/zap"
)

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error": msg}, the shape used for create and list failures.
func Error(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

// Message writes {"message": msg}, the shape used for not-found and delete replies.
func Message(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"message": msg})
}

// ErrorLogger logs a failed request once, at the handler boundary.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger wraps logger.
func NewErrorLogger(logger *zap.Logger) ErrorLogger {
	return ErrorLogger{Log: logger}
}

// Log records err with the route and any extra fields.
func (el ErrorLogger) Log(r *http.Request, msg string, err error, fields ...zap.Field) {
	if el.Log == nil {
		return
	}
	fields = append(fields,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	el.Log.Error(msg, fields...)
}

// Handler serves the JSON error endpoints the auth gates redirect to.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

type statusBody struct {
	Message  string `json:"message"`
	SignedIn bool   `json:"signedIn"`
	Role     string `json:"role,omitempty"`
}

// Forbidden reports that the signed-in user lacks permission.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	role, _, _, signedIn := authz.UserCtx(r)
	body := statusBody{Message: "You don't have permission to do that.", SignedIn: signedIn}
	if signedIn {
		body.Role = role
	}
	WriteJSON(w, http.StatusForbidden, body)
}

// Unauthorized reports that sign-in is required.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	_, _, _, signedIn := authz.UserCtx(r)
	WriteJSON(w, http.StatusUnauthorized, statusBody{Message: "Please sign in to continue.", SignedIn: signedIn})
}

// NotFound is installed as the router's fallback.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	Message(w, http.StatusNotFound, "Not found.")
}
