package web

// errors.go provides unified error response handling for the web layer.
//
// Errors are logged with full technical detail server-side, correlated
// by request ID, and returned to clients as a sanitized JSON body.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/gridline/remote"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError logs the technical error and writes a sanitized JSON
// response. Upstream HTTP failures keep their status code; everything
// else uses the caller's statusCode.
func (s *Server[T]) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	message := "internal server error"

	var httpErr *remote.HTTPError
	if errors.As(err, &httpErr) {
		statusCode = http.StatusBadGateway
		message = "upstream data source error"
	}

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeErrorBody(w, statusCode, message)
}

// writeError writes a JSON error response for a known-safe message.
func writeError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	slog.Warn("request rejected",
		"path", r.URL.Path,
		"status", statusCode,
		"reason", message,
		"request_id", middleware.GetReqID(r.Context()),
	)
	writeErrorBody(w, statusCode, message)
}

func writeErrorBody(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
