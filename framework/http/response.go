package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/km-arc/go-depmanager/framework/container"
)

// ── Response ─────────────────────────────────────────────────────────────────

// Response wraps http.ResponseWriter with Laravel-style helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Accepted sends 202 JSON: {"data": v}
func (res *Response) Accepted(v any) {
	res.JSON(http.StatusAccepted, envelope{"data": v})
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusNotFound, "Resource not found")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	msg := first(message, "Not found.")
	res.JSON(http.StatusNotFound, envelope{"message": msg})
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	msg := first(message, "Server Error.")
	res.JSON(http.StatusInternalServerError, envelope{"message": msg})
}

// DependencyError maps a container error to its HTTP status and sends it.
//
//	ErrValidation → 422, ErrNotFound → 404, ErrConflict → 409,
//	ErrLoad → 502, anything else → 500
func (res *Response) DependencyError(err error) {
	switch status := StatusFor(err); status {
	case http.StatusNotFound:
		res.NotFound(err.Error())
	case http.StatusInternalServerError:
		res.ServerError(err.Error())
	default:
		res.Error(status, err.Error())
	}
}

// StatusFor returns the HTTP status a container error is reported with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, container.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, container.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, container.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, container.ErrLoad):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
