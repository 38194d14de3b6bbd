package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jlemaire/travel-planner/backend/internal/domain"
)

// pagination is the page metadata block attached to every list response.
type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// listResponse is the success envelope for paginated listings.
type listResponse struct {
	Success    bool       `json:"success"`
	Data       any        `json:"data"`
	Pagination pagination `json:"pagination"`
}

// dataResponse is the success envelope for single-resource operations.
type dataResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// deleteResponse is the success envelope for soft deletes.
type deleteResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	DeletedAt time.Time `json:"deletedAt"`
}

// errorDetail is the error body shared by every failure response.
type errorDetail struct {
	Type       string         `json:"type"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	StatusCode int            `json:"status_code"`
	Path       string         `json:"path"`
	Method     string         `json:"method"`
	Context    map[string]any `json:"context,omitempty"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON serializes v with the given status. Encoding failures are logged
// but not recoverable — the status line has already been written.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeData writes a single-resource success envelope.
func writeData(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, dataResponse{Success: true, Data: data, Message: message})
}

// writeList writes a paginated success envelope.
func writeList(w http.ResponseWriter, data any, p domain.PageParams, total int64) {
	writeJSON(w, http.StatusOK, listResponse{
		Success: true,
		Data:    data,
		Pagination: pagination{
			Page:  p.Page(),
			Limit: p.Limit,
			Total: total,
			Pages: p.Pages(total),
		},
	})
}

// writeError writes the error envelope for a known failure.
func writeError(w http.ResponseWriter, r *http.Request, status int, typ, code, message string, context map[string]any) {
	writeJSON(w, status, errorResponse{Error: errorDetail{
		Type:       typ,
		Code:       code,
		Message:    message,
		StatusCode: status,
		Path:       r.URL.Path,
		Method:     r.Method,
		Context:    context,
	}})
}

// writeValidationError writes a 400 for malformed input rejected before or
// inside the service layer.
func writeValidationError(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusBadRequest, "ValidationError", "validation_error", message, nil)
}

// writeBodyError maps a request body decode failure: 413 when the size-cap
// middleware cut the read short, 400 for everything else.
func writeBodyError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeError(w, r, http.StatusRequestEntityTooLarge, "PayloadTooLarge", "payload_too_large",
			err.Error(), nil)
		return
	}
	writeValidationError(w, r, err.Error())
}

// writeDomainError maps a service-layer error onto the response envelope.
// resource names what was being operated on ("travel", "event", "event type")
// so 404/410 messages read naturally. Unexpected errors are logged with the
// request context and surfaced as a generic 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	var inUse *domain.InUseError
	switch {
	case errors.As(err, &inUse):
		writeError(w, r, http.StatusConflict, "Conflict", "conflict", inUse.Error(),
			map[string]any{"active_events": inUse.Count})
	case errors.Is(err, domain.ErrValidation):
		writeValidationError(w, r, unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "NotFound", "not_found", resource+" not found", nil)
	case errors.Is(err, domain.ErrGone):
		writeError(w, r, http.StatusGone, "Gone", "gone", resource+" has been deleted", nil)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, r, http.StatusConflict, "Conflict", "conflict", unwrapMessage(err), nil)
	default:
		slog.ErrorContext(r.Context(), "unexpected error",
			"error", err,
			"path", r.URL.Path,
			"method", r.Method,
		)
		writeError(w, r, http.StatusInternalServerError, "InternalError", "internal_error",
			"an unexpected error occurred", nil)
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TravelService.Create: validation error: title cannot be empty"
// → "title cannot be empty". The earliest marker is the wrap boundary; later
// occurrences can appear inside user-supplied text and must not cut the
// message short.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	rest := msg
	first := -1
	for _, marker := range []string{"validation error: ", "conflict: "} {
		if i := strings.Index(msg, marker); i >= 0 && (first == -1 || i < first) {
			first = i
			rest = msg[i+len(marker):]
		}
	}
	return rest
}
