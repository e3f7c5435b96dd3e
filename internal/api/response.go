// Package api serves the calendar converter and event projector over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zapponejosh/hijri-calendar-api/internal/calendar"
)

// Error codes returned in the envelope. Clients match on these, so they
// never change once published.
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeInvalidMonth  = "INVALID_MONTH"
	CodeInvalidDay    = "INVALID_DAY"
	CodeNotFound      = "NOT_FOUND"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeInternalError = "INTERNAL_ERROR"
	CodeUnhealthy     = "HEALTH_CHECK_FAILED"
)

// Response is the JSON envelope every endpoint except events.ics and
// /metrics answers with.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Meta    *PageMeta  `json:"meta,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// PageMeta describes a slice of a paginated listing.
type PageMeta struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

func newPageMeta(limit, offset, total int) *PageMeta {
	return &PageMeta{
		Limit:   limit,
		Offset:  offset,
		Total:   total,
		HasMore: offset+limit < total,
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

// WritePage writes one page of a listing along with its paging metadata.
func WritePage(w http.ResponseWriter, data any, meta *PageMeta) error {
	return WriteJSON(w, http.StatusOK, Response{Success: true, Data: data, Meta: meta})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, status int, message, code string) error {
	return WriteJSON(w, status, Response{
		Error: &ErrorInfo{Message: message, Code: code},
	})
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadRequest, message, CodeBadRequest)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

// WriteInvalidDate maps a date validation error to a 400 with the matching
// code: INVALID_MONTH, INVALID_DAY, or BAD_REQUEST for anything else.
func WriteInvalidDate(w http.ResponseWriter, err error) error {
	code := CodeBadRequest
	switch {
	case errors.Is(err, calendar.ErrInvalidMonth):
		code = CodeInvalidMonth
	case errors.Is(err, calendar.ErrInvalidDay):
		code = CodeInvalidDay
	}
	return WriteError(w, http.StatusBadRequest, err.Error(), code)
}
