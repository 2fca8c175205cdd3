package models

import (
	"encoding/json"
	"net/http"
)

// Problem is an RFC 7807 problem document, written with
// Content-Type application/problem+json.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`

	// Instance is the request path that produced the problem.
	Instance string `json:"instance,omitempty"`

	// TraceID echoes the request ID so clients can quote it in reports.
	TraceID string `json:"traceId"`

	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError describes one invalid query parameter or body field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Problem type URIs.
const (
	ProblemTypeValidation       = "https://tidewise.dev/problems/validation-error"
	ProblemTypeNotFound         = "https://tidewise.dev/problems/not-found"
	ProblemTypeNoData           = "https://tidewise.dev/problems/no-data"
	ProblemTypeUnsupportedMedia = "https://tidewise.dev/problems/unsupported-media-type"
	ProblemTypeTLSRequired      = "https://tidewise.dev/problems/tls-required"
	ProblemTypeTooManyRequests  = "https://tidewise.dev/problems/too-many-requests"
	ProblemTypeInternal         = "https://tidewise.dev/problems/internal-error"
	ProblemTypeUnavailable      = "https://tidewise.dev/problems/service-unavailable"
)

// NewProblem returns a problem without detail.
func NewProblem(problemType, title string, status int, traceID string) *Problem {
	return &Problem{
		Type:    problemType,
		Title:   title,
		Status:  status,
		TraceID: traceID,
	}
}

func detailed(problemType, title string, status int, traceID, detail string) *Problem {
	p := NewProblem(problemType, title, status, traceID)
	p.Detail = detail
	return p
}

// Write sends the problem with its status code.
func (p *Problem) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.Header().Set("X-Request-Id", p.TraceID)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// NewBadRequest is a 400 validation problem listing the offending fields.
func NewBadRequest(traceID, detail string, errors []FieldError) *Problem {
	p := detailed(ProblemTypeValidation, "Validation error", http.StatusBadRequest, traceID, detail)
	p.Errors = errors
	return p
}

// NewNotFound is a 404 for an unknown sport, spot or route.
func NewNotFound(traceID, detail string) *Problem {
	return detailed(ProblemTypeNotFound, "Not found", http.StatusNotFound, traceID, detail)
}

func NewTooManyRequests(traceID, detail string) *Problem {
	return detailed(ProblemTypeTooManyRequests, "Too many requests", http.StatusTooManyRequests, traceID, detail)
}

// NewNoData is a 404 for a location whose upstream series came back empty.
func NewNoData(traceID, detail string) *Problem {
	return detailed(ProblemTypeNoData, "No data available", http.StatusNotFound, traceID, detail)
}

func NewInternalError(traceID, detail string) *Problem {
	return detailed(ProblemTypeInternal, "Internal server error", http.StatusInternalServerError, traceID, detail)
}

// NewServiceUnavailable is a 503 for an upstream outage or timeout.
func NewServiceUnavailable(traceID, detail string) *Problem {
	return detailed(ProblemTypeUnavailable, "Service unavailable", http.StatusServiceUnavailable, traceID, detail)
}
