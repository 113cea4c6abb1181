// Package problem writes RFC 7807 problem documents.
package problem

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

const contentType = "application/problem+json"

type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

type Option func(*ProblemDetails)

func WithDetail(detail string) Option {
	return func(p *ProblemDetails) {
		p.Detail = detail
	}
}

// WithFieldError attaches a per-field message, e.g. "trainerId".
func WithFieldError(field, message string) Option {
	return func(p *ProblemDetails) {
		if field == "" {
			return
		}
		if p.Errors == nil {
			p.Errors = make(map[string]string)
		}
		p.Errors[field] = message
	}
}

// Write logs err through the request logger and sends the problem document.
// Outside development and test the detail falls back to the status text so
// internal error strings do not leak.
func Write(w http.ResponseWriter, r *http.Request, status int, typ, title string, err error, env string, opts ...Option) {
	problem := ProblemDetails{
		Type:   typ,
		Title:  title,
		Status: status,
	}
	for _, opt := range opts {
		opt(&problem)
	}

	if problem.Detail == "" && err != nil {
		if env == "development" || env == "test" {
			problem.Detail = err.Error()
		} else {
			problem.Detail = http.StatusText(status)
		}
	}
	if r != nil {
		problem.Instance = r.URL.Path
		logProblem(r, problem, err)
	}

	WriteProblem(w, problem)
}

func logProblem(r *http.Request, problem ProblemDetails, err error) {
	if err == nil || problem.Status < 400 {
		return
	}
	logger := zerolog.Ctx(r.Context())
	event := logger.Warn()
	if problem.Status >= 500 {
		event = logger.Error()
	}
	event.Err(err).
		Int("status", problem.Status).
		Str("type", problem.Type).
		Str("path", r.URL.Path).
		Str("method", r.Method).
		Msg(problem.Title)
}

func WriteProblem(w http.ResponseWriter, problem ProblemDetails) {
	payload, err := json.Marshal(problem)
	if err != nil {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"type":"about:blank","title":"Internal Server Error","status":500}`))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(problem.Status)
	_, _ = w.Write(payload)
}
