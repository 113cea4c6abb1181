package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/hydra-janus/batch-service/internal/api/problem"
	"github.com/hydra-janus/batch-service/internal/domain/batches"
)

const (
	problemBase        = "https://hydra.example.com/problems/"
	problemInvalidBody = problemBase + "invalid-body"
	problemInvalidID   = problemBase + "invalid-id"
	problemValidation  = problemBase + "validation-error"
	problemNotFound    = problemBase + "not-found"
	problemTooLarge    = problemBase + "payload-too-large"
	problemServerError = problemBase + "server-error"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeRecord reads a single batch document from the request body.
func decodeRecord(r *http.Request) (batches.Record, error) {
	var record batches.Record
	if r.Body == nil {
		return record, batches.DecodeError{Message: "request body is required"}
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&record); err != nil {
		var maxErr *http.MaxBytesError
		var decodeErr batches.DecodeError
		switch {
		case errors.As(err, &maxErr), errors.As(err, &decodeErr):
			return record, err
		default:
			return record, batches.DecodeError{Message: "malformed JSON: " + err.Error()}
		}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return record, err
		}
		return record, batches.DecodeError{Message: "request body must contain a single JSON object"}
	}
	return record, nil
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, batches.DecodeError{Field: name, Message: "must be an integer"}
	}
	return id, nil
}

// writeStoreError maps errors returned by the gateway onto problem documents.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, env string) {
	var validationErr batches.ValidationError
	switch {
	case errors.Is(err, batches.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, problemNotFound, "Batch not found", err, env)
	case errors.As(err, &validationErr):
		problem.Write(w, r, http.StatusBadRequest, problemValidation, "Invalid batch", err, env,
			problem.WithFieldError(validationErr.Field, validationErr.Message))
	default:
		problem.Write(w, r, http.StatusInternalServerError, problemServerError, "Server error", err, env)
	}
}

func writeDecodeError(w http.ResponseWriter, r *http.Request, err error, env string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		problem.Write(w, r, http.StatusRequestEntityTooLarge, problemTooLarge, "Request body too large", err, env)
		return
	}

	var decodeErr batches.DecodeError
	errors.As(err, &decodeErr)
	problem.Write(w, r, http.StatusBadRequest, problemInvalidBody, "Invalid request body", err, env,
		problem.WithFieldError(decodeErr.Field, decodeErr.Message))
}
