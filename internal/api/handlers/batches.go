package handlers

import (
	"net/http"

	"github.com/hydra-janus/batch-service/internal/api/problem"
	"github.com/hydra-janus/batch-service/internal/domain/batches"
)

type BatchesHandler struct {
	Gateway *batches.Gateway
	Env     string
}

func NewBatchesHandler(gateway *batches.Gateway, env string) *BatchesHandler {
	return &BatchesHandler{Gateway: gateway, Env: env}
}

// Create handles POST /batches. Any id in the body is ignored by the store.
func (h *BatchesHandler) Create(w http.ResponseWriter, r *http.Request) {
	record, err := decodeRecord(r)
	if err != nil {
		writeDecodeError(w, r, err, h.Env)
		return
	}

	created, err := h.Gateway.Create(r.Context(), record)
	if err != nil {
		writeStoreError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListByTrainer handles GET /batches/trainer/{id}.
func (h *BatchesHandler) ListByTrainer(w http.ResponseWriter, r *http.Request) {
	trainerID, err := pathID(r, "id")
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problemInvalidID, "Invalid trainer id", err, h.Env)
		return
	}

	records, err := h.Gateway.ListByTrainer(r.Context(), trainerID)
	if err != nil {
		writeStoreError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

// List handles GET /batches.
func (h *BatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.Gateway.ListAll(r.Context())
	if err != nil {
		writeStoreError(w, r, err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

// Update handles PUT /batches. The body must carry the id of the batch to
// replace.
func (h *BatchesHandler) Update(w http.ResponseWriter, r *http.Request) {
	record, err := decodeRecord(r)
	if err != nil {
		writeDecodeError(w, r, err, h.Env)
		return
	}

	if err := h.Gateway.Update(r.Context(), record); err != nil {
		writeStoreError(w, r, err, h.Env)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /batches/{id}.
func (h *BatchesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, problemInvalidID, "Invalid batch id", err, h.Env)
		return
	}

	if err := h.Gateway.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, h.Env)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stores return empty slices, but a nil from a custom store must still
// encode as [] rather than null.
func nonNil(records []batches.Record) []batches.Record {
	if records == nil {
		return []batches.Record{}
	}
	return records
}
