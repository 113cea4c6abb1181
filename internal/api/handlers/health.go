package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hydra-janus/batch-service/internal/metrics"
	"github.com/hydra-janus/batch-service/internal/storage"
)

const checkTimeout = 2 * time.Second

// HealthCheck represents the health status of the server
type HealthCheck struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	GitCommit string                 `json:"git_commit"`
	Checks    map[string]CheckResult `json:"checks"`
	Timestamp string                 `json:"timestamp"`
}

// CheckResult represents the result of a single health check
type CheckResult struct {
	Status    string         `json:"status"`
	Message   string         `json:"message,omitempty"`
	LatencyMs int64          `json:"latency_ms,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

type HealthChecker struct {
	repo      storage.Repository
	version   string
	gitCommit string
}

func NewHealthChecker(repo storage.Repository, version, gitCommit string) *HealthChecker {
	return &HealthChecker{
		repo:      repo,
		version:   version,
		gitCommit: gitCommit,
	}
}

// Health reports store connectivity and migration state. Any failing check
// turns the response into a 503.
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Context().Err() != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "shutting_down"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]CheckResult{
			"database":   h.observe("database", h.checkDatabase(ctx)),
			"migrations": h.observe("migrations", h.checkMigrations(ctx)),
		}

		overall := "healthy"
		statusCode := http.StatusOK
		for _, check := range checks {
			if check.Status == "fail" {
				overall = "unhealthy"
				statusCode = http.StatusServiceUnavailable
				break
			}
			if check.Status == "warn" {
				overall = "degraded"
			}
		}

		writeJSON(w, statusCode, HealthCheck{
			Status:    overall,
			Version:   h.version,
			GitCommit: h.gitCommit,
			Checks:    checks,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func (h *HealthChecker) observe(name string, result CheckResult) CheckResult {
	metrics.HealthCheckStatus.WithLabelValues(name).Set(metrics.CheckStatusValue(result.Status))
	metrics.HealthCheckLatency.WithLabelValues(name).Set(float64(result.LatencyMs))
	return result
}

func (h *HealthChecker) checkDatabase(ctx context.Context) CheckResult {
	if h.repo == nil {
		return CheckResult{Status: "fail", Message: "Store not initialized"}
	}

	start := time.Now()
	dbCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	err := h.repo.Ping(dbCtx)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		message := "Store ping failed"
		if errors.Is(dbCtx.Err(), context.DeadlineExceeded) {
			message = fmt.Sprintf("Store ping timed out after %s", checkTimeout)
		}
		return CheckResult{
			Status:    "fail",
			Message:   message,
			LatencyMs: latency,
			Details: map[string]any{
				"error":       err.Error(),
				"remediation": "Check DATABASE_URL and that the database is reachable",
			},
		}
	}

	stats := h.repo.PoolStats()
	return CheckResult{
		Status:    "pass",
		Message:   "Store reachable",
		LatencyMs: latency,
		Details: map[string]any{
			"max_connections":    stats.MaxOpen,
			"open_connections":   stats.Open,
			"in_use_connections": stats.InUse,
			"idle_connections":   stats.Idle,
		},
	}
}

func (h *HealthChecker) checkMigrations(ctx context.Context) CheckResult {
	versioner, ok := h.repo.(storage.SchemaVersioner)
	if !ok {
		return CheckResult{Status: "pass", Message: "Schema managed by the embedded store"}
	}

	start := time.Now()
	migCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	version, dirty, err := versioner.SchemaVersion(migCtx)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return CheckResult{
			Status:    "fail",
			Message:   "Failed to query migration version",
			LatencyMs: latency,
			Details: map[string]any{
				"error":       err.Error(),
				"remediation": "Run: batchsvc migrate up",
			},
		}
	}
	if dirty {
		return CheckResult{
			Status:    "fail",
			Message:   "Database in dirty migration state - manual intervention required",
			LatencyMs: latency,
			Details: map[string]any{
				"version": version,
				"dirty":   true,
			},
		}
	}

	return CheckResult{
		Status:    "pass",
		Message:   fmt.Sprintf("Migrations applied (version %d)", version),
		LatencyMs: latency,
		Details: map[string]any{
			"version": version,
			"dirty":   false,
		},
	}
}

// Healthz is the liveness probe. It never touches the store.
func Healthz() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondHealth(w, http.StatusOK, "ok")
	})
}

// Readyz reports ready once the store answers a ping.
func (h *HealthChecker) Readyz() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.repo == nil {
			respondHealth(w, http.StatusServiceUnavailable, "not_ready")
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()
		if err := h.repo.Ping(ctx); err != nil {
			respondHealth(w, http.StatusServiceUnavailable, "not_ready")
			return
		}
		respondHealth(w, http.StatusOK, "ready")
	})
}

type healthResponse struct {
	Status string `json:"status"`
}

func respondHealth(w http.ResponseWriter, status int, value string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(healthResponse{Status: value})
}
