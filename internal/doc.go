// Package internal documents the batch service internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, problem documents and routing
// - domain/batches: the batch record, the Store contract and the Gateway
// - storage: backend selection plus the postgres (pgx) and sqlite (gorm) stores
// - config, metrics, telemetry: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
