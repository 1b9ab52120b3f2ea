// Package api exposes a small HTTP status surface for the prober.
//
// Separation of Concerns
//
// The api package defines public JSON types (decoupled from core), maps
// core snapshots to JSON, and hosts an HTTP server with minimal middleware.
// The core package remains unaware of HTTP or JSON; scan views are shared
// with the output package so both machine-readable surfaces agree.
//
// Versioning
//
// All routes are versioned under /v1. Non-breaking additions extend types,
// while breaking changes require a new prefix (/v2).
//
// Server
//
// NewServer wires handlers onto a ServeMux and configures timeouts. Start()
// runs ListenAndServe() in a goroutine; Stop() performs graceful shutdown.
// Middleware sets JSON content type and logs method/path/duration.
//
// Error Model
//
// APIError uses a string message and a timestamp in RFC3339. Handlers validate
// methods and respond with 405 where appropriate.
//
// Current Endpoints
//
// - GET /v1/healthz: basic liveness/readiness
// - GET /v1/status: runner lifecycle, uptime, cycles run, and the last scan
package api
