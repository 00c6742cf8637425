// Package sqlite provides a SQLite-backed implementation of driven.DocumentStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. The database lives in memory by default; documents are
// rebuilt from source on every start, so nothing is kept between runs.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Thread Safety
//
// All operations are thread-safe. An in-memory database is pinned to a
// single connection so every query sees the same data; Remove runs inside
// a transaction.
package sqlite
