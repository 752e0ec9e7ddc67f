// Package sqlite provides a SQLite-backed interface result cache.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Only interface detection results are stored; parsed
// structures stay in memory.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.binderdash/cache/cache.db
package sqlite
