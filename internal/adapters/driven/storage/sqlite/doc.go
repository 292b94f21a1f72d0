// Package sqlite stores validation run history in SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. It implements driven.RunStore through a single database connection.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is one forward-only .up.sql file.
//
// # Data Location
//
// The database is stored at <data dir>/history.db; the CLI defaults the data
// directory to <project root>/.modelkit.
//
// # Thread Safety
//
// All operations are thread-safe. The store relies on SQLite's WAL mode
// and wraps each run in a transaction.
package sqlite
