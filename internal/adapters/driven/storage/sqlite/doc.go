// Package sqlite provides a SQLite-based implementation of the driven storage ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. One database connection backs several stores:
//
//   - DeliveryStore: the ordered delivery list
//   - PackageCache: packages from the last successful refresh per delivery
//   - TokenCache: carrier login tokens
//   - SchedulerStore: scheduler task state and history
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.parcels/data/parcels.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. SQLite runs in WAL mode with a
// busy timeout so concurrent refresh writes queue rather than fail.
package sqlite
