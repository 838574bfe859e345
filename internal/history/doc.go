// Package history persists per-file combine results in SQLite so past runs
// can be inspected from the CLI.
//
// The database is an append-only record of outcomes, not coordination state;
// the pipeline runs identically when recording is disabled.
package history
