// Package store provides SQLite-backed run history for casecheck.
//
// Each harness run is one row in runs, keyed by its UUIDv7 run ID, and each
// executed case is one row in case_results. Rows are written as the run
// progresses through Recorder, which implements harness.Observer, so an
// interrupted run still leaves a record of the cases that finished.
//
// # Ordering
//
//   - Runs list newest first: ORDER BY started_at DESC, id DESC
//   - Case rows list in fixture order: ORDER BY idx ASC
//
// UUIDv7 IDs sort by creation time, so id breaks started_at ties in
// creation order.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
