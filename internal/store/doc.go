// Package store provides SQLite-backed durable storage for compiled
// programs.
//
// The registry is append-only: a program row records the handle id,
// minted name, source kernel hash, parameter list, and canonical JSON
// body of one compilation. Rows are never updated; recompiling a
// kernel registers a new row under a fresh name.
//
// Ordering uses seq INTEGER (a logical clock), never timestamps, and
// every listing query orders by seq ASC, id ASC COLLATE BINARY so
// results are identical across runs.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Kernel hashes are computed in internal/ir/hash.go via RFC 8785
// canonical JSON and SHA-256 with domain separation.
package store
