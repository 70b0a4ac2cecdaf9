// Package kv provides the key/value stores that stand in for the browser's
// localStorage and sessionStorage.
//
// Both stores share one SQLite implementation (SQLiteRepository) and differ
// only in the table they use: local_storage survives restarts, while
// session_storage is truncated when the client starts. The repository runs
// on a dbx.DBTX, so it can be bound to a transaction for multi-store wipes.
//
// Get returns (nil, nil) for a missing key; Set is an upsert.
package kv
