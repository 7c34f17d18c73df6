// Package repositories implements collection CRUD over the blob store.
// Each collection is one JSON-encoded array under a fixed key; every write
// rewrites the whole collection (last write wins, no partial updates).
package repositories

// Storage keys for the two collections.
const (
	StudentsKey     = "campus_pass_students"
	PassRequestsKey = "campus_pass_requests"
)
