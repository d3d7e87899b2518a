package errors

import "errors"

var (
	// ErrNotFound is the sentinel for a keyed lookup that matched nothing,
	// and for existence checks ahead of updates and deletes.
	ErrNotFound = errors.New("not found")
	// ErrConflict is the sentinel for uniqueness or foreign-key breaches
	// surfaced by the store.
	ErrConflict = errors.New("constraint violation")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConsistency marks a store-level anomaly: an upsert fallback lookup
	// found no row after the insert failed on that row's key. It must never
	// be recovered silently.
	ErrConsistency = errors.New("consistency error")
)
