// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "github.com/huangsam/uli/schema"

// StoreManager defines the interface for managing the record store.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetRecordStore() RecordStore
}

// RecordStore defines the persistence operations for reflection data.
// Every operation is scoped to an explicit identity.
type RecordStore interface {
	// LoadHistory returns every history point stored for identity, in insertion order.
	LoadHistory(identity string) ([]schema.HistoryPoint, error)

	// LoadCurrentScores returns the current scores and whether any were stored.
	// Callers substitute schema.DefaultScoreSet when the flag is false.
	LoadCurrentScores(identity string) (schema.ScoreSet, bool, error)

	// LoadReflections returns every reflection entry stored for identity, in insertion order.
	LoadReflections(identity string) ([]schema.ReflectionEntry, error)

	// AppendReflection stores the entry, its history point, and the new current scores
	// as a single unit.
	AppendReflection(identity string, entry schema.ReflectionEntry) error

	// ReplaceAll clears everything stored for bundle.Identity and writes the bundle
	// as a single unit.
	ReplaceAll(bundle schema.Bundle) error

	// Clear removes everything stored for identity.
	Clear(identity string) error

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
