package store

import (
	"errors"
	"slices"
	"sync"

	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/schema"
)

// MemoryStore is a non-durable RecordStore for tests and demos.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*schema.Bundle
}

var _ contract.RecordStore = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]*schema.Bundle)}
}

// LoadHistory returns a copy of the history stored for identity.
func (m *MemoryStore) LoadHistory(identity string) ([]schema.HistoryPoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data[identity]
	if !ok {
		return []schema.HistoryPoint{}, nil
	}
	return slices.Clone(b.History), nil
}

// LoadCurrentScores returns the current scores and whether any were stored.
func (m *MemoryStore) LoadCurrentScores(identity string) (schema.ScoreSet, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data[identity]
	if !ok || b.Scores == nil {
		return schema.ScoreSet{}, false, nil
	}
	return *b.Scores, true, nil
}

// LoadReflections returns a copy of the reflections stored for identity.
func (m *MemoryStore) LoadReflections(identity string) ([]schema.ReflectionEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data[identity]
	if !ok {
		return []schema.ReflectionEntry{}, nil
	}
	out := make([]schema.ReflectionEntry, len(b.Reflections))
	for i, e := range b.Reflections {
		e.Tags = slices.Clone(e.Tags)
		out[i] = e
	}
	return out, nil
}

// AppendReflection stores the entry, its history point and the new current scores.
func (m *MemoryStore) AppendReflection(identity string, entry schema.ReflectionEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.bundle(identity)
	entry.Tags = slices.Clone(entry.Tags)
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	b.Reflections = append(b.Reflections, entry)
	b.History = append(b.History, entry.Point())
	scores := entry.Scores
	b.Scores = &scores
	return nil
}

// ReplaceAll swaps in a copy of bundle for bundle.Identity.
func (m *MemoryStore) ReplaceAll(bundle schema.Bundle) error {
	if err := validateBundle(bundle); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := &schema.Bundle{
		Identity:    bundle.Identity,
		Reflections: make([]schema.ReflectionEntry, 0, len(bundle.Reflections)),
		History:     slices.Clone(bundle.History),
	}
	if stored.History == nil {
		stored.History = []schema.HistoryPoint{}
	}
	for _, e := range bundle.Reflections {
		e.Tags = slices.Clone(e.Tags)
		if e.Tags == nil {
			e.Tags = []string{}
		}
		stored.Reflections = append(stored.Reflections, e)
	}
	if bundle.Scores != nil {
		scores := *bundle.Scores
		stored.Scores = &scores
	}
	m.data[bundle.Identity] = stored
	return nil
}

// Clear removes everything stored for identity.
func (m *MemoryStore) Clear(identity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, identity)
	return nil
}

// GetStatus returns counts across every identity.
func (m *MemoryStore) GetStatus() (schema.StoreStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := schema.StoreStatus{
		Backend:    string(schema.MemoryBackend),
		Connected:  true,
		Identities: len(m.data),
		TableSizes: make(map[string]int64),
	}
	var scored int64
	for _, b := range m.data {
		if b.Scores != nil {
			scored++
		}
		status.TotalReflections += len(b.Reflections)
		status.TotalHistory += len(b.History)
		for _, h := range b.History {
			if status.OldestEntryTime.IsZero() || h.Timestamp.Before(status.OldestEntryTime) {
				status.OldestEntryTime = h.Timestamp.Time
			}
			if h.Timestamp.After(status.LastEntryTime) {
				status.LastEntryTime = h.Timestamp.Time
			}
		}
	}
	status.TableSizes[scoresTable] = scored
	status.TableSizes[reflectionsTable] = int64(status.TotalReflections)
	status.TableSizes[historyTable] = int64(status.TotalHistory)
	return status, nil
}

// Close is a no-op for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}

// bundle returns the bundle for identity, creating it when missing. Callers hold the lock.
func (m *MemoryStore) bundle(identity string) *schema.Bundle {
	b, ok := m.data[identity]
	if !ok {
		b = &schema.Bundle{
			Identity:    identity,
			Reflections: []schema.ReflectionEntry{},
			History:     []schema.HistoryPoint{},
		}
		m.data[identity] = b
	}
	return b
}

// validateBundle checks every record before anything is written.
func validateBundle(bundle schema.Bundle) error {
	if bundle.Identity == "" {
		return errors.New("bundle identity is empty")
	}
	if bundle.Scores != nil {
		if err := bundle.Scores.Validate(); err != nil {
			return schema.InCollection(err, "scores", -1)
		}
	}
	for i, e := range bundle.Reflections {
		if err := e.Validate(); err != nil {
			return schema.InCollection(err, "reflections", i)
		}
	}
	for i, h := range bundle.History {
		if h.Timestamp.IsZero() {
			return &schema.MalformedRecordError{Collection: "history", Index: i, Reason: "timestamp is missing"}
		}
		if err := h.Scores.Validate(); err != nil {
			return schema.InCollection(err, "history", i)
		}
	}
	return nil
}
