package store

import (
	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRecordStore implements the StoreManager interface.
func (m *MockStoreManager) GetRecordStore() contract.RecordStore {
	ret := m.Called()
	records, _ := ret.Get(0).(contract.RecordStore)
	return records
}

// MockRecordStore is a mock implementation of RecordStore for testing.
type MockRecordStore struct {
	mock.Mock
}

var _ contract.RecordStore = &MockRecordStore{} // Compile-time check

// LoadHistory implements the RecordStore interface.
func (m *MockRecordStore) LoadHistory(identity string) ([]schema.HistoryPoint, error) {
	args := m.Called(identity)
	history, _ := args.Get(0).([]schema.HistoryPoint)
	return history, args.Error(1)
}

// LoadCurrentScores implements the RecordStore interface.
func (m *MockRecordStore) LoadCurrentScores(identity string) (schema.ScoreSet, bool, error) {
	args := m.Called(identity)
	return args.Get(0).(schema.ScoreSet), args.Bool(1), args.Error(2)
}

// LoadReflections implements the RecordStore interface.
func (m *MockRecordStore) LoadReflections(identity string) ([]schema.ReflectionEntry, error) {
	args := m.Called(identity)
	entries, _ := args.Get(0).([]schema.ReflectionEntry)
	return entries, args.Error(1)
}

// AppendReflection implements the RecordStore interface.
func (m *MockRecordStore) AppendReflection(identity string, entry schema.ReflectionEntry) error {
	args := m.Called(identity, entry)
	return args.Error(0)
}

// ReplaceAll implements the RecordStore interface.
func (m *MockRecordStore) ReplaceAll(bundle schema.Bundle) error {
	args := m.Called(bundle)
	return args.Error(0)
}

// Clear implements the RecordStore interface.
func (m *MockRecordStore) Clear(identity string) error {
	args := m.Called(identity)
	return args.Error(0)
}

// GetStatus implements the RecordStore interface.
func (m *MockRecordStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the RecordStore interface.
func (m *MockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
