// Package store persists reflection data behind the RecordStore contract.
package store

import (
	"sync"

	"github.com/huangsam/uli/internal/contract"
)

// RecordStoreManager holds the active RecordStore.
type RecordStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	records      contract.RecordStore
}

var _ contract.StoreManager = &RecordStoreManager{} // Compile-time check

// NewRecordStoreManager wraps an existing store, mainly for tests and the MCP server.
func NewRecordStoreManager(records contract.RecordStore) *RecordStoreManager {
	return &RecordStoreManager{records: records}
}

// GetRecordStore returns the active RecordStore.
func (mgr *RecordStoreManager) GetRecordStore() contract.RecordStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.records
}
