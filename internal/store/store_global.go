package store

import (
	"fmt"
	"sync"

	"github.com/huangsam/uli/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &RecordStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStore initializes the global manager with a store for the backend.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		records, err := NewRecordStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize record store: %w", err)
			return
		}
		Manager.Lock()
		defer Manager.Unlock()
		Manager.records = records
	})

	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.records != nil {
			_ = Manager.records.Close()
		}
	})
}
