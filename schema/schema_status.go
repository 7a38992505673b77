package schema

import "time"

// StoreStatus represents the status of the record store.
type StoreStatus struct {
	Backend          string           `json:"backend"`
	Connected        bool             `json:"connected"`
	Identities       int              `json:"identities"`
	TotalReflections int              `json:"total_reflections"`
	TotalHistory     int              `json:"total_history"`
	LastEntryTime    time.Time        `json:"last_entry_time"`
	OldestEntryTime  time.Time        `json:"oldest_entry_time"`
	TableSizes       map[string]int64 `json:"table_sizes"`
}
