package schema

import "time"

// SeriesRecord represents a row from the pulse_series table: one persisted
// quarter series for a project and domain.
type SeriesRecord struct {
	Project   string
	Domain    Domain
	Payload   []byte // JSON serialization of the quarter store
	Version   int
	UpdatedAt time.Time
}

// StoreStatus represents the status of the series store.
type StoreStatus struct {
	Backend        DatabaseBackend `json:"backend"`
	Connected      bool            `json:"connected"`
	TotalSeries    int             `json:"total_series"`
	TotalProjects  int             `json:"total_projects"`
	LastUpdateTime time.Time       `json:"last_update_time"`
	OldestUpdate   time.Time       `json:"oldest_update_time"`
	TableSizeBytes int64           `json:"table_size_bytes"`
}
