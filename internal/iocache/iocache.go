// Package iocache is for persisting serialized quarter series.
package iocache

import (
	"fmt"
	"os"
	"sync"

	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/schema"
)

// seriesTable is the name of the table for series storage.
const seriesTable = "pulse_series"

// SeriesStoreManager manages the SeriesStore instance.
type SeriesStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	series       contract.SeriesStore
}

var _ contract.SeriesManager = &SeriesStoreManager{} // Compile-time check

// GetSeriesStore returns the series SeriesStore.
func (mgr *SeriesStoreManager) GetSeriesStore() contract.SeriesStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.series
}

// Global Manager instance for main logic.
var (
	Manager   = &SeriesStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for series storage.
func GetDBFilePath() string {
	return contract.GetStoreDBFilePath()
}

// InitStore initializes the global series store manager.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		store, err := NewSeriesStore(seriesTable, backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize series store: %w", err)
			return
		}
		Manager.series = store
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.series != nil {
			_ = Manager.series.Close()
		}
	})
}

// ClearStore removes all stored series for the specified backend.
// For SQLite, it deletes the database file.
// For MySQL/PostgreSQL, it drops the series table.
func ClearStore(backend schema.DatabaseBackend, dbPath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if connStr != "" {
			dbPath = connStr
		}
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database %q: %w", dbPath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		store, err := NewSeriesStore(seriesTable, backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		impl, ok := store.(*SeriesStoreImpl)
		if !ok {
			return fmt.Errorf("unexpected store implementation for backend %s", backend)
		}
		return impl.dropTable()

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend: %s", backend)
	}
}
