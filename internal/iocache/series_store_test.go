package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/schema"
)

func newSQLiteStore(t *testing.T) contract.SeriesStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "series.db")
	store, err := NewSeriesStore("pulse_series_test", schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecord(project string, domain schema.Domain) schema.SeriesRecord {
	return schema.SeriesRecord{
		Project:   project,
		Domain:    domain,
		Payload:   []byte(`{"1704067200": {"commits": 3}}`),
		Version:   1,
		UpdatedAt: time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewSeriesStore_InvalidTableName(t *testing.T) {
	_, err := NewSeriesStore("bad-name;drop", schema.SQLiteBackend, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid table name")
}

func TestNewSeriesStore_UnsupportedBackend(t *testing.T) {
	_, err := NewSeriesStore("pulse_series_test", schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store backend")
}

func TestSeriesStore_SetAndGet(t *testing.T) {
	store := newSQLiteStore(t)
	record := sampleRecord("demo", schema.AgilityDomain)
	require.NoError(t, store.Set(record))

	got, err := store.Get("demo", schema.AgilityDomain)
	require.NoError(t, err)
	assert.Equal(t, record.Payload, got.Payload)
	assert.Equal(t, record.Version, got.Version)
	assert.Equal(t, record.UpdatedAt, got.UpdatedAt)
}

func TestSeriesStore_GetMissing(t *testing.T) {
	store := newSQLiteStore(t)
	_, err := store.Get("absent", schema.AgilityDomain)
	assert.ErrorIs(t, err, contract.ErrNoSeries)
}

func TestSeriesStore_SetReplaces(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.Set(sampleRecord("demo", schema.AgilityDomain)))

	updated := sampleRecord("demo", schema.AgilityDomain)
	updated.Payload = []byte(`{"1704067200": {"commits": 9}}`)
	updated.Version = 2
	require.NoError(t, store.Set(updated))

	got, err := store.Get("demo", schema.AgilityDomain)
	require.NoError(t, err)
	assert.Equal(t, updated.Payload, got.Payload)
	assert.Equal(t, 2, got.Version)
}

func TestSeriesStore_DomainsAreIndependent(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.Set(sampleRecord("demo", schema.AgilityDomain)))

	_, err := store.Get("demo", schema.CommunityDomain)
	assert.ErrorIs(t, err, contract.ErrNoSeries)
}

func TestSeriesStore_ProjectsSorted(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.Set(sampleRecord("zulu", schema.AgilityDomain)))
	require.NoError(t, store.Set(sampleRecord("alpha", schema.AgilityDomain)))
	require.NoError(t, store.Set(sampleRecord("alpha", schema.CommunityDomain)))

	projects, err := store.Projects()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zulu"}, projects)
}

func TestSeriesStore_All(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.Set(sampleRecord("demo", schema.AgilityDomain)))
	require.NoError(t, store.Set(sampleRecord("demo", schema.CommunityDomain)))

	records, err := store.All()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, schema.AgilityDomain, records[0].Domain)
	assert.Equal(t, schema.CommunityDomain, records[1].Domain)
}

func TestSeriesStore_GetStatus(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.Set(sampleRecord("demo", schema.AgilityDomain)))
	require.NoError(t, store.Set(sampleRecord("other", schema.AgilityDomain)))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalSeries)
	assert.Equal(t, 2, status.TotalProjects)
	assert.Greater(t, status.TableSizeBytes, int64(0))
	assert.False(t, status.LastUpdateTime.IsZero())
}

func TestSeriesStore_NoneBackend(t *testing.T) {
	store, err := NewSeriesStore("pulse_series_test", schema.NoneBackend, "")
	require.NoError(t, err)

	_, err = store.Get("demo", schema.AgilityDomain)
	assert.ErrorIs(t, err, contract.ErrNoSeries)
	assert.NoError(t, store.Set(sampleRecord("demo", schema.AgilityDomain)))

	projects, err := store.Projects()
	require.NoError(t, err)
	assert.Nil(t, projects)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestClearStore_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "series.db")
	store, err := NewSeriesStore("pulse_series_test", schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set(sampleRecord("demo", schema.AgilityDomain)))
	require.NoError(t, store.Close())

	require.NoError(t, ClearStore(schema.SQLiteBackend, "", dbPath))
	// A second clear should be a no-op rather than an error
	require.NoError(t, ClearStore(schema.SQLiteBackend, "", dbPath))
}

func TestClearStore_NoneBackend(t *testing.T) {
	assert.NoError(t, ClearStore(schema.NoneBackend, "", ""))
}

func TestClearStore_UnsupportedBackend(t *testing.T) {
	err := ClearStore(schema.DatabaseBackend("oracle"), "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store backend")
}

func TestMigrateSeries_NoneBackend(t *testing.T) {
	err := MigrateSeries(schema.NoneBackend, "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}

func TestMigrateSeries_SQLiteUpAndDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "series.db")
	require.NoError(t, MigrateSeries(schema.SQLiteBackend, dbPath, -1))
	// Re-running against a migrated database is a no-op
	require.NoError(t, MigrateSeries(schema.SQLiteBackend, dbPath, -1))
	// Full rollback
	require.NoError(t, MigrateSeries(schema.SQLiteBackend, dbPath, 0))
}
