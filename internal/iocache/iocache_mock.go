package iocache

import (
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/schema"
	"github.com/stretchr/testify/mock"
)

// MockSeriesManager is a mock implementation of SeriesManager for testing.
type MockSeriesManager struct {
	mock.Mock
}

var _ contract.SeriesManager = &MockSeriesManager{} // Compile-time check

// GetSeriesStore implements the SeriesManager interface.
func (m *MockSeriesManager) GetSeriesStore() contract.SeriesStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SeriesStore)
	return store
}

// MockSeriesStore is a mock implementation of SeriesStore for testing.
type MockSeriesStore struct {
	mock.Mock
}

var _ contract.SeriesStore = &MockSeriesStore{} // Compile-time check

// Get implements the SeriesStore interface.
func (m *MockSeriesStore) Get(project string, domain schema.Domain) (schema.SeriesRecord, error) {
	args := m.Called(project, domain)
	record, _ := args.Get(0).(schema.SeriesRecord)
	return record, args.Error(1)
}

// Set implements the SeriesStore interface.
func (m *MockSeriesStore) Set(record schema.SeriesRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

// Projects implements the SeriesStore interface.
func (m *MockSeriesStore) Projects() ([]string, error) {
	args := m.Called()
	projects, _ := args.Get(0).([]string)
	return projects, args.Error(1)
}

// All implements the SeriesStore interface.
func (m *MockSeriesStore) All() ([]schema.SeriesRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.SeriesRecord)
	return records, args.Error(1)
}

// GetStatus implements the SeriesStore interface.
func (m *MockSeriesStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.StoreStatus)
	return status, args.Error(1)
}

// Close implements the SeriesStore interface.
func (m *MockSeriesStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
