package resultstore

import (
	"time"

	"github.com/flowspan/flowspan/internal/contract"
	"github.com/flowspan/flowspan/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetResultStore implements the StoreManager interface.
func (m *MockStoreManager) GetResultStore() contract.ResultStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.ResultStore)
	return store
}

// MockResultStore is a mock implementation of ResultStore for testing.
type MockResultStore struct {
	mock.Mock
}

var _ contract.ResultStore = &MockResultStore{} // Compile-time check

// BeginRun implements the ResultStore interface.
func (m *MockResultStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the ResultStore interface.
func (m *MockResultStore) EndRun(runID int64, endTime time.Time, totalIssues int) error {
	args := m.Called(runID, endTime, totalIssues)
	return args.Error(0)
}

// RecordIssueResult implements the ResultStore interface.
func (m *MockResultStore) RecordIssueResult(runID int64, result schema.IssueResult) error {
	args := m.Called(runID, result)
	return args.Error(0)
}

// RecordCohortSummary implements the ResultStore interface.
func (m *MockResultStore) RecordCohortSummary(runID int64, rec schema.CohortSummaryRecord) error {
	args := m.Called(runID, rec)
	return args.Error(0)
}

// ListIssueCycles implements the ResultStore interface.
func (m *MockResultStore) ListIssueCycles(runID int64) ([]schema.IssueCycleRecord, error) {
	args := m.Called(runID)
	records, _ := args.Get(0).([]schema.IssueCycleRecord)
	return records, args.Error(1)
}

// ListCohortSummaries implements the ResultStore interface.
func (m *MockResultStore) ListCohortSummaries(runID int64) ([]schema.CohortSummaryRecord, error) {
	args := m.Called(runID)
	records, _ := args.Get(0).([]schema.CohortSummaryRecord)
	return records, args.Error(1)
}

// GetStatus implements the ResultStore interface.
func (m *MockResultStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the ResultStore interface.
func (m *MockResultStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
