package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	callArgs := []any{ctx, repoPath}
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	ret := m.Called(callArgs...)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// GetFirstCommitTime implements the GitClient interface.
func (m *MockGitClient) GetFirstCommitTime(ctx context.Context, repoPath string) (time.Time, error) {
	ret := m.Called(ctx, repoPath)
	t, _ := ret.Get(0).(time.Time)
	return t, ret.Error(1)
}

// GetCommitLog implements the GitClient interface.
func (m *MockGitClient) GetCommitLog(ctx context.Context, repoPath string, startTime, endTime time.Time) ([]byte, error) {
	ret := m.Called(ctx, repoPath, startTime, endTime)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}
