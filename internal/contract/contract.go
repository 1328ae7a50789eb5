// Package contract provides interfaces and shared utilities for the pulse
// CLI's internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/ossmetrics/pulse/schema"
)

// ErrNoSeries is returned by SeriesStore.Get when no series has been
// persisted yet for the requested project and domain.
var ErrNoSeries = errors.New("no stored series")

// GitClient defines the Git operations needed by the activity collector.
// This allows the collection logic to be tested without a real git executable.
type GitClient interface {
	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetFirstCommitTime returns the author date of the repository's first commit.
	GetFirstCommitTime(ctx context.Context, repoPath string) (time.Time, error)

	// GetCommitLog returns one "author|date" line per commit in [startTime, endTime].
	GetCommitLog(ctx context.Context, repoPath string, startTime, endTime time.Time) ([]byte, error)
}

// SeriesManager defines the interface for reaching the series store.
// This allows the persistence layer to be mocked for testing.
type SeriesManager interface {
	GetSeriesStore() SeriesStore
}

// SeriesStore defines the interface for persisted quarter series.
type SeriesStore interface {
	// Get loads the stored series for a project and domain, or ErrNoSeries.
	Get(project string, domain schema.Domain) (schema.SeriesRecord, error)

	// Set inserts or replaces the stored series for a project and domain.
	Set(record schema.SeriesRecord) error

	// Projects returns the distinct project names with at least one series.
	Projects() ([]string, error)

	// All returns every stored series record.
	All() ([]schema.SeriesRecord, error)

	// GetStatus returns status information about the series store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
