package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ossmetrics/pulse/core/quarter"
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/internal/iocache"
	"github.com/ossmetrics/pulse/schema"
)

func TestParseCommitLog(t *testing.T) {
	tests := []struct {
		name         string
		out          string
		commits      int
		contributors int
	}{
		{"empty output", "", 0, 0},
		{"single author", "alice|2024-01-05", 1, 1},
		{"repeat author counted once", "alice|2024-01-05\nbob|2024-01-06\nalice|2024-01-07", 3, 2},
		{"quoted pretty-format lines", "'alice|2024-01-05'\n'bob|2024-01-06'", 2, 2},
		{"blank lines skipped", "alice|2024-01-05\n\n\nbob|2024-01-06\n", 2, 2},
		{"line without separator ignored", "alice|2024-01-05\nnot a commit line", 1, 1},
		{"blank author still counts the commit", "|2024-01-05\nbob|2024-01-06", 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commits, contributors := parseCommitLog([]byte(tt.out))
			assert.Equal(t, tt.commits, commits)
			assert.Equal(t, tt.contributors, contributors)
		})
	}
}

func TestExecuteCollect_FreshSeries(t *testing.T) {
	store := &iocache.MockSeriesStore{}
	mgr := &iocache.MockSeriesManager{}
	mgr.On("GetSeriesStore").Return(store)
	store.On("Get", "demo", schema.AgilityDomain).Return(schema.SeriesRecord{}, contract.ErrNoSeries)

	firstCommit := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	client := &contract.MockGitClient{}
	client.On("GetFirstCommitTime", mock.Anything, "/repo").Return(firstCommit, nil)
	// Windows walk oldest first, so the first call is the first-commit quarter
	client.On("GetCommitLog", mock.Anything, "/repo", mock.Anything, mock.Anything).
		Return([]byte("alice|2024-01-05\nbob|2024-01-06\nalice|2024-01-07"), nil).Once()
	client.On("GetCommitLog", mock.Anything, "/repo", mock.Anything, mock.Anything).
		Return([]byte(""), nil)

	var saved schema.SeriesRecord
	store.On("Set", mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(0).(schema.SeriesRecord)
	}).Return(nil)

	cfg := &contract.Config{Project: "demo", RepoPath: "/repo", Domain: schema.AgilityDomain}
	require.NoError(t, ExecuteCollect(context.Background(), cfg, client, mgr))

	assert.Equal(t, "demo", saved.Project)
	assert.Equal(t, schema.AgilityDomain, saved.Domain)
	assert.Equal(t, 1, saved.Version)

	// One bucket per quarter between the first commit and now, one git
	// query per bucket
	wantQuarters := len(quarter.BuildIntervals(firstCommit, time.Now().UTC()))
	client.AssertNumberOfCalls(t, "GetCommitLog", wantQuarters)

	var doc map[string]map[string]float64
	require.NoError(t, json.Unmarshal(saved.Payload, &doc))
	require.Len(t, doc, wantQuarters)
	q1 := doc["1704067200"] // 2024-01-01T00:00:00Z
	require.NotNil(t, q1, "first-commit quarter should be present")
	assert.Equal(t, 3.0, q1[schema.MetricCommits])
	assert.Equal(t, 2.0, q1[schema.MetricContributors])
}

func TestExecuteCollect_SpreadsHistoryAcrossQuarters(t *testing.T) {
	store := &iocache.MockSeriesStore{}
	mgr := &iocache.MockSeriesManager{}
	mgr.On("GetSeriesStore").Return(store)
	store.On("Get", "demo", schema.AgilityDomain).Return(schema.SeriesRecord{}, contract.ErrNoSeries)

	// A repository whose first commit is two years old must yield one
	// window per calendar quarter, never a single window holding all of
	// history.
	firstCommit := time.Now().UTC().AddDate(-2, 0, 0)
	client := &contract.MockGitClient{}
	client.On("GetFirstCommitTime", mock.Anything, "/repo").Return(firstCommit, nil)

	var windows [][2]time.Time
	client.On("GetCommitLog", mock.Anything, "/repo", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			windows = append(windows, [2]time.Time{args.Get(2).(time.Time), args.Get(3).(time.Time)})
		}).
		Return([]byte("alice|commit"), nil)

	var saved schema.SeriesRecord
	store.On("Set", mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(0).(schema.SeriesRecord)
	}).Return(nil)

	cfg := &contract.Config{Project: "demo", RepoPath: "/repo", Domain: schema.AgilityDomain}
	require.NoError(t, ExecuteCollect(context.Background(), cfg, client, mgr))

	intervals := quarter.BuildIntervals(firstCommit, time.Now().UTC())
	require.Len(t, windows, len(intervals), "expected one git query per quarter")
	for i, w := range windows {
		assert.Equal(t, intervals[i].Start, w[0], "window %d start", i)
		if i+1 < len(windows) {
			assert.Equal(t, quarter.NextStart(w[0]), w[1],
				"window %d should close at the next quarter start", i)
		}
	}

	// Each quarter keeps its own count instead of absorbing all history
	var doc map[string]map[string]float64
	require.NoError(t, json.Unmarshal(saved.Payload, &doc))
	require.Len(t, doc, len(intervals))
	for key, metrics := range doc {
		assert.Equal(t, 1.0, metrics[schema.MetricCommits], "quarter %s", key)
	}
}

func TestExecuteCollect_ExistingSeriesSkipsSeed(t *testing.T) {
	payload := []byte(`{"1696118400": {"commits": 5}, "1704067200": {"commits": 2}}`)
	store := &iocache.MockSeriesStore{}
	mgr := &iocache.MockSeriesManager{}
	mgr.On("GetSeriesStore").Return(store)
	store.On("Get", "demo", schema.AgilityDomain).
		Return(schema.SeriesRecord{Project: "demo", Domain: schema.AgilityDomain, Payload: payload}, nil)
	store.On("Set", mock.Anything).Return(nil)

	client := &contract.MockGitClient{}
	client.On("GetCommitLog", mock.Anything, "/repo", mock.Anything, mock.Anything).
		Return([]byte(""), nil)

	cfg := &contract.Config{Project: "demo", RepoPath: "/repo", Domain: schema.AgilityDomain}
	require.NoError(t, ExecuteCollect(context.Background(), cfg, client, mgr))

	client.AssertNotCalled(t, "GetFirstCommitTime", mock.Anything, mock.Anything)
	// Stored buckets start at 2023Q4; the walk extends through the current
	// quarter, one window each
	wantWindows := len(quarter.BuildIntervals(time.Unix(1696118400, 0).UTC(), time.Now().UTC()))
	client.AssertNumberOfCalls(t, "GetCommitLog", wantWindows)
}

func TestExecuteCollect_GitFailure(t *testing.T) {
	store := &iocache.MockSeriesStore{}
	mgr := &iocache.MockSeriesManager{}
	mgr.On("GetSeriesStore").Return(store)
	store.On("Get", "demo", schema.AgilityDomain).Return(schema.SeriesRecord{}, contract.ErrNoSeries)

	gitErr := errors.New("fatal: not a git repository")
	client := &contract.MockGitClient{}
	client.On("GetFirstCommitTime", mock.Anything, "/repo").
		Return(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), nil)
	client.On("GetCommitLog", mock.Anything, "/repo", mock.Anything, mock.Anything).
		Return([]byte(nil), gitErr)

	cfg := &contract.Config{Project: "demo", RepoPath: "/repo", Domain: schema.AgilityDomain}
	err := ExecuteCollect(context.Background(), cfg, client, mgr)
	require.Error(t, err)
	assert.ErrorIs(t, err, gitErr)
	store.AssertNotCalled(t, "Set", mock.Anything)
}

func TestExecuteCollect_FirstCommitFailure(t *testing.T) {
	store := &iocache.MockSeriesStore{}
	mgr := &iocache.MockSeriesManager{}
	mgr.On("GetSeriesStore").Return(store)
	store.On("Get", "demo", schema.AgilityDomain).Return(schema.SeriesRecord{}, contract.ErrNoSeries)

	client := &contract.MockGitClient{}
	client.On("GetFirstCommitTime", mock.Anything, "/repo").
		Return(time.Time{}, errors.New("no commits yet"))

	cfg := &contract.Config{Project: "demo", RepoPath: "/repo", Domain: schema.AgilityDomain}
	err := ExecuteCollect(context.Background(), cfg, client, mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot determine first commit")
}
