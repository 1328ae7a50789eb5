package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/internal/iocache"
	"github.com/ossmetrics/pulse/schema"
)

func mockedStoreWithPayload(t *testing.T, payload string) *iocache.MockSeriesManager {
	t.Helper()
	store := &iocache.MockSeriesStore{}
	mgr := &iocache.MockSeriesManager{}
	mgr.On("GetSeriesStore").Return(store)
	if payload == "" {
		store.On("Get", "demo", schema.AgilityDomain).Return(schema.SeriesRecord{}, contract.ErrNoSeries)
	} else {
		store.On("Get", "demo", schema.AgilityDomain).
			Return(schema.SeriesRecord{Project: "demo", Domain: schema.AgilityDomain, Payload: []byte(payload)}, nil)
	}
	return mgr
}

func TestGetSeriesResults(t *testing.T) {
	mgr := mockedStoreWithPayload(t, `{"1704067200": {"commits": 9}, "1711929600": {"commits": 4}}`)
	cfg := &contract.Config{Project: "demo", Domain: schema.AgilityDomain}

	result, duration, err := GetSeriesResults(cfg, mgr)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, duration, time.Duration(0))
	assert.Equal(t, "demo", result.Project)
	require.Len(t, result.Points, 2)
	assert.Equal(t, 9.0, result.Points[0].Metrics[schema.MetricCommits])
}

func TestGetSeriesResults_EmptyStore(t *testing.T) {
	mgr := mockedStoreWithPayload(t, "")
	cfg := &contract.Config{Project: "demo", Domain: schema.AgilityDomain}

	_, _, err := GetSeriesResults(cfg, mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no agility series stored for project "demo"`)
}

func TestGetStatsResults(t *testing.T) {
	mgr := mockedStoreWithPayload(t, `{
		"1672531200": {"commits": 1},
		"1680307200": {"commits": 2},
		"1688169600": {"commits": 3},
		"1696118400": {"commits": 4},
		"1704067200": {"commits": 5}
	}`)
	cfg := &contract.Config{Project: "demo", Domain: schema.AgilityDomain, Offset: 1}

	result, _, err := GetStatsResults(cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Offset)
	assert.Equal(t, 5, result.Quarters)
	assert.Equal(t, 10.0, result.Values[schema.MetricCommits], "offset 1 drops the newest quarter")
}

func TestGetStatsResults_EmptyStore(t *testing.T) {
	mgr := mockedStoreWithPayload(t, "")
	cfg := &contract.Config{Project: "demo", Domain: schema.AgilityDomain, Offset: 1}

	_, _, err := GetStatsResults(cfg, mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run 'pulse collect' or 'pulse import' first")
}

func TestExecuteIntervals_JSONOutput(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "intervals.json")
	cfg := &contract.Config{
		From:       time.Date(2013, time.September, 1, 0, 0, 0, 0, time.UTC),
		To:         time.Date(2015, time.September, 1, 0, 0, 0, 0, time.UTC),
		Output:     schema.JSONOut,
		OutputFile: outputFile,
	}

	require.NoError(t, ExecuteIntervals(context.Background(), cfg))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	var result schema.IntervalsResult
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result.Intervals, 9)
	assert.Equal(t, time.Date(2013, time.July, 1, 0, 0, 0, 0, time.UTC), result.Intervals[0].Start)
	assert.Equal(t, time.Date(2015, time.September, 30, 23, 59, 59, 0, time.UTC), result.Intervals[8].End)
}
