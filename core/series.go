package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ossmetrics/pulse/core/quarter"
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/schema"
)

// seriesVersion tags persisted payloads so future layout changes can be
// detected on load.
const seriesVersion = 1

// trendTolerance is the relative change below which a metric is considered
// steady between consecutive trailing-year windows.
const trendTolerance = 0.1

// containerFactory returns the bucket constructor for a metric domain.
func containerFactory(domain schema.Domain) func() quarter.Container {
	if domain == schema.CommunityDomain {
		return func() quarter.Container { return schema.NewCommunityQuarter() }
	}
	return func() quarter.Container { return schema.NewAgilityQuarter() }
}

// loadStore builds a quarter store for the project and domain, hydrated from
// the series store when a persisted payload exists.
func loadStore(mgr contract.SeriesManager, project string, domain schema.Domain) (*quarter.Store, error) {
	st := quarter.NewStore(containerFactory(domain))

	store := mgr.GetSeriesStore()
	if store == nil {
		return st, nil
	}
	record, err := store.Get(project, domain)
	if errors.Is(err, contract.ErrNoSeries) {
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s series for %q: %w", domain, project, err)
	}
	if err := json.Unmarshal(record.Payload, st); err != nil {
		return nil, fmt.Errorf("stored %s series for %q is corrupt: %w", domain, project, err)
	}
	st.Fulfill()
	return st, nil
}

// saveStore persists the serialized store, replacing any previous payload.
func saveStore(mgr contract.SeriesManager, project string, domain schema.Domain, st *quarter.Store) error {
	store := mgr.GetSeriesStore()
	if store == nil {
		return nil
	}
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to serialize %s series for %q: %w", domain, project, err)
	}
	record := schema.SeriesRecord{
		Project:   project,
		Domain:    domain,
		Payload:   payload,
		Version:   seriesVersion,
		UpdatedAt: time.Now().UTC(),
	}
	if err := store.Set(record); err != nil {
		return fmt.Errorf("failed to persist %s series for %q: %w", domain, project, err)
	}
	return nil
}

// buildSeriesResult projects the store into the render model, honoring the
// configured direction.
func buildSeriesResult(cfg *contract.Config, st *quarter.Store) schema.SeriesResult {
	result := schema.SeriesResult{
		Project: cfg.Project,
		Domain:  cfg.Domain,
		Names:   containerFactory(cfg.Domain)().MetricNames(),
	}

	appendPoint := func(start time.Time, c quarter.Container) {
		result.Points = append(result.Points, schema.SeriesPoint{
			Start:   start,
			End:     quarter.EndOf(start),
			Metrics: c.Snapshot(),
		})
	}
	if cfg.Reverse {
		st.ReverseEachSorted(appendPoint)
	} else {
		st.EachSorted(appendPoint)
	}
	return result
}

// buildStatsResult aggregates the trailing year and labels each metric with a
// direction by comparing against the year before it.
func buildStatsResult(cfg *contract.Config, st *quarter.Store) schema.StatsResult {
	values := st.LastYearStats(cfg.Offset)
	previous := st.LastYearStats(cfg.Offset + 4)

	quarters := min(st.Len(), 4+cfg.Offset)
	result := schema.StatsResult{
		Project:  cfg.Project,
		Domain:   cfg.Domain,
		Offset:   cfg.Offset,
		Quarters: quarters,
		Names:    containerFactory(cfg.Domain)().MetricNames(),
		Values:   values,
		Trends:   make(map[string]schema.Trend, len(values)),
	}
	for name, current := range values {
		result.Trends[name] = trendFor(previous[name], current)
	}
	return result
}

// trendFor classifies the change between two trailing-year values.
func trendFor(previous, current float64) schema.Trend {
	switch {
	case previous == 0 && current == 0:
		return schema.SteadyTrend
	case previous == 0:
		return schema.RisingTrend
	case current >= previous*(1+trendTolerance):
		return schema.RisingTrend
	case current <= previous*(1-trendTolerance):
		return schema.FallingTrend
	default:
		return schema.SteadyTrend
	}
}
