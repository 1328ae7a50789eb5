// Package core has orchestration logic for collecting, importing and
// reporting quarter-bucketed project activity.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ossmetrics/pulse/core/quarter"
	"github.com/ossmetrics/pulse/internal/contract"
	"github.com/ossmetrics/pulse/internal/outwriter"
	"github.com/ossmetrics/pulse/schema"
)

// ExecutorFunc defines the function signature for executing pulse commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteCollect walks the quarter windows a repository still needs, counts
// commit activity per quarter with the Git client, and persists the updated
// series. It serves as the main entry point for the 'collect' command.
func ExecuteCollect(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.SeriesManager) error {
	start := time.Now()
	st, err := loadStore(mgr, cfg.Project, schema.AgilityDomain)
	if err != nil {
		return err
	}

	// A fresh series has no windows yet. Seed it with the quarter of the
	// repository's first commit so the interval walk covers full history.
	if st.Len() == 0 {
		first, err := client.GetFirstCommitTime(ctx, cfg.RepoPath)
		if err != nil {
			return fmt.Errorf("cannot determine first commit: %w", err)
		}
		st.FindOrCreate(first)
	}

	// Extend the series through the current quarter so each window below
	// spans exactly one quarter. Otherwise the sentinel window would lump
	// everything since the newest bucket into a single bucket.
	st.ExtendToNow()

	var windows int
	var collectErr error
	st.WithQuarterIntervals(func(from, to time.Time) {
		if collectErr != nil {
			return
		}
		out, err := client.GetCommitLog(ctx, cfg.RepoPath, from, to)
		if err != nil {
			collectErr = err
			return
		}
		commits, contributors := parseCommitLog(out)
		bucket, ok := st.FindOrCreate(from).(*schema.AgilityQuarter)
		if !ok {
			collectErr = errors.New("agility series holds an unexpected container type")
			return
		}
		bucket.Commits = float64(commits)
		bucket.Contributors = float64(contributors)
		windows++
	})
	if collectErr != nil {
		return collectErr
	}

	st.Fulfill()
	if err := saveStore(mgr, cfg.Project, schema.AgilityDomain, st); err != nil {
		return err
	}

	fmt.Printf("Collected %d windows for %s (%s -> %s) in %s\n",
		windows, cfg.Project,
		st.StartDate().Format(contract.DateOnlyFormat),
		st.EndDate().Format(contract.DateOnlyFormat),
		time.Since(start).Round(time.Millisecond))
	return nil
}

// GetSeriesResults loads the stored quarter series for a project and domain
// and projects it into the render model. Exposed for the MCP server.
func GetSeriesResults(cfg *contract.Config, mgr contract.SeriesManager) (schema.SeriesResult, time.Duration, error) {
	start := time.Now()
	st, err := loadStore(mgr, cfg.Project, cfg.Domain)
	if err != nil {
		return schema.SeriesResult{}, 0, err
	}
	if st.Len() == 0 {
		return schema.SeriesResult{}, 0, fmt.Errorf("no %s series stored for project %q. run 'pulse collect' or 'pulse import' first", cfg.Domain, cfg.Project)
	}
	return buildSeriesResult(cfg, st), time.Since(start), nil
}

// GetStatsResults loads the stored series and aggregates the trailing year.
// Exposed for the MCP server.
func GetStatsResults(cfg *contract.Config, mgr contract.SeriesManager) (schema.StatsResult, time.Duration, error) {
	start := time.Now()
	st, err := loadStore(mgr, cfg.Project, cfg.Domain)
	if err != nil {
		return schema.StatsResult{}, 0, err
	}
	if st.Len() == 0 {
		return schema.StatsResult{}, 0, fmt.Errorf("no %s series stored for project %q. run 'pulse collect' or 'pulse import' first", cfg.Domain, cfg.Project)
	}
	if st.Len() < 4+cfg.Offset {
		contract.LogWarn("trailing year window is short", fmt.Errorf("%d quarters stored, %d needed", st.Len(), 4+cfg.Offset))
	}
	return buildStatsResult(cfg, st), time.Since(start), nil
}

// ExecutePreview renders the stored quarter series for a project and domain.
func ExecutePreview(_ context.Context, cfg *contract.Config, mgr contract.SeriesManager) error {
	result, duration, err := GetSeriesResults(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSeries(result, cfg, duration)
}

// ExecuteStats renders trailing-year aggregates for a project and domain.
func ExecuteStats(_ context.Context, cfg *contract.Config, mgr contract.SeriesManager) error {
	result, duration, err := GetStatsResults(cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteStats(result, cfg, duration)
}

// ExecuteIntervals prints the calendar-quarter boundary pairs covering the
// configured date range. Useful for inspecting which windows a collector
// would query.
func ExecuteIntervals(_ context.Context, cfg *contract.Config) error {
	intervals := quarter.BuildIntervals(cfg.From, cfg.To)

	result := schema.IntervalsResult{From: cfg.From.UTC(), To: cfg.To.UTC()}
	for _, iv := range intervals {
		result.Intervals = append(result.Intervals, schema.IntervalPoint{Start: iv.Start, End: iv.End})
	}
	return outwriter.NewOutWriter().WriteIntervals(result, cfg)
}
