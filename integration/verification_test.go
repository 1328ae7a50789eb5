//go:build basic

// Package integration contains integration tests for pulse.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Or use: make test-integration
package integration

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ossmetrics/pulse/core/quarter"
)

// runPulseOutput runs the shared binary with extra environment and captures stdout.
func runPulseOutput(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getPulseBinary(), args...)
	cmd.Dir = ".."
	cmd.Env = append(cmd.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		t.Logf("Command failed: %s\nStderr: %s", cmd.String(), stderr.String())
	}
	return stdout.String(), err
}

// TestPulseVersion checks that the version subcommand runs without config.
func TestPulseVersion(t *testing.T) {
	out, err := runPulseOutput(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version")
}

// TestPulseIntervals verifies quarter boundary computation end to end.
func TestPulseIntervals(t *testing.T) {
	out, err := runPulseOutput(t, nil, "intervals",
		"--from", "2013-09-01", "--to", "2015-09-01", "--output", "json")
	require.NoError(t, err)

	var result struct {
		Intervals []struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		} `json:"intervals"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Intervals, 9)
	assert.Equal(t, time.Date(2013, time.July, 1, 0, 0, 0, 0, time.UTC), result.Intervals[0].Start)
	assert.Equal(t, time.Date(2015, time.September, 30, 23, 59, 59, 0, time.UTC), result.Intervals[8].End)
}

// TestPulseCollectVerification collects this repository into a throwaway SQLite
// store and cross-checks the total commit count against git log.
func TestPulseCollectVerification(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dbPath := filepath.Join(t.TempDir(), "series.db")
	env := []string{
		"PULSE_STORE_BACKEND=sqlite",
		"PULSE_STORE_DB_CONNECT=" + dbPath,
	}

	_, err := runPulseOutput(t, env, "collect", ".", "--project", "pulse-itest")
	require.NoError(t, err)

	out, err := runPulseOutput(t, env, "preview", "--project", "pulse-itest", "--output", "json")
	require.NoError(t, err)

	var result struct {
		Points []struct {
			Start   time.Time          `json:"start"`
			Metrics map[string]float64 `json:"metrics"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotEmpty(t, result.Points)

	// History must be spread across quarters: one point per calendar
	// quarter from the first commit through now, ending at the current
	// quarter.
	now := time.Now().UTC()
	first := result.Points[0].Start
	require.Len(t, result.Points, len(quarter.BuildIntervals(first, now)),
		"expected one point per quarter between first commit and now")
	assert.Equal(t, quarter.StartOf(now), result.Points[len(result.Points)-1].Start.UTC())

	var collected float64
	for _, p := range result.Points {
		collected += p.Metrics["commits"]
	}

	gitOutput, err := exec.Command("git", "-C", "..", "log", "--oneline").Output()
	require.NoError(t, err)
	gitCommits := len(strings.Split(strings.TrimSpace(string(gitOutput)), "\n"))

	assert.Equal(t, float64(gitCommits), collected,
		"collected commit total should match git log")

	// Stats over the freshly collected series should also succeed
	_, err = runPulseOutput(t, env, "stats", "--project", "pulse-itest", "--offset", "0")
	require.NoError(t, err)
}

// TestPulseStoreStatus checks the status subcommand against an empty store.
func TestPulseStoreStatus(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "series.db")
	env := []string{
		"PULSE_STORE_BACKEND=sqlite",
		"PULSE_STORE_DB_CONNECT=" + dbPath,
	}

	out, err := runPulseOutput(t, env, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Store Backend: sqlite")
	assert.Contains(t, out, "Total Series: 0")
}
