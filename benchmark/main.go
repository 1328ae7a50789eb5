// Package main provides a performance benchmarking tool for the Pulse CLI.
// It measures collection and reporting times across repositories of different
// sizes, running each test multiple times, treating the first successful run
// as cold and averaging the rest as warm, generating CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - pulse binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: csv-parser, fd, git, kubernetes
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Repository  string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase    string
	Timeout     time.Duration
	NoStoreRuns int
	StoreRuns   int
	TestRepos   []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	repoBase := os.Args[1]

	config := BenchmarkConfig{
		RepoBase:    repoBase,
		Timeout:     5 * time.Minute,
		NoStoreRuns: 3,
		StoreRuns:   4,
		TestRepos:   []string{"csv-parser", "fd", "git", "kubernetes"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Start from an empty series store
	fmt.Printf("Clearing store...\n")
	clearCmd := exec.Command("pulse", "store", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear store: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Store cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that pulse binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if pulse is available
	if _, err := exec.LookPath("pulse"); err != nil {
		return fmt.Errorf("pulse binary not found in PATH")
	}

	// Check if repositories exist
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, no-store: %d runs, store: %d runs\n",
		len(config.TestRepos), config.Timeout, config.NoStoreRuns, config.StoreRuns)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)

		repoPath := filepath.Join(config.RepoBase, repo)

		// Full-history collection is the expensive path
		results = append(results, runBenchmarkSuite(config, repo, repoPath, "collect", "quarter collection", "."))

		// Reporting runs read the persisted series only
		results = append(results, runBenchmarkSuite(config, repo, repoPath, "preview", "series preview", ""))
		results = append(results, runBenchmarkSuite(config, repo, repoPath, "stats", "trailing-year stats", "--offset 0"))
	}

	return results
}

// runBenchmarkSuite runs both no-store and store benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, repo)

	// Helper to run a benchmark phase
	runPhase := func(storeBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, repo, repoPath, command, extraArgs, storeBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-store runs. Preview and stats need a persisted series, so
	// only collect runs without a backend.
	noStoreAvg := "N/A"
	if command == "collect" {
		_, noStoreAvg = runPhase("none", config.NoStoreRuns, "No-store")
	}

	// Phase 2: Store runs
	coldTime, warmAvg := runPhase("sqlite", config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Repository:  repo,
		Command:     command,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a pulse command multiple times with the specified
// store backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, repo, repoPath, command, extraArgs, storeBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, "--store-backend", storeBackend, "--project", repo}
	if extraArgs != "" {
		args = append(args, strings.Fields(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("pulse", args...)
		cmd.Dir = repoPath

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	if command == "collect" {
		return strings.Contains(outputStr, "Collected")
	}
	return strings.Contains(outputStr, "completed in")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/pulse_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"repo", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "collect", "Quarter Collection:")
	printCommandSummary(results, "preview", "Series Preview:")
	printCommandSummary(results, "stats", "Trailing-Year Stats:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-store: %s, Cold: %s, Warm: %s\n", result.Repository, result.NoStoreTime, result.ColdTime, result.WarmTime)
		}
	}
}
