package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/ossmetrics/pulse/schema"
)

// Color variables for console output.
var (
	RisingColor  = color.New(color.FgGreen, color.Bold) // sustained growth across quarters
	SteadyColor  = color.New(color.FgYellow)            // flat activity
	FallingColor = color.New(color.FgRed, color.Bold)   // declining activity
)

// GetPlainTrendLabel returns a plain text label for a trend direction.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainTrendLabel(trend schema.Trend) string {
	switch trend {
	case schema.RisingTrend:
		return "Rising"
	case schema.FallingTrend:
		return "Falling"
	default:
		return "Steady"
	}
}

// GetColorTrendLabel returns a colored trend label for console output (table).
// It uses GetPlainTrendLabel to determine the string, then applies the color.
func GetColorTrendLabel(trend schema.Trend) string {
	text := GetPlainTrendLabel(trend)
	switch trend {
	case schema.RisingTrend:
		return RisingColor.Sprint(text)
	case schema.FallingTrend:
		return FallingColor.Sprint(text)
	default:
		return SteadyColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It writes to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for series storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".pulse_series.db"
	}
	return filepath.Join(homeDir, ".pulse_series.db")
}

// projectNameFromPath derives a project name from a repository root path.
func projectNameFromPath(root string) string {
	name := filepath.Base(filepath.Clean(root))
	return strings.TrimSuffix(name, ".git")
}
