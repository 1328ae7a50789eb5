package outwriter

import (
	"os"

	"github.com/ossmetrics/pulse/internal/contract"
	"golang.org/x/term"
)

// GetMaxMetricColumnWidth calculates the width available for each metric value
// column in table output, based on terminal width and the number of metrics.
func GetMaxMetricColumnWidth(cfg *contract.Config, metricCount int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the quarter column plus borders and padding
	baseWidth := 28

	if metricCount < 1 {
		metricCount = 1
	}

	// Calculate available space per metric column
	available := (termWidth - baseWidth) / metricCount
	if available < 8 {
		// Minimum reasonable column width
		return 8
	}
	if available > 24 {
		// Maximum column width to keep rows compact
		return 24
	}
	return available
}

// truncateLabel shortens a column label to maxWidth, marking the cut with an
// ellipsis so long metric names stay readable in narrow terminals.
func truncateLabel(label string, maxWidth int) string {
	if len(label) <= maxWidth {
		return label
	}
	if maxWidth <= 3 {
		return label[:maxWidth]
	}
	return label[:maxWidth-3] + "..."
}
