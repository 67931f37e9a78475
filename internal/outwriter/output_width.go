// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/huangsam/polarize/internal/contract"
	"golang.org/x/term"
)

// getMaxTableLabelWidth calculates the maximum width for labels in table output
// based on terminal width and the number of numeric columns alongside them.
func getMaxTableLabelWidth(cfg *contract.Config, numericColumns int) int {
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

	// Each numeric column needs room for the value plus borders and padding
	baseWidth := 10 + numericColumns*14

	// Calculate available space for the label column
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable label width
		return 15
	}
	if available > 70 {
		// Maximum label width to prevent overly long labels
		return 70
	}
	return available
}
