package outwriter

import (
	"os"

	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableTextWidth calculates the maximum width for free-text cells
// (issues, actions) in table output based on terminal width.
func GetMaxTableTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Priority + Category with borders/padding
	baseWidth := 35

	// Impact column shares the remaining space
	if cfg.Detail {
		return clampWidth((termWidth - baseWidth - 10) / 3)
	}
	return clampWidth((termWidth - baseWidth - 7) / 2)
}

func clampWidth(available int) int {
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
