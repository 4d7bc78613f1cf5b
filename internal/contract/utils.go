package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold) // CriticalColor marks scores that need immediate work.
	PoorColor     = color.New(color.FgMagenta)         // PoorColor marks clearly degraded data.
	FairColor     = color.New(color.FgYellow)          // FairColor is standard caution, not bold.
	HealthyColor  = color.New(color.FgGreen)           // HealthyColor marks data in good shape.
)

// GetColorLabel returns a colored health label for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := schema.GetPlainLabel(score)

	switch text {
	case schema.CriticalValue:
		return CriticalColor.Sprint(text)
	case schema.PoorValue:
		return PoorColor.Sprint(text)
	case schema.FairValue:
		return FairColor.Sprint(text)
	default: // "Healthy"
		return HealthyColor.Sprint(text)
	}
}

// PriorityColor returns the color used to print a recommendation priority.
func PriorityColor(p schema.Priority) *color.Color {
	switch p {
	case schema.PriorityHigh:
		return CriticalColor
	case schema.PriorityMedium:
		return FairColor
	default:
		return HealthyColor
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
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

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
