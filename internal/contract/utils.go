package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Score label constants.
const (
	ExcellentValue = "Excellent" // Excellent value
	HighValue      = "High"      // High value
	ModerateValue  = "Moderate"  // Moderate value
	LowValue       = "Low"       // Low value
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // ExcellentColor marks a strong principle.
	HighColor      = color.New(color.FgCyan)              // HighColor marks solid progress.
	ModerateColor  = color.New(color.FgYellow)            // ModerateColor marks room to grow.
	LowColor       = color.New(color.FgRed, color.Bold)   // LowColor marks a principle that needs practice.
)

// GetPlainLabel returns a plain text label for a percentage in [0, 100].
// Principle scores are scaled by 10 before calling this. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(percent float64) string {
	switch {
	case percent >= 80:
		return ExcellentValue
	case percent >= 60:
		return HighValue
	case percent >= 40:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(percent float64) string {
	text := GetPlainLabel(percent)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
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

// GetDBFilePath returns the path to the SQLite DB file for record storage.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".uli.db"
	}
	return filepath.Join(homeDir, ".uli.db")
}

// TruncateText shortens text to maxWidth runes with an ellipsis suffix and folds
// newlines into spaces so multi-line reflections fit in one table cell.
// Requires maxWidth > 3 to leave room for the ellipsis and at least one character.
func TruncateText(text string, maxWidth int) string {
	text = strings.Join(strings.Fields(text), " ")
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
