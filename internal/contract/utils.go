package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Cycle severity label constants.
const (
	CriticalValue = "Critical" // Critical value
	HighValue     = "High"     // High value
	ModerateValue = "Moderate" // Moderate value
	LowValue      = "Low"      // Low value
	OpenValue     = "Open"     // Phase still in progress
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
	OpenColor     = color.New(color.FgWhite)               // openColor represents in-progress phases.
)

// GetPlainLabel returns a plain text label indicating how far a cycle time
// sits past the configured threshold. This is the core logic used for CSV,
// JSON, and table printing.
func GetPlainLabel(weeks, threshold float64) string {
	switch {
	case weeks >= 2*threshold:
		return CriticalValue
	case weeks >= threshold:
		return HighValue
	case weeks >= threshold/2:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, then applies the color.
func GetColorLabel(weeks, threshold float64) string {
	text := GetPlainLabel(weeks, threshold)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateText shortens s to at most maxWidth runes, marking the cut with a
// leading ellipsis so the distinctive tail of issue summaries stays visible.
func TruncateText(s string, maxWidth int) string {
	rr := []rune(s)
	if len(rr) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return string(rr[len(rr)-maxWidth:])
	}
	return "..." + string(rr[len(rr)-(maxWidth-3):])
}

// ParseBoolString parses a yes/no style flag value.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "on":
		return true, nil
	case "no", "n", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes/no, got %q", s)
	}
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

// GetStoreDBFilePath returns the path to the SQLite DB file for result storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".flowspan_results.db"
	}
	return filepath.Join(homeDir, ".flowspan_results.db")
}
