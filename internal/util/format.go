package util

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Helper functions
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// FormatAge returns a compact human-readable age string (e.g. "2h 3m").
func FormatAge(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}

	minutes, seconds := totalSeconds/60, totalSeconds%60
	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	hours, minutes := minutes/60, minutes%60
	if hours < 24 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}

	days, hours := hours/24, hours%24
	return fmt.Sprintf("%dd %dh", days, hours)
}

// FormatTurnDuration renders a turn's wall-clock cost as "(Xs)", "(Xm Ys)"
// or "(Xh Ym)". Two levels max, no subseconds.
func FormatTurnDuration(ms int64) string {
	seconds := int(ms / 1000)

	if seconds < 60 {
		return fmt.Sprintf("(%ds)", seconds)
	}

	minutes, secs := seconds/60, seconds%60
	if minutes < 60 {
		return fmt.Sprintf("(%dm %ds)", minutes, secs)
	}

	hours, mins := minutes/60, minutes%60
	return fmt.Sprintf("(%dh %dm)", hours, mins)
}

// TruncateMiddle shortens long messages, keeping both ends with an
// "[omitted]" marker in between.
func TruncateMiddle(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}

	// 25 chars reserved for the omission marker and its padding
	half := (maxLength - 25) / 2
	start := strings.TrimRight(s[:half], " \t\n")
	end := strings.TrimLeft(s[len(s)-half:], " \t\n")

	return start + "\n\n... [omitted]\n\n" + end
}

// TruncateToWidth shortens s to the given display width, ellipsis-suffixed.
func TruncateToWidth(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, width, "…")
}

// TerminalWidth reports the current terminal width, defaulting to 100 when
// stdout is not a terminal.
func TerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}
