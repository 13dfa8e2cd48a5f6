package util

import (
	"fmt"
	"strings"
	"time"
)

// Record timestamps are written without a zone (an optional trailing Z is
// tolerated and ignored) and interpreted in local time.
var recordLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

// ParseRecordTime parses a transcript record timestamp into a
// millisecond-resolution epoch instant.
func ParseRecordTime(ts string) (int64, error) {
	s := strings.TrimSuffix(strings.TrimSpace(ts), "Z")
	for _, layout := range recordLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized record timestamp %q", ts)
}

// FormatRecordTime renders a millisecond instant back into the transcript
// timestamp convention. Used to label interpolated axis positions.
func FormatRecordTime(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02T15:04:05.000") + "Z"
}

var flexibleLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseFlexibleTime parses user-supplied datetimes for --since and --day.
// Underscores are accepted as date separators.
func ParseFlexibleTime(s string) (time.Time, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
	for _, layout := range flexibleLayouts {
		if t, err := time.ParseInLocation(layout, normalized, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q: expected YYYY-MM-DD, YYYY-MM-DD HH:MM, or YYYY-MM-DD HH:MM:SS", s)
}
