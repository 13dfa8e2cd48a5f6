package util

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{name: "small number", input: 999, expected: "999"},
		{name: "thousands", input: 1500, expected: "1.5K"},
		{name: "exact thousand", input: 1000, expected: "1.0K"},
		{name: "millions", input: 2500000, expected: "2.5M"},
		{name: "zero", input: 0, expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatNumber(tt.input))
		})
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{name: "seconds only", input: 45 * time.Second, expected: "45s"},
		{name: "minutes and seconds", input: 2*time.Minute + 3*time.Second, expected: "2m 3s"},
		{name: "hours and minutes", input: 2*time.Hour + 3*time.Minute, expected: "2h 3m"},
		{name: "days and hours", input: 26 * time.Hour, expected: "1d 2h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAge(tt.input))
		})
	}
}

func TestFormatTurnDuration(t *testing.T) {
	tests := []struct {
		name     string
		ms       int64
		expected string
	}{
		{name: "zero", ms: 0, expected: "(0s)"},
		{name: "subsecond truncates", ms: 900, expected: "(0s)"},
		{name: "seconds", ms: 42000, expected: "(42s)"},
		{name: "minutes", ms: 125000, expected: "(2m 5s)"},
		{name: "hours", ms: 3900000, expected: "(1h 5m)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTurnDuration(tt.ms))
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	t.Run("short string unchanged", func(t *testing.T) {
		assert.Equal(t, "hello", TruncateMiddle("hello", 100))
	})

	t.Run("long string keeps both ends", func(t *testing.T) {
		long := strings.Repeat("a", 200) + "MIDDLE" + strings.Repeat("b", 200)
		got := TruncateMiddle(long, 100)

		assert.Contains(t, got, "[omitted]")
		assert.True(t, strings.HasPrefix(got, "aaa"))
		assert.True(t, strings.HasSuffix(got, "bbb"))
		assert.NotContains(t, got, "MIDDLE")
	})
}

func TestTruncateToWidth(t *testing.T) {
	t.Run("flattens newlines", func(t *testing.T) {
		got := TruncateToWidth("a\nb", 10)
		assert.Equal(t, "a b", got)
	})

	t.Run("truncates with ellipsis", func(t *testing.T) {
		got := TruncateToWidth(strings.Repeat("x", 50), 10)
		assert.True(t, strings.HasSuffix(got, "…"))
	})
}
