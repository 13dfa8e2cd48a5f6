package render

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotola/codex-context/internal/core/metrics"
	"github.com/sotola/codex-context/internal/core/model"
	"github.com/sotola/codex-context/internal/core/timeline"
)

func sampleView() *metrics.View {
	snaps := []model.Snapshot{
		{Timestamp: 1_700_000_000_000, Position: 1, WindowTokens: 1000, CumulativeTokens: 1000, WindowCapacity: 272000},
		{Timestamp: 1_700_000_060_000, Position: 4, WindowTokens: 5000, CumulativeTokens: 6000, WindowCapacity: 272000},
	}
	return &metrics.View{
		Snapshots: snaps,
		Turns: []model.EnrichedTurn{
			{
				Turn:              model.Turn{Timestamp: 1_700_000_000_500, Position: 2, Index: 1, Text: "build the parser"},
				ContextAtStart:    1000,
				CumulativeAtStart: 1000,
				CostTokens:        4000,
				DurationMs:        59_500,
			},
		},
		PositionTime:          timeline.BuildPositionTimeMap(snaps, 4),
		TotalRecords:          4,
		FinalWindowTokens:     5000,
		FinalCumulativeTokens: 6000,
		WindowCapacity:        272000,
		UsagePercent:          1.8,
	}
}

func TestRenderProducesCompletePage(t *testing.T) {
	var buf bytes.Buffer
	r := New(Options{})

	require.NoError(t, r.Render(sampleView(), "abc-123", &buf))
	html := buf.String()

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "abc-123")
	assert.Contains(t, html, "build the parser")
	assert.Contains(t, html, "272,000")
	assert.Contains(t, html, "chart.js")

	// All embedded datasets are present.
	for _, marker := range []string{
		"CONTEXT_TIME", "CONTEXT_POS", "CUMULATIVE_TIME", "CUMULATIVE_POS",
		"TURNS_CONTEXT", "TURNS_TOTAL", "POSITION_TIME",
	} {
		assert.Contains(t, html, marker)
	}
}

func TestRenderTimeAxisOption(t *testing.T) {
	var posBuf, timeBuf bytes.Buffer

	require.NoError(t, New(Options{}).Render(sampleView(), "s", &posBuf))
	require.NoError(t, New(Options{TimeAxis: true}).Render(sampleView(), "s", &timeBuf))

	assert.Contains(t, posBuf.String(), "let timeAxis = false")
	assert.Contains(t, timeBuf.String(), "let timeAxis = true")
}

func TestRenderEscapesScriptTerminators(t *testing.T) {
	v := sampleView()
	v.Turns[0].Text = "tricky </script><script>alert(1)</script>"

	var buf bytes.Buffer
	require.NoError(t, New(Options{}).Render(v, "s", &buf))

	// The message reaches the embedded JSON without an unescaped close tag.
	assert.NotContains(t, buf.String(), "tricky </script>")
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")

	require.NoError(t, New(Options{}).RenderFile(sampleView(), "abc", path))
	assert.FileExists(t, path)
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{272000, "272,000"},
		{1234567, "1,234,567"},
		{-5000, "-5,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, groupDigits(tt.input))
	}
}

func TestDateRange(t *testing.T) {
	t.Run("single day collapses", func(t *testing.T) {
		v := sampleView()
		got := dateRange(v)
		assert.NotContains(t, got, "→")
	})

	t.Run("empty view", func(t *testing.T) {
		assert.Equal(t, "", dateRange(&metrics.View{}))
	})

	t.Run("multi day", func(t *testing.T) {
		v := sampleView()
		v.Snapshots[1].Timestamp += 48 * 60 * 60 * 1000
		got := dateRange(v)
		assert.True(t, strings.Contains(got, "→"))
	})
}
