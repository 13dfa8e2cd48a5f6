// Package metrics assembles the immutable per-session output consumed by
// rendering: ordered snapshots, enriched turns, the position-time map, and
// session-level summary figures.
package metrics

import (
	"errors"

	"github.com/sotola/codex-context/internal/core/correlate"
	"github.com/sotola/codex-context/internal/core/ingest"
	"github.com/sotola/codex-context/internal/core/model"
	"github.com/sotola/codex-context/internal/core/timeline"
)

// ErrNoUsageData means the session has turns but zero usage snapshots;
// there is nothing to correlate and the session should be skipped.
var ErrNoUsageData = errors.New("session has no token usage data, nothing to correlate")

// View is the read-only bundle handed to the renderer.
type View struct {
	Snapshots    []model.Snapshot
	Turns        []model.EnrichedTurn
	PositionTime timeline.PositionTimeMap
	TotalRecords int

	FinalWindowTokens     int
	FinalCumulativeTokens int
	WindowCapacity        int
	UsagePercent          float64
}

// Build runs the correlation and interpolation stages over classified
// session data. Out-of-order input surfaces as *correlate.UnorderedLogError.
func Build(data *ingest.SessionData) (*View, error) {
	if len(data.Snapshots) == 0 {
		return nil, ErrNoUsageData
	}

	if err := correlate.CheckOrdered(data.Snapshots, data.Turns); err != nil {
		return nil, err
	}

	turns, err := correlate.EnrichTurns(data.Snapshots, data.Turns)
	if err != nil {
		return nil, err
	}

	last := data.Snapshots[len(data.Snapshots)-1]
	view := &View{
		Snapshots:             data.Snapshots,
		Turns:                 turns,
		PositionTime:          timeline.BuildPositionTimeMap(data.Snapshots, data.TotalRecords),
		TotalRecords:          data.TotalRecords,
		FinalWindowTokens:     last.WindowTokens,
		FinalCumulativeTokens: last.CumulativeTokens,
		WindowCapacity:        last.WindowCapacity,
	}
	if view.WindowCapacity > 0 {
		view.UsagePercent = float64(view.FinalWindowTokens) / float64(view.WindowCapacity) * 100
	}

	return view, nil
}
