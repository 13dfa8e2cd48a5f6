// Package timeline maps log positions to estimated wall-clock instants so a
// position-indexed axis can carry time-like tick labels.
package timeline

import (
	"github.com/sotola/codex-context/internal/core/model"
)

// PositionTimeMap maps a 1-based log position to an epoch-millisecond
// instant: exact where a snapshot exists at that position, linearly
// interpolated between the outermost snapshot positions otherwise.
// Positions outside the snapshot-covered range stay unmapped.
type PositionTimeMap map[int]int64

// BuildPositionTimeMap covers [1, totalRecords]. Interpolation uses position
// as the independent variable, assuming records are evenly spaced in time
// between instrumented points. No extrapolation past the covered range.
func BuildPositionTimeMap(snaps []model.Snapshot, totalRecords int) PositionTimeMap {
	m := make(PositionTimeMap, len(snaps))
	if len(snaps) == 0 {
		return m
	}

	for _, s := range snaps {
		m[s.Position] = s.Timestamp
	}

	// Snapshot positions are increasing by construction.
	minPos, maxPos := snaps[0].Position, snaps[len(snaps)-1].Position
	if minPos == maxPos {
		return m
	}
	minTs, maxTs := snaps[0].Timestamp, snaps[len(snaps)-1].Timestamp

	for p := minPos + 1; p < maxPos && p <= totalRecords; p++ {
		if _, ok := m[p]; ok {
			continue
		}
		ratio := float64(p-minPos) / float64(maxPos-minPos)
		m[p] = minTs + int64(ratio*float64(maxTs-minTs))
	}

	return m
}
