package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotola/codex-context/internal/core/model"
)

func snap(ts int64, pos int) model.Snapshot {
	return model.Snapshot{Timestamp: ts, Position: pos}
}

func TestBuildPositionTimeMapInterpolates(t *testing.T) {
	snaps := []model.Snapshot{
		snap(0, 1),
		snap(900_000, 10),
	}

	m := BuildPositionTimeMap(snaps, 12)

	// Exact at snapshot positions.
	assert.Equal(t, int64(0), m[1])
	assert.Equal(t, int64(900_000), m[10])

	// Position 5 sits 4/9 of the way between positions 1 and 10.
	assert.Equal(t, int64(400_000), m[5])

	// No extrapolation past the covered range.
	_, ok := m[11]
	assert.False(t, ok)
	_, ok = m[12]
	assert.False(t, ok)
}

func TestBuildPositionTimeMapExactBeatsInterpolation(t *testing.T) {
	// A middle snapshot off the straight line keeps its measured instant.
	snaps := []model.Snapshot{
		snap(0, 1),
		snap(100_000, 5),
		snap(900_000, 10),
	}

	m := BuildPositionTimeMap(snaps, 10)
	assert.Equal(t, int64(100_000), m[5])
}

func TestBuildPositionTimeMapSingleSnapshot(t *testing.T) {
	m := BuildPositionTimeMap([]model.Snapshot{snap(5_000, 3)}, 10)

	require.Len(t, m, 1)
	assert.Equal(t, int64(5_000), m[3])
}

func TestBuildPositionTimeMapEmpty(t *testing.T) {
	m := BuildPositionTimeMap(nil, 10)
	assert.Empty(t, m)
}

func TestBuildPositionTimeMapDenseCoverage(t *testing.T) {
	snaps := []model.Snapshot{
		snap(1_000, 2),
		snap(7_000, 8),
	}

	m := BuildPositionTimeMap(snaps, 8)

	// Every position between the outermost snapshots is mapped.
	for p := 2; p <= 8; p++ {
		_, ok := m[p]
		assert.True(t, ok, "position %d should be mapped", p)
	}

	// Monotone along the interpolated span.
	for p := 3; p <= 8; p++ {
		assert.GreaterOrEqual(t, m[p], m[p-1])
	}
}
