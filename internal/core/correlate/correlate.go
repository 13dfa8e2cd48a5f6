// Package correlate joins user turns against the snapshot stream and derives
// per-turn incremental cost and duration.
package correlate

import (
	"errors"
	"fmt"

	"github.com/sotola/codex-context/internal/core/model"
)

// ErrNoSnapshots means the session carries no usage snapshots at all, so
// there is nothing to correlate turns against.
var ErrNoSnapshots = errors.New("no usage snapshots to correlate")

// UnorderedLogError reports a record whose timestamp moves backward relative
// to its predecessor. The log is assumed append-ordered; enrichment refuses
// to run on input that violates that rather than silently reordering it.
type UnorderedLogError struct {
	Kind     string // "snapshot" or "turn"
	Position int    // log position of the offending record
}

func (e *UnorderedLogError) Error() string {
	return fmt.Sprintf("%s at log position %d is out of chronological order", e.Kind, e.Position)
}

// CheckOrdered verifies both event streams are non-decreasing in timestamp
// across ascending position.
func CheckOrdered(snaps []model.Snapshot, turns []model.Turn) error {
	for i := 1; i < len(snaps); i++ {
		if snaps[i].Timestamp < snaps[i-1].Timestamp {
			return &UnorderedLogError{Kind: "snapshot", Position: snaps[i].Position}
		}
	}
	for i := 1; i < len(turns); i++ {
		if turns[i].Timestamp < turns[i-1].Timestamp {
			return &UnorderedLogError{Kind: "turn", Position: turns[i].Position}
		}
	}
	return nil
}

// MatchSnapshot returns the first snapshot at or after ts, falling back to
// the last snapshot when the turn happens after every measurement.
// Linear scan: session-scale sequences are small.
func MatchSnapshot(snaps []model.Snapshot, ts int64) (model.Snapshot, error) {
	if len(snaps) == 0 {
		return model.Snapshot{}, ErrNoSnapshots
	}
	for _, s := range snaps {
		if s.Timestamp >= ts {
			return s, nil
		}
	}
	return snaps[len(snaps)-1], nil
}

// EnrichTurns produces an EnrichedTurn for every turn, in turn-index order.
// A turn owns all snapshots up to (not including) the next turn; the final
// turn owns everything through the last snapshot.
func EnrichTurns(snaps []model.Snapshot, turns []model.Turn) ([]model.EnrichedTurn, error) {
	if len(snaps) == 0 {
		return nil, ErrNoSnapshots
	}

	last := snaps[len(snaps)-1]
	enriched := make([]model.EnrichedTurn, 0, len(turns))

	for i, turn := range turns {
		start, err := MatchSnapshot(snaps, turn.Timestamp)
		if err != nil {
			return nil, err
		}

		ctxEnd, tsEnd := start.WindowTokens, start.Timestamp
		if i+1 < len(turns) {
			// Latest snapshot strictly before the next turn, else the
			// start values stand.
			boundary := turns[i+1].Timestamp
			for j := len(snaps) - 1; j >= 0; j-- {
				if snaps[j].Timestamp < boundary {
					ctxEnd, tsEnd = snaps[j].WindowTokens, snaps[j].Timestamp
					break
				}
			}
		} else {
			ctxEnd, tsEnd = last.WindowTokens, last.Timestamp
		}

		// Context can shrink (compaction); a negative cost is meaningless.
		cost := ctxEnd - start.WindowTokens
		if cost < 0 {
			cost = 0
		}

		enriched = append(enriched, model.EnrichedTurn{
			Turn:              turn,
			ContextAtStart:    start.WindowTokens,
			CumulativeAtStart: start.CumulativeTokens,
			CostTokens:        cost,
			DurationMs:        tsEnd - start.Timestamp,
		})
	}

	return enriched, nil
}
