package model

// Snapshot is the engine's view of token consumption at one instant.
// Snapshots are produced in log order, so Position is unique and strictly
// increasing across a session's snapshot sequence.
type Snapshot struct {
	Timestamp        int64 // epoch milliseconds
	Position         int   // 1-based ordinal within the full log
	WindowTokens     int   // tokens in the current context window
	CumulativeTokens int   // running total since session start
	WindowCapacity   int   // configured context size, stored per snapshot
}

// Turn is one user-authored message.
type Turn struct {
	Timestamp int64
	Position  int // 1-based ordinal within the full log
	Index     int // 1-based ordinal among user turns only
	Text      string
}

// EnrichedTurn is a Turn joined against the snapshot stream. ContextAtStart
// and CumulativeAtStart come from the closest at-or-after snapshot;
// CostTokens and DurationMs cover everything up to the next turn (or the
// end of the session for the final turn).
type EnrichedTurn struct {
	Turn
	ContextAtStart    int
	CumulativeAtStart int
	CostTokens        int
	DurationMs        int64
}
