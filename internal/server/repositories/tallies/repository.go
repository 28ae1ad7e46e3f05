// Package tallies persists per-candidate vote counters.
package tallies

import "context"

// Repository is the Tally Store. Counters are created on first vote and only
// ever go up.
type Repository interface {
	Increment(ctx context.Context, candidateID string) (int64, error)
	Snapshot(ctx context.Context) (map[string]int64, error)
	Summary(ctx context.Context) (*Summary, error)
}

// Summary is a tally snapshot plus token counts read by one statement, so
// both halves describe the same committed state.
type Summary struct {
	Totals map[string]int64
	Tokens int64
	Used   int64
}
