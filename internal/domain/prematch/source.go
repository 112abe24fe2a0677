package prematch

import (
	"context"
	"time"
)

// Signal says a match has pre-match analysis on record. The analysis table
// belongs to another system; this service only sees the match id and when
// the record first appeared.
type Signal struct {
	MatchID   string
	FirstSeen time.Time
}

// Source exposes the pre-match signals. Implementations must tolerate an
// empty result set.
type Source interface {
	ListSignals(ctx context.Context) ([]Signal, error)
}
