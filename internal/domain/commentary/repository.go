package commentary

import "context"

// Repository persists commentary events. Upsert is keyed on
// (match_id, event_id); a conflicting write overwrites the mutable fields
// and never duplicates a row.
type Repository interface {
	Upsert(ctx context.Context, event Event) (Event, error)
	ListByMatch(ctx context.Context, matchID, locale string, limit int) ([]Event, error)
	ListMatchSummaries(ctx context.Context) ([]MatchSummary, error)
}
