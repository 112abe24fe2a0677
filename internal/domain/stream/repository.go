package stream

import "context"

// Repository persists stream pointers keyed by match id. Delete of a missing
// pointer is a success, not an error.
type Repository interface {
	Get(ctx context.Context, matchID string) (Pointer, bool, error)
	Upsert(ctx context.Context, pointer Pointer) (Pointer, error)
	Delete(ctx context.Context, matchID string) error
}
