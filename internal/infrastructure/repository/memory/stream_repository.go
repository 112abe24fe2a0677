package memory

import (
	"context"
	"sync"
	"time"

	"github.com/afriquefoot/matchlive/internal/domain/stream"
)

type StreamRepository struct {
	mu       sync.RWMutex
	pointers map[string]stream.Pointer
}

func NewStreamRepository(pointers []stream.Pointer) *StreamRepository {
	byMatch := make(map[string]stream.Pointer, len(pointers))
	for _, pointer := range pointers {
		byMatch[pointer.MatchID] = pointer
	}
	return &StreamRepository{pointers: byMatch}
}

func (r *StreamRepository) Get(_ context.Context, matchID string) (stream.Pointer, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pointer, ok := r.pointers[matchID]
	return pointer, ok, nil
}

func (r *StreamRepository) Upsert(_ context.Context, pointer stream.Pointer) (stream.Pointer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if existing, ok := r.pointers[pointer.MatchID]; ok {
		pointer.CreatedAt = existing.CreatedAt
	} else {
		pointer.CreatedAt = now
	}
	pointer.UpdatedAt = now
	r.pointers[pointer.MatchID] = pointer
	return pointer, nil
}

func (r *StreamRepository) Delete(_ context.Context, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pointers, matchID)
	return nil
}
