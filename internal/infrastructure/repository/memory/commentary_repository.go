package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/afriquefoot/matchlive/internal/domain/commentary"
)

type CommentaryRepository struct {
	mu     sync.RWMutex
	nextID int64
	events []commentary.Event
}

func NewCommentaryRepository(events []commentary.Event) *CommentaryRepository {
	repo := &CommentaryRepository{nextID: 1}
	for _, event := range events {
		if event.ID == 0 {
			event.ID = repo.nextID
		}
		if event.CreatedAt.IsZero() {
			event.CreatedAt = time.Now()
		}
		if event.ID >= repo.nextID {
			repo.nextID = event.ID + 1
		}
		repo.events = append(repo.events, event)
	}
	return repo
}

func (r *CommentaryRepository) Upsert(_ context.Context, event commentary.Event) (commentary.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.events {
		if existing.MatchID == event.MatchID && existing.EventID == event.EventID {
			event.ID = existing.ID
			event.CreatedAt = existing.CreatedAt
			r.events[i] = event
			return event, nil
		}
	}

	event.ID = r.nextID
	r.nextID++
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	r.events = append(r.events, event)
	return event, nil
}

func (r *CommentaryRepository) ListByMatch(_ context.Context, matchID, locale string, limit int) ([]commentary.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]commentary.Event, 0, len(r.events))
	for _, event := range r.events {
		if event.MatchID != matchID {
			continue
		}
		if locale != "" && event.Locale != locale {
			continue
		}
		out = append(out, event)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TimeSeconds != out[j].TimeSeconds {
			return out[i].TimeSeconds > out[j].TimeSeconds
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *CommentaryRepository) ListMatchSummaries(_ context.Context) ([]commentary.MatchSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byMatch := make(map[string]*commentary.MatchSummary)
	for _, event := range r.events {
		summary, ok := byMatch[event.MatchID]
		if !ok {
			summary = &commentary.MatchSummary{
				MatchID:     event.MatchID,
				Competition: event.Competition,
				FirstSeen:   event.CreatedAt,
			}
			byMatch[event.MatchID] = summary
		}
		summary.HasCommentary = true
		summary.CommentaryCount++
		if event.CreatedAt.Before(summary.FirstSeen) {
			summary.FirstSeen = event.CreatedAt
		}
	}

	out := make([]commentary.MatchSummary, 0, len(byMatch))
	for _, summary := range byMatch {
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FirstSeen.After(out[j].FirstSeen)
	})
	return out, nil
}
