package cache

import (
	"context"
	"strconv"

	"github.com/afriquefoot/matchlive/internal/domain/commentary"
	"github.com/afriquefoot/matchlive/internal/domain/prematch"
	"github.com/afriquefoot/matchlive/internal/domain/stream"
	basecache "github.com/afriquefoot/matchlive/internal/platform/cache"
)

// CommentaryRepository caches reads and purges the match prefix on writes so
// readers never see events older than one cache TTL.
type CommentaryRepository struct {
	next  commentary.Repository
	cache *basecache.Store
}

func NewCommentaryRepository(next commentary.Repository, cache *basecache.Store) *CommentaryRepository {
	return &CommentaryRepository{next: next, cache: cache}
}

func (r *CommentaryRepository) Upsert(ctx context.Context, event commentary.Event) (commentary.Event, error) {
	stored, err := r.next.Upsert(ctx, event)
	if err != nil {
		return commentary.Event{}, err
	}

	r.cache.DeletePrefix(ctx, "commentary:match:"+stored.MatchID+":")
	r.cache.Delete(ctx, "commentary:summaries")
	return stored, nil
}

func (r *CommentaryRepository) ListByMatch(ctx context.Context, matchID, locale string, limit int) ([]commentary.Event, error) {
	key := "commentary:match:" + matchID + ":" + locale + ":" + strconv.Itoa(limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByMatch(ctx, matchID, locale, limit)
		if err != nil {
			return nil, err
		}
		return append([]commentary.Event(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]commentary.Event)
	return append([]commentary.Event(nil), items...), nil
}

func (r *CommentaryRepository) ListMatchSummaries(ctx context.Context) ([]commentary.MatchSummary, error) {
	v, err := r.cache.GetOrLoad(ctx, "commentary:summaries", func(ctx context.Context) (any, error) {
		items, err := r.next.ListMatchSummaries(ctx)
		if err != nil {
			return nil, err
		}
		return append([]commentary.MatchSummary(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]commentary.MatchSummary)
	return append([]commentary.MatchSummary(nil), items...), nil
}

type StreamRepository struct {
	next  stream.Repository
	cache *basecache.Store
}

func NewStreamRepository(next stream.Repository, cache *basecache.Store) *StreamRepository {
	return &StreamRepository{next: next, cache: cache}
}

func (r *StreamRepository) Get(ctx context.Context, matchID string) (stream.Pointer, bool, error) {
	key := "stream:match:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.Get(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedStream{value: item, exists: exists}, nil
	})
	if err != nil {
		return stream.Pointer{}, false, err
	}

	cached, _ := v.(cachedStream)
	return cached.value, cached.exists, nil
}

func (r *StreamRepository) Upsert(ctx context.Context, pointer stream.Pointer) (stream.Pointer, error) {
	stored, err := r.next.Upsert(ctx, pointer)
	if err != nil {
		return stream.Pointer{}, err
	}

	r.cache.Delete(ctx, "stream:match:"+stored.MatchID)
	return stored, nil
}

func (r *StreamRepository) Delete(ctx context.Context, matchID string) error {
	if err := r.next.Delete(ctx, matchID); err != nil {
		return err
	}

	r.cache.Delete(ctx, "stream:match:"+matchID)
	return nil
}

type cachedStream struct {
	value  stream.Pointer
	exists bool
}

type PrematchSource struct {
	next  prematch.Source
	cache *basecache.Store
}

func NewPrematchSource(next prematch.Source, cache *basecache.Store) *PrematchSource {
	return &PrematchSource{next: next, cache: cache}
}

func (s *PrematchSource) ListSignals(ctx context.Context) ([]prematch.Signal, error) {
	v, err := s.cache.GetOrLoad(ctx, "prematch:signals", func(ctx context.Context) (any, error) {
		items, err := s.next.ListSignals(ctx)
		if err != nil {
			return nil, err
		}
		return append([]prematch.Signal(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]prematch.Signal)
	return append([]prematch.Signal(nil), items...), nil
}
