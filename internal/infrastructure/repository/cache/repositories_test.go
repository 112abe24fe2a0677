package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/afriquefoot/matchlive/internal/domain/commentary"
	"github.com/afriquefoot/matchlive/internal/domain/prematch"
	"github.com/afriquefoot/matchlive/internal/domain/stream"
	"github.com/afriquefoot/matchlive/internal/infrastructure/repository/memory"
	basecache "github.com/afriquefoot/matchlive/internal/platform/cache"
)

func TestCommentaryRepository_CachesReads(t *testing.T) {
	t.Parallel()

	next := memory.NewCommentaryRepository(nil)
	repo := NewCommentaryRepository(next, basecache.NewStore(time.Minute))
	ctx := context.Background()

	_, err := repo.Upsert(ctx, commentary.Event{MatchID: "m1", EventID: "e1", Locale: "fr", DisplayTime: "1'", TimeSeconds: 60, Text: "x"})
	require.NoError(t, err)

	first, err := repo.ListByMatch(ctx, "m1", "fr", 10)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Write behind the decorator's back: the cached read must not see it.
	_, err = next.Upsert(ctx, commentary.Event{MatchID: "m1", EventID: "e2", Locale: "fr", DisplayTime: "2'", TimeSeconds: 120, Text: "y"})
	require.NoError(t, err)

	cached, err := repo.ListByMatch(ctx, "m1", "fr", 10)
	require.NoError(t, err)
	require.Len(t, cached, 1)
}

func TestCommentaryRepository_UpsertPurgesMatch(t *testing.T) {
	t.Parallel()

	repo := NewCommentaryRepository(memory.NewCommentaryRepository(nil), basecache.NewStore(time.Minute))
	ctx := context.Background()

	_, err := repo.Upsert(ctx, commentary.Event{MatchID: "m1", EventID: "e1", Locale: "fr", DisplayTime: "1'", TimeSeconds: 60, Text: "x"})
	require.NoError(t, err)

	before, err := repo.ListByMatch(ctx, "m1", "fr", 10)
	require.NoError(t, err)
	require.Len(t, before, 1)

	summariesBefore, err := repo.ListMatchSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summariesBefore, 1)

	_, err = repo.Upsert(ctx, commentary.Event{MatchID: "m1", EventID: "e2", Locale: "fr", DisplayTime: "2'", TimeSeconds: 120, Text: "y"})
	require.NoError(t, err)

	after, err := repo.ListByMatch(ctx, "m1", "fr", 10)
	require.NoError(t, err)
	require.Len(t, after, 2, "write through the decorator must invalidate the match")

	summariesAfter, err := repo.ListMatchSummaries(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, summariesAfter[0].CommentaryCount)
}

func TestStreamRepository_CachesAbsence(t *testing.T) {
	t.Parallel()

	repo := NewStreamRepository(memory.NewStreamRepository(nil), basecache.NewStore(time.Minute))
	ctx := context.Background()

	_, exists, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	require.False(t, exists)

	// The upsert purges the cached miss.
	_, err = repo.Upsert(ctx, stream.Pointer{MatchID: "m1", VideoID: "abc", VideoURL: stream.WatchURL("abc")})
	require.NoError(t, err)

	pointer, exists, err := repo.Get(ctx, "m1")
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, "abc", pointer.VideoID)

	require.NoError(t, repo.Delete(ctx, "m1"))

	_, exists, err = repo.Get(ctx, "m1")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestPrematchSource_CachesSignals(t *testing.T) {
	t.Parallel()

	firstSeen := time.Now().Add(-time.Hour)
	source := NewPrematchSource(
		memory.NewPrematchSource([]prematch.Signal{{MatchID: "m1", FirstSeen: firstSeen}}),
		basecache.NewStore(time.Minute),
	)

	signals, err := source.ListSignals(context.Background())
	require.NoError(t, err)
	require.Len(t, signals, 1)
	require.Equal(t, "m1", signals[0].MatchID)
}
