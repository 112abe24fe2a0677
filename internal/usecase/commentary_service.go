package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/afriquefoot/matchlive/internal/domain/commentary"
)

// MatchHistory is the read-side projection of one match's commentary in one
// locale, newest events first.
type MatchHistory struct {
	MatchID    string
	Locale     string
	Events     []commentary.Event
	EventCount int
	IsLive     bool
}

// MaxPageLimit caps how many events one read may request.
const MaxPageLimit = 200

type CommentaryService struct {
	commentaryRepo commentary.Repository
	pageLimit      int
	now            func() time.Time
}

func NewCommentaryService(commentaryRepo commentary.Repository, pageLimit int) *CommentaryService {
	if pageLimit < 1 {
		pageLimit = 50
	}
	if pageLimit > MaxPageLimit {
		pageLimit = MaxPageLimit
	}
	return &CommentaryService{
		commentaryRepo: commentaryRepo,
		pageLimit:      pageLimit,
		now:            time.Now,
	}
}

// MatchHistory lists a match's events in one locale. A non-positive limit
// falls back to the configured page size; anything above MaxPageLimit is
// clamped.
func (s *CommentaryService) MatchHistory(ctx context.Context, matchID, locale string, limit int) (MatchHistory, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CommentaryService.MatchHistory")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return MatchHistory{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	locale = commentary.NormalizeLocale(locale)
	if !commentary.IsSupportedLocale(locale) {
		return MatchHistory{}, fmt.Errorf("%w: unsupported locale %q", ErrInvalidInput, locale)
	}

	if limit <= 0 {
		limit = s.pageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	events, err := s.commentaryRepo.ListByMatch(ctx, matchID, locale, limit)
	if err != nil {
		return MatchHistory{}, fmt.Errorf("list commentary match=%s: %w", matchID, err)
	}

	return MatchHistory{
		MatchID:    matchID,
		Locale:     locale,
		Events:     events,
		EventCount: len(events),
		IsLive:     isLive(events, s.now()),
	}, nil
}

// isLive reports whether the newest event landed inside the live window.
// Ordering is by match clock, so scan all rows for the newest created_at.
func isLive(events []commentary.Event, now time.Time) bool {
	var newest time.Time
	for _, event := range events {
		if event.CreatedAt.After(newest) {
			newest = event.CreatedAt
		}
	}
	if newest.IsZero() {
		return false
	}
	return now.Sub(newest) < commentary.LiveWindow
}
