package usecase

import (
	"context"
	"time"

	"github.com/afriquefoot/matchlive/internal/platform/logging"
)

// ExternalTeamScore is one side of the scoreboard as the feed reports it.
type ExternalTeamScore struct {
	Name         string
	Abbreviation string
	Logo         string
	Score        int
}

// ExternalMatchScore is the live match state from the third-party feed.
type ExternalMatchScore struct {
	MatchID      string
	HomeTeam     ExternalTeamScore
	AwayTeam     ExternalTeamScore
	StatusState  string
	StatusDetail string
	Completed    bool
	Clock        string
	Venue        string
	StartTime    time.Time
}

// ScoreFeed fetches live match state from the external scoreboard provider.
type ScoreFeed interface {
	FetchMatchScore(ctx context.Context, matchID string) (ExternalMatchScore, error)
}

// LiveUpdate merges stored commentary with the external score. The score is
// optional: a dead feed degrades to commentary-only output, never an error.
type LiveUpdate struct {
	MatchHistory
	Score *ExternalMatchScore
}

type LiveUpdateService struct {
	history *CommentaryService
	feed    ScoreFeed
	logger  *logging.Logger
}

func NewLiveUpdateService(history *CommentaryService, feed ScoreFeed, logger *logging.Logger) *LiveUpdateService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LiveUpdateService{
		history: history,
		feed:    feed,
		logger:  logger,
	}
}

func (s *LiveUpdateService) LiveUpdate(ctx context.Context, matchID, locale string) (LiveUpdate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LiveUpdateService.LiveUpdate")
	defer span.End()

	history, err := s.history.MatchHistory(ctx, matchID, locale, 0)
	if err != nil {
		return LiveUpdate{}, err
	}

	out := LiveUpdate{MatchHistory: history}
	if s.feed == nil {
		return out, nil
	}

	score, err := s.feed.FetchMatchScore(ctx, history.MatchID)
	if err != nil {
		s.logger.WarnContext(ctx, "score feed unavailable, serving commentary only", "match_id", history.MatchID, "error", err)
		return out, nil
	}

	out.Score = &score
	// The feed knows the authoritative match state; let it override the
	// commentary-recency heuristic in both directions.
	out.IsLive = score.StatusState == "in"
	return out, nil
}
