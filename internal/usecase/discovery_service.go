package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/afriquefoot/matchlive/internal/domain/commentary"
	"github.com/afriquefoot/matchlive/internal/domain/prematch"
	"github.com/afriquefoot/matchlive/internal/platform/logging"
)

// DiscoveryService lists matches that carry any coverage at all, merging
// commentary with pre-match signals. Pre-match data is best effort: a broken
// source degrades the listing to commentary-only.
type DiscoveryService struct {
	commentaryRepo commentary.Repository
	prematchSource prematch.Source
	logger         *logging.Logger
}

func NewDiscoveryService(commentaryRepo commentary.Repository, prematchSource prematch.Source, logger *logging.Logger) *DiscoveryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DiscoveryService{
		commentaryRepo: commentaryRepo,
		prematchSource: prematchSource,
		logger:         logger,
	}
}

func (s *DiscoveryService) CoveredMatches(ctx context.Context) ([]commentary.MatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DiscoveryService.CoveredMatches")
	defer span.End()

	summaries, err := s.commentaryRepo.ListMatchSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list match summaries: %w", err)
	}

	byMatch := make(map[string]int, len(summaries))
	out := append([]commentary.MatchSummary(nil), summaries...)
	for i, summary := range out {
		byMatch[summary.MatchID] = i
	}

	if s.prematchSource != nil {
		signals, err := s.prematchSource.ListSignals(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "prematch source unavailable, listing commentary only", "error", err)
		} else {
			for _, signal := range signals {
				if idx, ok := byMatch[signal.MatchID]; ok {
					out[idx].HasPreMatch = true
					if signal.FirstSeen.Before(out[idx].FirstSeen) {
						out[idx].FirstSeen = signal.FirstSeen
					}
					continue
				}
				byMatch[signal.MatchID] = len(out)
				out = append(out, commentary.MatchSummary{
					MatchID:     signal.MatchID,
					Competition: commentary.DefaultCompetition,
					HasPreMatch: true,
					FirstSeen:   signal.FirstSeen,
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FirstSeen.After(out[j].FirstSeen)
	})
	return out, nil
}
