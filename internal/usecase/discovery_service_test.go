package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/afriquefoot/matchlive/internal/domain/commentary"
	"github.com/afriquefoot/matchlive/internal/domain/prematch"
	"github.com/afriquefoot/matchlive/internal/infrastructure/repository/memory"
	"github.com/afriquefoot/matchlive/internal/platform/logging"
)

type failingPrematchSource struct{}

func (failingPrematchSource) ListSignals(context.Context) ([]prematch.Signal, error) {
	return nil, errors.New("source offline")
}

func TestCoveredMatches_MergesSignals(t *testing.T) {
	t.Parallel()

	now := time.Now()
	commentaryRepo := memory.NewCommentaryRepository([]commentary.Event{
		{MatchID: "m1", EventID: "e1", Locale: "fr", DisplayTime: "12'", TimeSeconds: 720, Text: "x", CreatedAt: now.Add(-time.Hour)},
		{MatchID: "m2", EventID: "e2", Locale: "fr", DisplayTime: "1'", TimeSeconds: 60, Text: "y", CreatedAt: now.Add(-10 * time.Minute)},
	})
	prematchSource := memory.NewPrematchSource([]prematch.Signal{
		{MatchID: "m1", FirstSeen: now.Add(-3 * time.Hour)},
		{MatchID: "m3", FirstSeen: now.Add(-30 * time.Minute)},
	})

	service := NewDiscoveryService(commentaryRepo, prematchSource, logging.NewNop())

	matches, err := service.CoveredMatches(context.Background())
	if err != nil {
		t.Fatalf("covered matches: %v", err)
	}

	if len(matches) != 3 {
		t.Fatalf("expected 3 covered matches, got %d", len(matches))
	}

	byID := make(map[string]commentary.MatchSummary, len(matches))
	for _, match := range matches {
		byID[match.MatchID] = match
	}

	m1 := byID["m1"]
	if !m1.HasCommentary || !m1.HasPreMatch {
		t.Fatalf("m1 should carry both coverage kinds, got %+v", m1)
	}
	if !m1.FirstSeen.Equal(now.Add(-3 * time.Hour)) {
		t.Fatalf("m1 FirstSeen should take the earlier signal, got %v", m1.FirstSeen)
	}

	m3 := byID["m3"]
	if m3.HasCommentary || !m3.HasPreMatch {
		t.Fatalf("m3 should be prematch-only, got %+v", m3)
	}
	if m3.Competition != commentary.DefaultCompetition {
		t.Fatalf("prematch-only entries get the default competition, got %q", m3.Competition)
	}

	// Freshest coverage first.
	if matches[0].MatchID != "m2" {
		t.Fatalf("expected m2 first, got %s", matches[0].MatchID)
	}
	if matches[len(matches)-1].MatchID != "m1" {
		t.Fatalf("expected m1 last, got %s", matches[len(matches)-1].MatchID)
	}
}

func TestCoveredMatches_DegradesWhenPrematchFails(t *testing.T) {
	t.Parallel()

	commentaryRepo := memory.NewCommentaryRepository([]commentary.Event{
		{MatchID: "m1", EventID: "e1", Locale: "fr", DisplayTime: "12'", TimeSeconds: 720, Text: "x"},
	})

	service := NewDiscoveryService(commentaryRepo, failingPrematchSource{}, logging.NewNop())

	matches, err := service.CoveredMatches(context.Background())
	if err != nil {
		t.Fatalf("expected degradation, got %v", err)
	}
	if len(matches) != 1 || matches[0].MatchID != "m1" {
		t.Fatalf("expected commentary-only listing, got %+v", matches)
	}
}

func TestCoveredMatches_EmptyListing(t *testing.T) {
	t.Parallel()

	service := NewDiscoveryService(memory.NewCommentaryRepository(nil), memory.NewPrematchSource(nil), logging.NewNop())

	matches, err := service.CoveredMatches(context.Background())
	if err != nil {
		t.Fatalf("covered matches: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected empty listing, got %d entries", len(matches))
	}
}
