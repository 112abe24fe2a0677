package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/afriquefoot/matchlive/internal/domain/commentary"
	"github.com/afriquefoot/matchlive/internal/infrastructure/repository/memory"
)

func TestMatchHistory_OrdersByMatchClock(t *testing.T) {
	t.Parallel()

	now := time.Now()
	repo := memory.NewCommentaryRepository([]commentary.Event{
		{MatchID: "m1", EventID: "e1", Locale: "fr", DisplayTime: "12'", TimeSeconds: 720, Text: "early", CreatedAt: now.Add(-time.Hour)},
		{MatchID: "m1", EventID: "e2", Locale: "fr", DisplayTime: "78'", TimeSeconds: 4680, Text: "late", CreatedAt: now.Add(-2 * time.Hour)},
		{MatchID: "m1", EventID: "e3", Locale: "en", DisplayTime: "78'", TimeSeconds: 4680, Text: "other locale", CreatedAt: now},
	})

	service := NewCommentaryService(repo, 50)

	history, err := service.MatchHistory(context.Background(), "m1", "fr", 0)
	if err != nil {
		t.Fatalf("match history: %v", err)
	}

	if history.EventCount != 2 {
		t.Fatalf("expected 2 events in fr, got %d", history.EventCount)
	}
	if history.Events[0].EventID != "e2" || history.Events[1].EventID != "e1" {
		t.Fatalf("expected clock-descending order, got %s then %s", history.Events[0].EventID, history.Events[1].EventID)
	}
}

func TestMatchHistory_LiveFlag(t *testing.T) {
	t.Parallel()

	now := time.Now()

	cases := []struct {
		name      string
		createdAt time.Time
		want      bool
	}{
		{"recent event marks live", now.Add(-time.Minute), true},
		{"stale event is not live", now.Add(-20 * time.Minute), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := memory.NewCommentaryRepository([]commentary.Event{
				{MatchID: "m1", EventID: "e1", Locale: "fr", DisplayTime: "12'", TimeSeconds: 720, Text: "x", CreatedAt: now.Add(-time.Hour)},
				{MatchID: "m1", EventID: "e2", Locale: "fr", DisplayTime: "1'", TimeSeconds: 60, Text: "y", CreatedAt: tc.createdAt},
			})
			service := NewCommentaryService(repo, 50)
			service.now = func() time.Time { return now }

			history, err := service.MatchHistory(context.Background(), "m1", "fr", 0)
			if err != nil {
				t.Fatalf("match history: %v", err)
			}
			if history.IsLive != tc.want {
				t.Fatalf("IsLive = %v, want %v", history.IsLive, tc.want)
			}
		})
	}
}

func TestMatchHistory_EmptyMatchIsNotAnError(t *testing.T) {
	t.Parallel()

	service := NewCommentaryService(memory.NewCommentaryRepository(nil), 50)

	history, err := service.MatchHistory(context.Background(), "unknown", "", 0)
	if err != nil {
		t.Fatalf("match history: %v", err)
	}
	if history.EventCount != 0 || history.IsLive {
		t.Fatalf("expected empty non-live history, got count=%d live=%v", history.EventCount, history.IsLive)
	}
	if history.Locale != commentary.DefaultLocale {
		t.Fatalf("expected default locale, got %q", history.Locale)
	}
}

func TestMatchHistory_RejectsBadInput(t *testing.T) {
	t.Parallel()

	service := NewCommentaryService(memory.NewCommentaryRepository(nil), 50)

	if _, err := service.MatchHistory(context.Background(), "  ", "fr", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank match id: expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.MatchHistory(context.Background(), "m1", "de", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unsupported locale: expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchHistory_AppliesPageLimit(t *testing.T) {
	t.Parallel()

	events := make([]commentary.Event, 0, 5)
	for i := 0; i < 5; i++ {
		events = append(events, commentary.Event{
			MatchID:     "m1",
			EventID:     string(rune('a' + i)),
			Locale:      "fr",
			DisplayTime: "1'",
			TimeSeconds: 60 * (i + 1),
			Text:        "x",
		})
	}
	service := NewCommentaryService(memory.NewCommentaryRepository(events), 3)

	history, err := service.MatchHistory(context.Background(), "m1", "fr", 0)
	if err != nil {
		t.Fatalf("match history: %v", err)
	}
	if history.EventCount != 3 {
		t.Fatalf("expected page limit 3, got %d events", history.EventCount)
	}

	history, err = service.MatchHistory(context.Background(), "m1", "fr", 2)
	if err != nil {
		t.Fatalf("match history with explicit limit: %v", err)
	}
	if history.EventCount != 2 {
		t.Fatalf("expected explicit limit 2, got %d events", history.EventCount)
	}
}

func TestNewCommentaryService_ClampsPageLimit(t *testing.T) {
	t.Parallel()

	service := NewCommentaryService(memory.NewCommentaryRepository(nil), 10_000)
	if service.pageLimit != MaxPageLimit {
		t.Fatalf("pageLimit = %d, want %d", service.pageLimit, MaxPageLimit)
	}
}
