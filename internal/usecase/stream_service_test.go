package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/afriquefoot/matchlive/internal/domain/stream"
	"github.com/afriquefoot/matchlive/internal/infrastructure/repository/memory"
)

func TestStreamUpsert_DerivesVideoFields(t *testing.T) {
	t.Parallel()

	service := NewStreamService(memory.NewStreamRepository(nil), nil)

	cases := []struct {
		name      string
		input     StreamInput
		wantURL   string
		wantVideo string
	}{
		{
			name:      "id derived from watch url",
			input:     StreamInput{MatchID: "m1", VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
			wantURL:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantVideo: "dQw4w9WgXcQ",
		},
		{
			name:      "id derived from short url",
			input:     StreamInput{MatchID: "m1", VideoURL: "https://youtu.be/dQw4w9WgXcQ"},
			wantURL:   "https://youtu.be/dQw4w9WgXcQ",
			wantVideo: "dQw4w9WgXcQ",
		},
		{
			name:      "url derived from id",
			input:     StreamInput{MatchID: "m1", VideoID: "dQw4w9WgXcQ"},
			wantURL:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantVideo: "dQw4w9WgXcQ",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stored, err := service.Upsert(context.Background(), tc.input)
			if err != nil {
				t.Fatalf("upsert: %v", err)
			}
			if stored.VideoURL != tc.wantURL {
				t.Fatalf("VideoURL = %q, want %q", stored.VideoURL, tc.wantURL)
			}
			if stored.VideoID != tc.wantVideo {
				t.Fatalf("VideoID = %q, want %q", stored.VideoID, tc.wantVideo)
			}
		})
	}
}

func TestStreamUpsert_Validation(t *testing.T) {
	t.Parallel()

	service := NewStreamService(memory.NewStreamRepository(nil), nil)

	cases := []struct {
		name  string
		input StreamInput
	}{
		{"missing match id", StreamInput{VideoID: "abc"}},
		{"missing video", StreamInput{MatchID: "m1"}},
		{"unparseable url", StreamInput{MatchID: "m1", VideoURL: "https://example.com/clip/39"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Upsert(context.Background(), tc.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestStreamUpsert_Defaults(t *testing.T) {
	t.Parallel()

	service := NewStreamService(memory.NewStreamRepository(nil), nil)

	stored, err := service.Upsert(context.Background(), StreamInput{
		MatchID:     "m1",
		VideoID:     "dQw4w9WgXcQ",
		ViewerCount: -3,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !stored.IsLive {
		t.Fatal("expected stream to default to live")
	}
	if stored.Competition == "" {
		t.Fatal("expected a default competition")
	}
	if stored.ViewerCount != 0 {
		t.Fatalf("expected negative viewer count clamped to 0, got %d", stored.ViewerCount)
	}
}

func TestStreamUpsert_ReplacesExistingPointer(t *testing.T) {
	t.Parallel()

	repo := memory.NewStreamRepository(nil)
	service := NewStreamService(repo, nil)

	if _, err := service.Upsert(context.Background(), StreamInput{MatchID: "m1", VideoID: "firstvideo1"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	live := false
	updated, err := service.Upsert(context.Background(), StreamInput{MatchID: "m1", VideoID: "secondvideo", IsLive: &live})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if updated.VideoID != "secondvideo" || updated.IsLive {
		t.Fatalf("expected replaced pointer, got %+v", updated)
	}

	current, err := service.GetByMatch(context.Background(), "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.VideoID != "secondvideo" {
		t.Fatalf("expected one pointer per match, got %q", current.VideoID)
	}
}

func TestStreamGetByMatch_NotFound(t *testing.T) {
	t.Parallel()

	service := NewStreamService(memory.NewStreamRepository(nil), nil)

	_, err := service.GetByMatch(context.Background(), "absent")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStreamDelete_Idempotent(t *testing.T) {
	t.Parallel()

	repo := memory.NewStreamRepository([]stream.Pointer{{MatchID: "m1", VideoID: "dQw4w9WgXcQ", VideoURL: stream.WatchURL("dQw4w9WgXcQ")}})
	service := NewStreamService(repo, nil)

	if err := service.Delete(context.Background(), "m1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := service.Delete(context.Background(), "m1"); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
	if _, err := service.GetByMatch(context.Background(), "m1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected pointer gone, got %v", err)
	}
}
