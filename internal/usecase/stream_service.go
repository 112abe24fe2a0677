package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/afriquefoot/matchlive/internal/domain/commentary"
	"github.com/afriquefoot/matchlive/internal/domain/stream"
)

// StreamInput is a stream pointer as submitted by the authenticated webhook.
// Either VideoURL or VideoID is enough; the other is derived.
type StreamInput struct {
	MatchID     string
	Competition string
	VideoURL    string
	VideoID     string
	StreamTitle string
	IsLive      *bool
	ViewerCount int
}

type StreamService struct {
	streamRepo   stream.Repository
	revalidation *RevalidationService
}

func NewStreamService(streamRepo stream.Repository, revalidation *RevalidationService) *StreamService {
	return &StreamService{
		streamRepo:   streamRepo,
		revalidation: revalidation,
	}
}

func (s *StreamService) GetByMatch(ctx context.Context, matchID string) (stream.Pointer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StreamService.GetByMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return stream.Pointer{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	pointer, exists, err := s.streamRepo.Get(ctx, matchID)
	if err != nil {
		return stream.Pointer{}, fmt.Errorf("get stream match=%s: %w", matchID, err)
	}
	if !exists {
		return stream.Pointer{}, fmt.Errorf("%w: no stream for match %s", ErrNotFound, matchID)
	}

	return pointer, nil
}

func (s *StreamService) Upsert(ctx context.Context, input StreamInput) (stream.Pointer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StreamService.Upsert")
	defer span.End()

	pointer, err := buildStreamPointer(input)
	if err != nil {
		return stream.Pointer{}, err
	}

	stored, err := s.streamRepo.Upsert(ctx, pointer)
	if err != nil {
		return stream.Pointer{}, fmt.Errorf("upsert stream match=%s: %w", pointer.MatchID, err)
	}

	s.revalidation.TriggerMatch(ctx, stored.MatchID)
	return stored, nil
}

// Delete removes the pointer for a match. Deleting a match that has no
// pointer succeeds; the caller only cares that none remains.
func (s *StreamService) Delete(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StreamService.Delete")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	if err := s.streamRepo.Delete(ctx, matchID); err != nil {
		return fmt.Errorf("delete stream match=%s: %w", matchID, err)
	}

	s.revalidation.TriggerMatch(ctx, matchID)
	return nil
}

func buildStreamPointer(input StreamInput) (stream.Pointer, error) {
	matchID := strings.TrimSpace(input.MatchID)
	if matchID == "" {
		return stream.Pointer{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	videoURL := strings.TrimSpace(input.VideoURL)
	videoID := strings.TrimSpace(input.VideoID)
	if videoURL == "" && videoID == "" {
		return stream.Pointer{}, fmt.Errorf("%w: video_url or video_id is required", ErrInvalidInput)
	}
	if videoID == "" {
		videoID = stream.ParseVideoID(videoURL)
		if videoID == "" {
			return stream.Pointer{}, fmt.Errorf("%w: cannot extract video id from url %q", ErrInvalidInput, videoURL)
		}
	}
	if videoURL == "" {
		videoURL = stream.WatchURL(videoID)
	}

	competition := strings.TrimSpace(input.Competition)
	if competition == "" {
		competition = commentary.DefaultCompetition
	}

	isLive := true
	if input.IsLive != nil {
		isLive = *input.IsLive
	}

	viewerCount := input.ViewerCount
	if viewerCount < 0 {
		viewerCount = 0
	}

	return stream.Pointer{
		MatchID:     matchID,
		Competition: competition,
		VideoURL:    videoURL,
		VideoID:     videoID,
		StreamTitle: strings.TrimSpace(input.StreamTitle),
		IsLive:      isLive,
		ViewerCount: viewerCount,
	}, nil
}
