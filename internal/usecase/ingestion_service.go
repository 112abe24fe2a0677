package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/afriquefoot/matchlive/internal/domain/commentary"
)

// CommentaryInput is one event as submitted by the commentary agent.
type CommentaryInput struct {
	MatchID     string
	EventID     string
	Competition string
	Time        string
	TimeSeconds int
	Locale      string
	Text        string
	Type        string
	Team        string
	PlayerName  string
	PlayerImage string
	Icon        string
	IsScoring   bool
	Confidence  float64
}

// IngestionService accepts commentary events from the authenticated webhook,
// normalizes them and persists exactly one row per (match_id, event_id).
type IngestionService struct {
	commentaryRepo commentary.Repository
	revalidation   *RevalidationService
}

func NewIngestionService(commentaryRepo commentary.Repository, revalidation *RevalidationService) *IngestionService {
	return &IngestionService{
		commentaryRepo: commentaryRepo,
		revalidation:   revalidation,
	}
}

func (s *IngestionService) IngestCommentary(ctx context.Context, input CommentaryInput) (commentary.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestCommentary")
	defer span.End()

	event, err := buildCommentaryEvent(input)
	if err != nil {
		return commentary.Event{}, err
	}

	stored, err := s.commentaryRepo.Upsert(ctx, event)
	if err != nil {
		return commentary.Event{}, fmt.Errorf("upsert commentary: %w", err)
	}

	s.revalidation.TriggerMatch(ctx, stored.MatchID)
	return stored, nil
}

func buildCommentaryEvent(input CommentaryInput) (commentary.Event, error) {
	matchID := strings.TrimSpace(input.MatchID)
	if matchID == "" {
		return commentary.Event{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return commentary.Event{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}

	displayTime := strings.TrimSpace(input.Time)
	if displayTime == "" {
		return commentary.Event{}, fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if strings.TrimSpace(input.Locale) == "" {
		return commentary.Event{}, fmt.Errorf("%w: locale is required", ErrInvalidInput)
	}
	locale := commentary.NormalizeLocale(input.Locale)
	if !commentary.IsSupportedLocale(locale) {
		return commentary.Event{}, fmt.Errorf("%w: unsupported locale %q", ErrInvalidInput, input.Locale)
	}

	if strings.TrimSpace(input.Type) == "" {
		return commentary.Event{}, fmt.Errorf("%w: type is required", ErrInvalidInput)
	}
	eventType := commentary.NormalizeType(input.Type)

	timeSeconds := input.TimeSeconds
	if timeSeconds < 0 {
		return commentary.Event{}, fmt.Errorf("%w: time_seconds cannot be negative", ErrInvalidInput)
	}
	if timeSeconds == 0 {
		timeSeconds = commentary.ClockSeconds(displayTime)
	}

	eventID := strings.TrimSpace(input.EventID)
	if eventID == "" {
		eventID = commentary.DeriveEventID(matchID, locale, timeSeconds, text)
	}

	competition := strings.TrimSpace(input.Competition)
	if competition == "" {
		competition = commentary.DefaultCompetition
	}

	icon := strings.TrimSpace(input.Icon)
	if icon == "" {
		icon = commentary.DefaultIcon
	}

	confidence := input.Confidence
	if confidence <= 0 {
		confidence = commentary.DefaultConfidence
	}
	if confidence > 1 {
		return commentary.Event{}, fmt.Errorf("%w: confidence must be within (0, 1]", ErrInvalidInput)
	}

	return commentary.Event{
		MatchID:     matchID,
		EventID:     eventID,
		Competition: competition,
		DisplayTime: displayTime,
		TimeSeconds: timeSeconds,
		Locale:      locale,
		Text:        text,
		Type:        eventType,
		Team:        strings.TrimSpace(input.Team),
		PlayerName:  strings.TrimSpace(input.PlayerName),
		PlayerImage: strings.TrimSpace(input.PlayerImage),
		Icon:        icon,
		IsScoring:   input.IsScoring || eventType == commentary.TypeGoal,
		Confidence:  confidence,
	}, nil
}
