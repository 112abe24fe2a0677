package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/afriquefoot/matchlive/internal/domain/commentary"
	"github.com/afriquefoot/matchlive/internal/domain/stream"
	"github.com/afriquefoot/matchlive/internal/usecase"
)

type Handler struct {
	ingestionService  *usecase.IngestionService
	commentaryService *usecase.CommentaryService
	liveService       *usecase.LiveUpdateService
	streamService     *usecase.StreamService
	discoveryService  *usecase.DiscoveryService
	validator         *validator.Validate
	now               func() time.Time
}

func NewHandler(
	ingestionService *usecase.IngestionService,
	commentaryService *usecase.CommentaryService,
	liveService *usecase.LiveUpdateService,
	streamService *usecase.StreamService,
	discoveryService *usecase.DiscoveryService,
) *Handler {
	return &Handler{
		ingestionService:  ingestionService,
		commentaryService: commentaryService,
		liveService:       liveService,
		streamService:     streamService,
		discoveryService:  discoveryService,
		validator:         validator.New(),
		now:               time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) IngestCommentary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestCommentary")
	defer span.End()

	var req commentaryIngestRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	stored, err := h.ingestionService.IngestCommentary(ctx, usecase.CommentaryInput{
		MatchID:     req.MatchID,
		EventID:     req.EventID,
		Competition: req.Competition,
		Time:        req.Time,
		TimeSeconds: req.TimeSeconds,
		Locale:      req.Locale,
		Text:        req.Text,
		Type:        req.Type,
		Team:        req.Team,
		PlayerName:  req.PlayerName,
		PlayerImage: req.PlayerImage,
		Icon:        req.Icon,
		IsScoring:   req.IsScoring,
		Confidence:  req.Confidence,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, commentaryIngestResponse{
		Success: true,
		MatchID: stored.MatchID,
		EventID: stored.EventID,
	})
}

func (h *Handler) GetCommentary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCommentary")
	defer span.End()

	query := r.URL.Query()
	limit, err := parseLimit(query.Get("limit"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	history, err := h.commentaryService.MatchHistory(ctx, query.Get("match_id"), query.Get("locale"), limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if history.IsLive {
		w.Header().Set(cacheControlHeaderName, cacheControlLive)
	} else {
		w.Header().Set(cacheControlHeaderName, cacheControlSettled)
	}

	writeJSON(ctx, w, http.StatusOK, commentaryHistoryResponse{
		Success:    true,
		MatchID:    history.MatchID,
		Locale:     history.Locale,
		IsLive:     history.IsLive,
		Count:      history.EventCount,
		Commentary: eventsToDTO(history.Events),
	})
}

func (h *Handler) GetLiveUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveUpdate")
	defer span.End()

	query := r.URL.Query()
	update, err := h.liveService.LiveUpdate(ctx, query.Get("id"), query.Get("locale"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set(cacheControlHeaderName, cacheControlLivePoll)
	writeJSON(ctx, w, http.StatusOK, liveUpdateResponse{
		Match:      scoreToDTO(update.Score, update.IsLive),
		Commentary: eventsToDTO(update.Events),
		LastUpdate: h.now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) UpsertStream(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertStream")
	defer span.End()

	var req streamUpsertRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	stored, err := h.streamService.Upsert(ctx, usecase.StreamInput{
		MatchID:     req.MatchID,
		Competition: req.Competition,
		VideoURL:    req.VideoURL,
		VideoID:     req.videoID(),
		StreamTitle: req.title(),
		IsLive:      req.IsLive,
		ViewerCount: req.ViewerCount,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, streamResponse{
		Success: true,
		MatchID: stored.MatchID,
		Stream:  streamToDTO(stored),
	})
}

func (h *Handler) GetStream(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStream")
	defer span.End()

	matchID := strings.TrimSpace(r.URL.Query().Get("match_id"))
	pointer, err := h.streamService.GetByMatch(ctx, matchID)
	if err != nil {
		// An absent pointer is a normal answer for the player widget, not
		// an error page.
		if errors.Is(err, usecase.ErrNotFound) {
			writeJSON(ctx, w, http.StatusOK, streamResponse{Success: true, MatchID: matchID})
			return
		}
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, streamResponse{
		Success: true,
		MatchID: pointer.MatchID,
		Stream:  streamToDTO(pointer),
	})
}

func (h *Handler) DeleteStream(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteStream")
	defer span.End()

	matchID := strings.TrimSpace(r.URL.Query().Get("match_id"))
	if err := h.streamService.Delete(ctx, matchID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, streamDeleteResponse{Success: true, MatchID: matchID})
}

func (h *Handler) ListCommentedMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCommentedMatches")
	defer span.End()

	matches, err := h.discoveryService.CoveredMatches(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]matchSummaryDTO, 0, len(matches))
	for _, match := range matches {
		items = append(items, matchSummaryToDTO(match))
	}

	w.Header().Set(cacheControlHeaderName, cacheControlSettled)
	writeJSON(ctx, w, http.StatusOK, commentedMatchesResponse{
		Success: true,
		Count:   len(items),
		Matches: items,
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)
	}
	return limit, nil
}

type commentaryIngestRequest struct {
	MatchID     string  `json:"match_id" validate:"required"`
	EventID     string  `json:"event_id"`
	Competition string  `json:"competition"`
	Time        string  `json:"time" validate:"required"`
	TimeSeconds int     `json:"time_seconds" validate:"gte=0"`
	Locale      string  `json:"locale" validate:"required"`
	Text        string  `json:"text" validate:"required"`
	Type        string  `json:"type" validate:"required"`
	Team        string  `json:"team"`
	PlayerName  string  `json:"player_name"`
	PlayerImage string  `json:"player_image"`
	Icon        string  `json:"icon"`
	IsScoring   bool    `json:"is_scoring"`
	Confidence  float64 `json:"confidence" validate:"gte=0,lte=1"`
}

type streamUpsertRequest struct {
	MatchID        string `json:"match_id" validate:"required"`
	Competition    string `json:"competition"`
	VideoURL       string `json:"video_url"`
	VideoID        string `json:"video_id"`
	YoutubeVideoID string `json:"youtube_video_id"`
	StreamTitle    string `json:"stream_title"`
	VideoTitle     string `json:"video_title"`
	IsLive         *bool  `json:"is_live"`
	ViewerCount    int    `json:"viewer_count" validate:"gte=0"`
}

// videoID prefers the canonical youtube_video_id key; video_id is an alias.
func (r streamUpsertRequest) videoID() string {
	if strings.TrimSpace(r.YoutubeVideoID) != "" {
		return r.YoutubeVideoID
	}
	return r.VideoID
}

func (r streamUpsertRequest) title() string {
	if strings.TrimSpace(r.VideoTitle) != "" {
		return r.VideoTitle
	}
	return r.StreamTitle
}

type commentaryIngestResponse struct {
	Success bool   `json:"success"`
	MatchID string `json:"match_id"`
	EventID string `json:"event_id"`
}

type commentaryHistoryResponse struct {
	Success    bool                 `json:"success"`
	MatchID    string               `json:"matchId"`
	Locale     string               `json:"locale"`
	IsLive     bool                 `json:"isLive"`
	Count      int                  `json:"count"`
	Commentary []commentaryEventDTO `json:"commentary"`
}

type commentaryEventDTO struct {
	ID          int64   `json:"id"`
	MatchID     string  `json:"matchId"`
	EventID     string  `json:"eventId"`
	Competition string  `json:"competition"`
	Time        string  `json:"time"`
	TimeSeconds int     `json:"timeSeconds"`
	Locale      string  `json:"locale"`
	Text        string  `json:"text"`
	Type        string  `json:"type"`
	Team        string  `json:"team,omitempty"`
	PlayerName  string  `json:"playerName,omitempty"`
	PlayerImage string  `json:"playerImage,omitempty"`
	Icon        string  `json:"icon"`
	IsScoring   bool    `json:"isScoring"`
	Confidence  float64 `json:"confidence"`
	CreatedAt   string  `json:"createdAt"`
}

type liveUpdateResponse struct {
	Match      *matchScoreDTO       `json:"match"`
	Commentary []commentaryEventDTO `json:"commentary"`
	LastUpdate string               `json:"lastUpdate"`
}

type matchScoreDTO struct {
	ID           string       `json:"id"`
	HomeTeam     teamScoreDTO `json:"homeTeam"`
	AwayTeam     teamScoreDTO `json:"awayTeam"`
	StatusState  string       `json:"statusState"`
	StatusDetail string       `json:"statusDetail"`
	Completed    bool         `json:"completed"`
	IsLive       bool         `json:"isLive"`
	Clock        string       `json:"clock"`
	Venue        string       `json:"venue,omitempty"`
	StartTime    string       `json:"startTime,omitempty"`
}

type teamScoreDTO struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Logo         string `json:"logo,omitempty"`
	Score        int    `json:"score"`
}

type streamResponse struct {
	Success bool       `json:"success"`
	MatchID string     `json:"matchId"`
	Stream  *streamDTO `json:"stream"`
}

type streamDeleteResponse struct {
	Success bool   `json:"success"`
	MatchID string `json:"matchId"`
}

type streamDTO struct {
	MatchID     string `json:"matchId"`
	Competition string `json:"competition"`
	VideoURL    string `json:"videoUrl"`
	VideoID     string `json:"videoId"`
	StreamTitle string `json:"streamTitle,omitempty"`
	IsLive      bool   `json:"isLive"`
	ViewerCount int    `json:"viewerCount"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type commentedMatchesResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Matches []matchSummaryDTO `json:"matches"`
}

type matchSummaryDTO struct {
	MatchID         string `json:"matchId"`
	Competition     string `json:"competition"`
	HasCommentary   bool   `json:"hasCommentary"`
	HasPreMatch     bool   `json:"hasPreMatch"`
	CommentaryCount int    `json:"commentaryCount"`
	FirstSeen       string `json:"firstSeen"`
}

func eventsToDTO(events []commentary.Event) []commentaryEventDTO {
	items := make([]commentaryEventDTO, 0, len(events))
	for _, event := range events {
		items = append(items, commentaryEventDTO{
			ID:          event.ID,
			MatchID:     event.MatchID,
			EventID:     event.EventID,
			Competition: event.Competition,
			Time:        event.DisplayTime,
			TimeSeconds: event.TimeSeconds,
			Locale:      event.Locale,
			Text:        event.Text,
			Type:        event.Type,
			Team:        event.Team,
			PlayerName:  event.PlayerName,
			PlayerImage: event.PlayerImage,
			Icon:        event.Icon,
			IsScoring:   event.IsScoring,
			Confidence:  event.Confidence,
			CreatedAt:   event.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return items
}

func scoreToDTO(score *usecase.ExternalMatchScore, isLive bool) *matchScoreDTO {
	if score == nil {
		return nil
	}

	startTime := ""
	if !score.StartTime.IsZero() {
		startTime = score.StartTime.UTC().Format(time.RFC3339)
	}

	return &matchScoreDTO{
		ID:           score.MatchID,
		HomeTeam:     teamScoreToDTO(score.HomeTeam),
		AwayTeam:     teamScoreToDTO(score.AwayTeam),
		StatusState:  score.StatusState,
		StatusDetail: score.StatusDetail,
		Completed:    score.Completed,
		IsLive:       isLive,
		Clock:        score.Clock,
		Venue:        score.Venue,
		StartTime:    startTime,
	}
}

func teamScoreToDTO(team usecase.ExternalTeamScore) teamScoreDTO {
	return teamScoreDTO{
		Name:         team.Name,
		Abbreviation: team.Abbreviation,
		Logo:         team.Logo,
		Score:        team.Score,
	}
}

func streamToDTO(pointer stream.Pointer) *streamDTO {
	return &streamDTO{
		MatchID:     pointer.MatchID,
		Competition: pointer.Competition,
		VideoURL:    pointer.VideoURL,
		VideoID:     pointer.VideoID,
		StreamTitle: pointer.StreamTitle,
		IsLive:      pointer.IsLive,
		ViewerCount: pointer.ViewerCount,
		CreatedAt:   pointer.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   pointer.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func matchSummaryToDTO(summary commentary.MatchSummary) matchSummaryDTO {
	return matchSummaryDTO{
		MatchID:         summary.MatchID,
		Competition:     summary.Competition,
		HasCommentary:   summary.HasCommentary,
		HasPreMatch:     summary.HasPreMatch,
		CommentaryCount: summary.CommentaryCount,
		FirstSeen:       summary.FirstSeen.UTC().Format(time.RFC3339),
	}
}
