package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/afriquefoot/matchlive/internal/domain/commentary"
	qb "github.com/afriquefoot/matchlive/internal/platform/querybuilder"
)

type CommentaryRepository struct {
	db *sqlx.DB
}

func NewCommentaryRepository(db *sqlx.DB) *CommentaryRepository {
	return &CommentaryRepository{db: db}
}

func (r *CommentaryRepository) Upsert(ctx context.Context, event commentary.Event) (commentary.Event, error) {
	insertModel := commentaryInsertModel{
		MatchID:     event.MatchID,
		EventID:     event.EventID,
		Competition: event.Competition,
		DisplayTime: event.DisplayTime,
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
	}

	query, args, err := qb.InsertModel("match_commentary", insertModel, `ON CONFLICT (match_id, event_id)
DO UPDATE SET
    display_time = EXCLUDED.display_time,
    time_seconds = EXCLUDED.time_seconds,
    locale = EXCLUDED.locale,
    text = EXCLUDED.text,
    type = EXCLUDED.type,
    team = EXCLUDED.team,
    player_name = EXCLUDED.player_name,
    player_image = EXCLUDED.player_image,
    icon = EXCLUDED.icon,
    is_scoring = EXCLUDED.is_scoring,
    confidence = EXCLUDED.confidence
RETURNING id, created_at`)
	if err != nil {
		return commentary.Event{}, fmt.Errorf("build upsert commentary query: %w", err)
	}

	row := r.db.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&event.ID, &event.CreatedAt); err != nil {
		return commentary.Event{}, fmt.Errorf("upsert commentary match=%s event=%s: %w", event.MatchID, event.EventID, err)
	}

	return event, nil
}

func (r *CommentaryRepository) ListByMatch(ctx context.Context, matchID, locale string, limit int) ([]commentary.Event, error) {
	builder := qb.Select("*").From("match_commentary").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("time_seconds DESC", "created_at DESC", "id DESC").
		Limit(limit)
	if locale != "" {
		builder = builder.Where(qb.Eq("locale", locale))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list commentary query: %w", err)
	}

	var rows []commentaryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list commentary match=%s: %w", matchID, err)
	}

	out := make([]commentary.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, commentary.Event{
			ID:          row.ID,
			MatchID:     row.MatchID,
			EventID:     row.EventID,
			Competition: row.Competition,
			DisplayTime: row.DisplayTime,
			TimeSeconds: row.TimeSeconds,
			Locale:      row.Locale,
			Text:        row.Text,
			Type:        row.Type,
			Team:        row.Team,
			PlayerName:  row.PlayerName,
			PlayerImage: row.PlayerImage,
			Icon:        row.Icon,
			IsScoring:   row.IsScoring,
			Confidence:  row.Confidence,
			CreatedAt:   row.CreatedAt,
		})
	}

	return out, nil
}

func (r *CommentaryRepository) ListMatchSummaries(ctx context.Context) ([]commentary.MatchSummary, error) {
	query, args, err := qb.Select(
		"match_id",
		"MIN(competition) AS competition",
		"COUNT(*) AS commentary_count",
		"MIN(created_at) AS first_seen",
	).From("match_commentary").
		GroupBy("match_id").
		OrderBy("MIN(created_at) DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match summaries query: %w", err)
	}

	var rows []matchSummaryRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match summaries: %w", err)
	}

	out := make([]commentary.MatchSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, commentary.MatchSummary{
			MatchID:         row.MatchID,
			Competition:     row.Competition,
			HasCommentary:   row.CommentaryCount > 0,
			CommentaryCount: row.CommentaryCount,
			FirstSeen:       row.FirstSeen,
		})
	}

	return out, nil
}
