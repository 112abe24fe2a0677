package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/afriquefoot/matchlive/internal/domain/stream"
	qb "github.com/afriquefoot/matchlive/internal/platform/querybuilder"
)

type StreamRepository struct {
	db *sqlx.DB
}

func NewStreamRepository(db *sqlx.DB) *StreamRepository {
	return &StreamRepository{db: db}
}

func (r *StreamRepository) Get(ctx context.Context, matchID string) (stream.Pointer, bool, error) {
	query, args, err := qb.Select("*").From("match_streams").
		Where(qb.Eq("match_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return stream.Pointer{}, false, fmt.Errorf("build get stream query: %w", err)
	}

	var row streamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stream.Pointer{}, false, nil
		}
		return stream.Pointer{}, false, fmt.Errorf("get stream match=%s: %w", matchID, err)
	}

	return streamFromRow(row), true, nil
}

func (r *StreamRepository) Upsert(ctx context.Context, pointer stream.Pointer) (stream.Pointer, error) {
	insertModel := streamInsertModel{
		MatchID:     pointer.MatchID,
		Competition: pointer.Competition,
		VideoURL:    pointer.VideoURL,
		VideoID:     pointer.VideoID,
		StreamTitle: pointer.StreamTitle,
		IsLive:      pointer.IsLive,
		ViewerCount: pointer.ViewerCount,
	}

	query, args, err := qb.InsertModel("match_streams", insertModel, `ON CONFLICT (match_id)
DO UPDATE SET
    competition = EXCLUDED.competition,
    video_url = EXCLUDED.video_url,
    video_id = EXCLUDED.video_id,
    stream_title = EXCLUDED.stream_title,
    is_live = EXCLUDED.is_live,
    viewer_count = EXCLUDED.viewer_count,
    updated_at = NOW()
RETURNING created_at, updated_at`)
	if err != nil {
		return stream.Pointer{}, fmt.Errorf("build upsert stream query: %w", err)
	}

	row := r.db.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&pointer.CreatedAt, &pointer.UpdatedAt); err != nil {
		return stream.Pointer{}, fmt.Errorf("upsert stream match=%s: %w", pointer.MatchID, err)
	}

	return pointer, nil
}

func (r *StreamRepository) Delete(ctx context.Context, matchID string) error {
	query, args, err := qb.DeleteFrom("match_streams").
		Where(qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete stream query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete stream match=%s: %w", matchID, err)
	}

	return nil
}

func streamFromRow(row streamTableModel) stream.Pointer {
	return stream.Pointer{
		MatchID:     row.MatchID,
		Competition: row.Competition,
		VideoURL:    row.VideoURL,
		VideoID:     row.VideoID,
		StreamTitle: row.StreamTitle,
		IsLive:      row.IsLive,
		ViewerCount: row.ViewerCount,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
