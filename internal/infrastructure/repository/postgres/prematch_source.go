package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/afriquefoot/matchlive/internal/domain/prematch"
	qb "github.com/afriquefoot/matchlive/internal/platform/querybuilder"
)

type prematchSignalRowModel struct {
	MatchID   string    `db:"match_id"`
	FirstSeen time.Time `db:"first_seen"`
}

// PrematchSource reads pre-match report rows published by the editorial
// pipeline. One signal per match regardless of how many locales exist.
type PrematchSource struct {
	db *sqlx.DB
}

func NewPrematchSource(db *sqlx.DB) *PrematchSource {
	return &PrematchSource{db: db}
}

func (s *PrematchSource) ListSignals(ctx context.Context) ([]prematch.Signal, error) {
	query, args, err := qb.Select(
		"match_id",
		"MIN(created_at) AS first_seen",
	).From("prematch_reports").
		GroupBy("match_id").
		OrderBy("MIN(created_at) DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list prematch signals query: %w", err)
	}

	var rows []prematchSignalRowModel
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list prematch signals: %w", err)
	}

	out := make([]prematch.Signal, 0, len(rows))
	for _, row := range rows {
		out = append(out, prematch.Signal{
			MatchID:   row.MatchID,
			FirstSeen: row.FirstSeen,
		})
	}

	return out, nil
}
