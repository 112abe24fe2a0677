package postgres

import "time"

type commentaryTableModel struct {
	ID          int64     `db:"id"`
	MatchID     string    `db:"match_id"`
	EventID     string    `db:"event_id"`
	Competition string    `db:"competition"`
	DisplayTime string    `db:"display_time"`
	TimeSeconds int       `db:"time_seconds"`
	Locale      string    `db:"locale"`
	Text        string    `db:"text"`
	Type        string    `db:"type"`
	Team        string    `db:"team"`
	PlayerName  string    `db:"player_name"`
	PlayerImage string    `db:"player_image"`
	Icon        string    `db:"icon"`
	IsScoring   bool      `db:"is_scoring"`
	Confidence  float64   `db:"confidence"`
	CreatedAt   time.Time `db:"created_at"`
}

type commentaryInsertModel struct {
	MatchID     string  `db:"match_id"`
	EventID     string  `db:"event_id"`
	Competition string  `db:"competition"`
	DisplayTime string  `db:"display_time"`
	TimeSeconds int     `db:"time_seconds"`
	Locale      string  `db:"locale"`
	Text        string  `db:"text"`
	Type        string  `db:"type"`
	Team        string  `db:"team"`
	PlayerName  string  `db:"player_name"`
	PlayerImage string  `db:"player_image"`
	Icon        string  `db:"icon"`
	IsScoring   bool    `db:"is_scoring"`
	Confidence  float64 `db:"confidence"`
}

type matchSummaryRowModel struct {
	MatchID         string    `db:"match_id"`
	Competition     string    `db:"competition"`
	CommentaryCount int       `db:"commentary_count"`
	FirstSeen       time.Time `db:"first_seen"`
}
