package postgres

import "time"

type streamTableModel struct {
	MatchID     string    `db:"match_id"`
	Competition string    `db:"competition"`
	VideoURL    string    `db:"video_url"`
	VideoID     string    `db:"video_id"`
	StreamTitle string    `db:"stream_title"`
	IsLive      bool      `db:"is_live"`
	ViewerCount int       `db:"viewer_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type streamInsertModel struct {
	MatchID     string `db:"match_id"`
	Competition string `db:"competition"`
	VideoURL    string `db:"video_url"`
	VideoID     string `db:"video_id"`
	StreamTitle string `db:"stream_title"`
	IsLive      bool   `db:"is_live"`
	ViewerCount int    `db:"viewer_count"`
}
