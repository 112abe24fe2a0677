package stream

import (
	"net/url"
	"strings"
	"time"
)

// Pointer identifies the current live video source for a match. One row per
// match; upserts overwrite in place and no history is kept.
type Pointer struct {
	MatchID     string
	Competition string
	VideoURL    string
	VideoID     string
	StreamTitle string
	IsLive      bool
	ViewerCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WatchURL derives the canonical video URL from a bare video id.
func WatchURL(videoID string) string {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + videoID
}

// ParseVideoID extracts the video id from the common YouTube URL shapes:
// watch?v=, youtu.be/, embed/ and live/. Returns empty when none match.
func ParseVideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return ""
	}

	if id := strings.TrimSpace(parsed.Query().Get("v")); id != "" {
		return id
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	if host == "youtu.be" {
		return segments[0]
	}
	if len(segments) >= 2 && (segments[0] == "embed" || segments[0] == "live" || segments[0] == "shorts") {
		return segments[1]
	}
	return ""
}
