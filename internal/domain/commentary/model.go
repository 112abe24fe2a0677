package commentary

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultCompetition = "CAN"
	DefaultIcon        = "⚽"
	DefaultConfidence  = 1.0

	// A match is considered live for readers when the newest event is
	// younger than this window.
	LiveWindow = 5 * time.Minute

	HalfTimeSeconds = 45 * 60
	FullTimeSeconds = 90 * 60
)

const (
	TypeGoal       = "goal"
	TypeCard       = "card"
	TypeCommentary = "commentary"
)

// Event is one timestamped commentary item for a match in one locale,
// produced by the external commentary agent.
type Event struct {
	ID          int64
	MatchID     string
	EventID     string
	Competition string
	DisplayTime string
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
	CreatedAt   time.Time
}

// MatchSummary is the derived discovery projection: which matches carry any
// commentary or pre-match data and how much.
type MatchSummary struct {
	MatchID         string
	Competition     string
	HasCommentary   bool
	HasPreMatch     bool
	CommentaryCount int
	FirstSeen       time.Time
}

var clockRegex = regexp.MustCompile(`^(\d{1,3})'(?:\+(\d{1,2}))?$`)

// ClockSeconds converts a textual match clock to elapsed seconds.
// "45'" is 2700, "45'+2" is 2820, "HT" is 2700, "FT" is 5400. Anything
// unrecognized maps to zero so the event is still storable and sorts first.
func ClockSeconds(display string) int {
	display = strings.TrimSpace(display)
	switch strings.ToUpper(display) {
	case "HT":
		return HalfTimeSeconds
	case "FT":
		return FullTimeSeconds
	}

	match := clockRegex.FindStringSubmatch(display)
	if match == nil {
		return 0
	}

	minutes, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	stoppage := 0
	if match[2] != "" {
		stoppage, err = strconv.Atoi(match[2])
		if err != nil {
			return 0
		}
	}

	return (minutes + stoppage) * 60
}

// DeriveEventID builds a deterministic event id for producers that do not
// assign one, so resubmitting byte-identical content dedupes naturally.
func DeriveEventID(matchID, locale string, timeSeconds int, text string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%s", matchID, locale, timeSeconds, text)))
	return "gen-" + hex.EncodeToString(sum[:])[:20]
}

func NormalizeType(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return TypeCommentary
	}
	return value
}
