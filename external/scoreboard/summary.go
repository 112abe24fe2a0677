package scoreboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/afriquefoot/matchlive/internal/usecase"
)

type summaryEnvelope struct {
	Header struct {
		ID           string `json:"id"`
		Competitions []struct {
			Date        string `json:"date"`
			Competitors []struct {
				HomeAway string `json:"homeAway"`
				Score    string `json:"score"`
				Team     struct {
					DisplayName  string `json:"displayName"`
					Abbreviation string `json:"abbreviation"`
					Logo         string `json:"logo"`
				} `json:"team"`
			} `json:"competitors"`
			Status struct {
				DisplayClock string `json:"displayClock"`
				Type         struct {
					State     string `json:"state"`
					Detail    string `json:"detail"`
					Completed bool   `json:"completed"`
				} `json:"type"`
			} `json:"status"`
		} `json:"competitions"`
	} `json:"header"`
	GameInfo struct {
		Venue struct {
			FullName string `json:"fullName"`
		} `json:"venue"`
	} `json:"gameInfo"`
}

func mapSummaryToScore(matchID string, envelope summaryEnvelope) (usecase.ExternalMatchScore, error) {
	if len(envelope.Header.Competitions) == 0 {
		return usecase.ExternalMatchScore{}, fmt.Errorf("feed payload has no competitions")
	}

	competition := envelope.Header.Competitions[0]
	out := usecase.ExternalMatchScore{
		MatchID:      matchID,
		StatusState:  strings.ToLower(strings.TrimSpace(competition.Status.Type.State)),
		StatusDetail: strings.TrimSpace(competition.Status.Type.Detail),
		Completed:    competition.Status.Type.Completed,
		Clock:        strings.TrimSpace(competition.Status.DisplayClock),
		Venue:        strings.TrimSpace(envelope.GameInfo.Venue.FullName),
	}

	if parsed := parseFeedDateTime(competition.Date); parsed != nil {
		out.StartTime = *parsed
	}

	for _, competitor := range competition.Competitors {
		side := usecase.ExternalTeamScore{
			Name:         strings.TrimSpace(competitor.Team.DisplayName),
			Abbreviation: strings.TrimSpace(competitor.Team.Abbreviation),
			Logo:         strings.TrimSpace(competitor.Team.Logo),
			Score:        parseScoreValue(competitor.Score),
		}
		switch strings.ToLower(strings.TrimSpace(competitor.HomeAway)) {
		case "home":
			out.HomeTeam = side
		case "away":
			out.AwayTeam = side
		}
	}

	if out.HomeTeam.Name == "" && out.AwayTeam.Name == "" {
		return usecase.ExternalMatchScore{}, fmt.Errorf("feed payload has no competitors")
	}

	return out, nil
}

func parseScoreValue(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0
	}
	return value
}

func parseFeedDateTime(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04:05Z0700",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}
