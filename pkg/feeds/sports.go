package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const espnDefaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"

// leaguePaths maps config league tags to ESPN scoreboard paths.
var leaguePaths = map[string]string{
	"nfl": "football/nfl",
	"nba": "basketball/nba",
	"mlb": "baseball/mlb",
	"nhl": "hockey/nhl",
	"mls": "soccer/usa.1",
	"epl": "soccer/eng.1",
}

// SportsFetcher pulls scoreboards for the configured leagues from the
// public ESPN site API.
type SportsFetcher struct {
	BaseURL string
	Leagues []string
	Client  *http.Client
}

// NewSportsFetcher returns a fetcher for the given league tags. Unknown
// tags are ignored at fetch time.
func NewSportsFetcher(leagues []string) *SportsFetcher {
	return &SportsFetcher{
		BaseURL: espnDefaultBaseURL,
		Leagues: leagues,
		Client:  http.DefaultClient,
	}
}

type espnScoreboard struct {
	Events []struct {
		Date         string `json:"date"`
		Status       struct {
			Type struct {
				ShortDetail string `json:"shortDetail"`
			} `json:"type"`
		} `json:"status"`
		Competitions []struct {
			Competitors []struct {
				HomeAway string `json:"homeAway"`
				Score    string `json:"score"`
				Team     struct {
					Abbreviation string `json:"abbreviation"`
				} `json:"team"`
			} `json:"competitors"`
		} `json:"competitions"`
	} `json:"events"`
}

// Fetch implements Fetcher. Returns []SportsEvent.
func (f *SportsFetcher) Fetch(ctx context.Context) (any, error) {
	var events []SportsEvent
	var lastErr error
	for _, league := range f.Leagues {
		path, ok := leaguePaths[league]
		if !ok {
			continue
		}
		leagueEvents, err := f.fetchLeague(ctx, league, path)
		if err != nil {
			lastErr = err
			continue
		}
		events = append(events, leagueEvents...)
	}
	if len(events) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("sports: %w", lastErr)
		}
		return nil, fmt.Errorf("sports: no games for configured leagues")
	}
	return events, nil
}

func (f *SportsFetcher) fetchLeague(ctx context.Context, league, path string) ([]SportsEvent, error) {
	url := fmt.Sprintf("%s/%s/scoreboard", f.BaseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("league %s: unexpected status %s", league, resp.Status)
	}

	var board espnScoreboard
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("league %s: decode: %w", league, err)
	}

	var events []SportsEvent
	for _, ev := range board.Events {
		if len(ev.Competitions) == 0 {
			continue
		}
		e := SportsEvent{
			League:    league,
			Status:    ev.Status.Type.ShortDetail,
			StartTime: ev.Date,
		}
		for _, c := range ev.Competitions[0].Competitors {
			score := 0
			fmt.Sscanf(c.Score, "%d", &score)
			if c.HomeAway == "home" {
				e.HomeTeam = c.Team.Abbreviation
				e.HomeScore = score
			} else {
				e.AwayTeam = c.Team.Abbreviation
				e.AwayScore = score
			}
		}
		events = append(events, e)
	}
	return events, nil
}
