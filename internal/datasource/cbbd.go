package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/metrics"
	"github.com/yourusername/courtline/internal/models"
)

// CBBDClient implements Provider against the CollegeBasketballData API.
type CBBDClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	logger     *logrus.Entry

	mu        sync.Mutex
	teamNames map[int]string // teamID -> school name

	now func() time.Time
}

// NewCBBDClient creates a CBBD API client.
func NewCBBDClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, baseLogger *logrus.Logger) *CBBDClient {
	return &CBBDClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     baseLogger.WithField("component", "cbbd"),
		teamNames:  make(map[int]string),
		now:        time.Now,
	}
}

func (c *CBBDClient) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	err := c.doGet(ctx, op, path, query, out)
	if err != nil {
		metrics.RecordAPICall(op, "error")
		return err
	}
	metrics.RecordAPICall(op, "ok")
	return nil
}

func (c *CBBDClient) doGet(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return newSourceError(op, ErrCodeNetworkError, "creating request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return newSourceError(op, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return newSourceError(op, ErrCodeAuthFailed, "invalid API key", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return newSourceError(op, ErrCodeRateLimited, "rate limit exceeded", nil)
	case resp.StatusCode == http.StatusNotFound:
		return newSourceError(op, ErrCodeNotFound, "not found", nil)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return newSourceError(op, ErrCodeServerError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, body), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newSourceError(op, ErrCodeInvalidData, "parsing response", err)
	}
	return nil
}

// GamesByDate returns games for an Eastern-time calendar day.
func (c *CBBDClient) GamesByDate(ctx context.Context, date string, d1Only, upcomingOnly bool) ([]models.Game, error) {
	start, end, err := easternDayWindow(date)
	if err != nil {
		return nil, newSourceError("games_by_date", ErrCodeInvalidData, "invalid date "+date, err)
	}

	query := url.Values{}
	query.Set("season", fmt.Sprintf("%d", CurrentSeason(c.now())))
	query.Set("startDateRange", start.UTC().Format(time.RFC3339))
	query.Set("endDateRange", end.UTC().Format(time.RFC3339))

	var raw []cbbdGame
	if err := c.get(ctx, "games_by_date", "/games", query, &raw); err != nil {
		return nil, err
	}

	games := make([]models.Game, 0, len(raw))
	for _, rg := range raw {
		g := rg.toGame()
		if upcomingOnly && (statusFinal(g.Status) || g.Completed()) {
			continue
		}
		if d1Only && (g.HomeConference == "" || g.AwayConference == "") {
			continue
		}
		games = append(games, g)
	}

	c.logger.WithFields(logrus.Fields{"date": date, "games": len(games)}).Debug("Fetched games")
	return games, nil
}

// TeamStats returns a team's season statistics snapshot.
func (c *CBBDClient) TeamStats(ctx context.Context, teamID int) (*models.TeamSeasonStats, error) {
	teamName, err := c.teamName(ctx, teamID)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("season", fmt.Sprintf("%d", CurrentSeason(c.now())))
	query.Set("team", teamName)

	var raw []cbbdTeamSeasonStats
	if err := c.get(ctx, "team_stats", "/stats/team/season", query, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		// No published stats yet. The engine treats a zero snapshot as
		// "no data" and regresses toward league average.
		return &models.TeamSeasonStats{TeamID: teamID, Team: teamName}, nil
	}

	stats := raw[0].toTeamSeasonStats()
	stats.TeamID = teamID
	return stats, nil
}

// RecentGames returns the team's most recent completed games, oldest first.
func (c *CBBDClient) RecentGames(ctx context.Context, teamID int, limit int) ([]models.RecentGame, error) {
	teamName, err := c.teamName(ctx, teamID)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("season", fmt.Sprintf("%d", CurrentSeason(c.now())))
	query.Set("team", teamName)

	var raw []cbbdGame
	if err := c.get(ctx, "recent_games", "/games", query, &raw); err != nil {
		return nil, err
	}

	completed := make([]cbbdGame, 0, len(raw))
	for _, g := range raw {
		// Scheduled games carry nil or 0-0 scores; require at least one
		// team to have scored.
		if g.HomePoints == nil || g.AwayPoints == nil {
			continue
		}
		if *g.HomePoints == 0 && *g.AwayPoints == 0 {
			continue
		}
		completed = append(completed, g)
	}

	sort.Slice(completed, func(i, j int) bool {
		return completed[i].startTime().After(completed[j].startTime())
	})
	if len(completed) > limit {
		completed = completed[:limit]
	}

	// Newest-first from the sort above; the engine wants oldest to newest.
	recent := make([]models.RecentGame, 0, len(completed))
	for i := len(completed) - 1; i >= 0; i-- {
		recent = append(recent, completed[i].toRecentGame(teamID))
	}
	return recent, nil
}

// LinesForTeamDate returns market lines for the team's game on the date, or
// nil when no line is posted.
func (c *CBBDClient) LinesForTeamDate(ctx context.Context, teamName, date string) (*models.MarketLines, error) {
	start, end, err := easternDayWindow(date)
	if err != nil {
		return nil, newSourceError("lines", ErrCodeInvalidData, "invalid date "+date, err)
	}

	query := url.Values{}
	query.Set("season", fmt.Sprintf("%d", CurrentSeason(c.now())))
	query.Set("team", teamName)
	query.Set("startDateRange", start.UTC().Format(time.RFC3339))
	query.Set("endDateRange", end.UTC().Format(time.RFC3339))

	var raw []cbbdGameLines
	if err := c.get(ctx, "lines", "/lines", query, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw[0].toMarketLines(), nil
}

// teamName resolves a team ID to its school name, caching the full team list
// on first use.
func (c *CBBDClient) teamName(ctx context.Context, teamID int) (string, error) {
	c.mu.Lock()
	name, ok := c.teamNames[teamID]
	c.mu.Unlock()
	if ok {
		return name, nil
	}

	var teams []cbbdTeam
	if err := c.get(ctx, "teams", "/teams", nil, &teams); err != nil {
		return "", err
	}

	c.mu.Lock()
	for _, t := range teams {
		c.teamNames[t.ID] = t.School
	}
	name, ok = c.teamNames[teamID]
	c.mu.Unlock()

	if !ok {
		return "", newSourceError("teams", ErrCodeNotFound, fmt.Sprintf("unknown team id %d", teamID), nil)
	}
	return name, nil
}
