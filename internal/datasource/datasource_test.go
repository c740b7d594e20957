package datasource

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/courtline/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestCurrentSeason(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"november start of season", time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC), 2025},
		{"january mid season", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), 2025},
		{"june offseason", time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), 2025},
		{"july flips to next season", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), 2026},
		{"october preseason", time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), 2026},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentSeason(tt.now))
		})
	}
}

func TestEasternDayWindow(t *testing.T) {
	start, end, err := easternDayWindow("2025-01-15")
	require.NoError(t, err)

	// Midnight Eastern is 05:00 UTC.
	assert.Equal(t, time.Date(2025, 1, 15, 5, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, time.Date(2025, 1, 16, 4, 59, 59, 0, time.UTC), end.UTC())

	_, _, err = easternDayWindow("not-a-date")
	assert.Error(t, err)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*CBBDClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := NewRateLimitedHTTPClient(HTTPClientConfig{
		Timeout:           5 * time.Second,
		MaxRetries:        0,
		RetryWaitMin:      time.Millisecond,
		RetryWaitMax:      time.Millisecond,
		RateLimit:         1000,
		CircuitBreakerMax: 5,
	}, testLogger())

	client := NewCBBDClient(httpClient, server.URL, "test-key", testLogger())
	client.now = func() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC) }
	return client, server
}

func intPtr(v int) *int         { return &v }
func strPtr(v string) *string   { return &v }
func f64Ptr(v float64) *float64 { return &v }

func TestGamesByDateFilters(t *testing.T) {
	games := []cbbdGame{
		{ID: 1, StartDate: "2025-01-15T23:00:00Z", HomeTeam: "Duke", AwayTeam: "UNC",
			HomeConference: strPtr("ACC"), AwayConference: strPtr("ACC"), Status: strPtr("SCHEDULED")},
		{ID: 2, StartDate: "2025-01-15T20:00:00Z", HomeTeam: "Kansas", AwayTeam: "Exhibition U",
			HomeConference: strPtr("Big 12"), Status: strPtr("SCHEDULED")}, // no away conference
		{ID: 3, StartDate: "2025-01-15T18:00:00Z", HomeTeam: "UCLA", AwayTeam: "Gonzaga",
			HomeConference: strPtr("Big Ten"), AwayConference: strPtr("West Coast"),
			HomePoints: intPtr(80), AwayPoints: intPtr(75), Status: strPtr("FINAL")},
	}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/games", r.URL.Path)
		assert.Equal(t, "2025", r.URL.Query().Get("season"))
		json.NewEncoder(w).Encode(games)
	})

	got, err := client.GamesByDate(context.Background(), "2025-01-15", true, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, "UNC @ Duke", got[0].Description())

	// Without the filters the exhibition and the final both come back.
	got, err = client.GamesByDate(context.Background(), "2025-01-15", false, false)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestGamesByDateAuthError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GamesByDate(context.Background(), "2025-01-15", true, true)
	require.Error(t, err)
	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, ErrCodeAuthFailed, srcErr.Code)
}

func TestRecentGamesOrderedOldestFirst(t *testing.T) {
	games := []cbbdGame{
		{ID: 1, StartDate: "2025-01-10T00:00:00Z", HomeTeamID: 7, AwayTeamID: 8,
			HomePoints: intPtr(70), AwayPoints: intPtr(65)},
		{ID: 2, StartDate: "2025-01-14T00:00:00Z", HomeTeamID: 9, AwayTeamID: 7,
			HomePoints: intPtr(80), AwayPoints: intPtr(78)},
		{ID: 3, StartDate: "2025-01-20T00:00:00Z", HomeTeamID: 7, AwayTeamID: 9}, // scheduled
		{ID: 4, StartDate: "2025-01-05T00:00:00Z", HomeTeamID: 7, AwayTeamID: 10,
			HomePoints: intPtr(0), AwayPoints: intPtr(0)}, // bad data
	}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teams":
			json.NewEncoder(w).Encode([]cbbdTeam{{ID: 7, School: "Villanova"}})
		case "/games":
			json.NewEncoder(w).Encode(games)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	recent, err := client.RecentGames(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// Oldest first, each from team 7's perspective.
	assert.True(t, recent[0].Date.Before(recent[1].Date))
	assert.True(t, recent[0].Home)
	assert.Equal(t, 70, recent[0].TeamScore)
	assert.Equal(t, 65, recent[0].OpponentScore)
	assert.False(t, recent[1].Home)
	assert.Equal(t, 78, recent[1].TeamScore)
	assert.Equal(t, -2, recent[1].Margin())
}

func TestTeamStatsNormalization(t *testing.T) {
	stats := []cbbdTeamSeasonStats{{
		TeamID: 7, Team: "Villanova", Conference: strPtr("Big East"),
		Season: 2025, Games: 10, Wins: 7, Losses: 3,
		Pace: f64Ptr(68.5),
		TeamStats: &cbbdSideStats{
			Points:       &cbbdCountStat{Total: 780},
			FieldGoals:   &cbbdCountStat{Pct: 46.0},
			Rating:       f64Ptr(112.3),
			TrueShooting: f64Ptr(57.5),
			FourFactors:  &cbbdFourFactors{EffectiveFieldGoalPct: f64Ptr(52.0)},
		},
		OpponentStats: &cbbdSideStats{
			Points: &cbbdCountStat{Total: 700},
			Rating: f64Ptr(98.2),
		},
	}}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teams":
			json.NewEncoder(w).Encode([]cbbdTeam{{ID: 7, School: "Villanova"}})
		case "/stats/team/season":
			assert.Equal(t, "Villanova", r.URL.Query().Get("team"))
			json.NewEncoder(w).Encode(stats)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	got, err := client.TeamStats(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 7, got.TeamID)
	assert.Equal(t, "Big East", got.Conference)
	assert.Equal(t, 10, got.Games)
	assert.InDelta(t, 78.0, got.PointsPerGame, 0.001)
	assert.InDelta(t, 70.0, got.OpponentPointsPerGame, 0.001)
	assert.InDelta(t, 0.46, got.FieldGoalPct, 0.001)
	assert.InDelta(t, 112.3, got.OffensiveRating, 0.001)
	assert.InDelta(t, 98.2, got.DefensiveRating, 0.001)
	assert.InDelta(t, 0.575, got.TrueShootingPct, 0.001)
	assert.InDelta(t, 68.5, got.Pace, 0.001)
	assert.InDelta(t, 0.52, got.FourFactors.EffectiveFGPct, 0.001)
}

func TestTeamStatsEmptyResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/teams":
			json.NewEncoder(w).Encode([]cbbdTeam{{ID: 7, School: "Villanova"}})
		default:
			json.NewEncoder(w).Encode([]cbbdTeamSeasonStats{})
		}
	})

	got, err := client.TeamStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, got.TeamID)
	assert.Equal(t, 0, got.Games)
}

func TestLinesForTeamDate(t *testing.T) {
	lines := []cbbdGameLines{{
		GameID: 42, HomeTeam: "Duke", AwayTeam: "UNC",
		Lines: []cbbdLine{
			{Provider: strPtr("consensus"), Spread: f64Ptr(-6.5), OverUnder: f64Ptr(148.5)},
		},
	}}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(lines)
	})

	got, err := client.LinesForTeamDate(context.Background(), "Duke", "2025-01-15")
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NotNil(t, got.Spread)
	assert.Equal(t, -6.5, got.Spread.HomeSpread)
	assert.Equal(t, 6.5, got.Spread.AwaySpread)
	assert.Equal(t, -110, got.Spread.HomeOdds)

	require.NotNil(t, got.Total)
	assert.Equal(t, 148.5, got.Total.Line)
}

func TestLinesZeroSpreadTreatedAsMissing(t *testing.T) {
	lines := []cbbdGameLines{{
		GameID: 42,
		Lines:  []cbbdLine{{Spread: f64Ptr(0), OverUnder: f64Ptr(0)}},
	}}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(lines)
	})

	got, err := client.LinesForTeamDate(context.Background(), "Duke", "2025-01-15")
	require.NoError(t, err)
	assert.Nil(t, got)
}

type countingProvider struct {
	statsCalls  int
	recentCalls int
}

func (p *countingProvider) GamesByDate(context.Context, string, bool, bool) ([]models.Game, error) {
	return nil, nil
}

func (p *countingProvider) LinesForTeamDate(context.Context, string, string) (*models.MarketLines, error) {
	return nil, nil
}

func (p *countingProvider) TeamStats(_ context.Context, teamID int) (*models.TeamSeasonStats, error) {
	p.statsCalls++
	return &models.TeamSeasonStats{TeamID: teamID}, nil
}

func (p *countingProvider) RecentGames(_ context.Context, teamID, _ int) ([]models.RecentGame, error) {
	p.recentCalls++
	return []models.RecentGame{{TeamScore: 70, OpponentScore: 65}}, nil
}

func TestCachedProvider(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, DefaultCacheConfig(), testLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := cached.TeamStats(ctx, 7)
		require.NoError(t, err)
		_, err = cached.RecentGames(ctx, 7, 10)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, inner.statsCalls)
	assert.Equal(t, 1, inner.recentCalls)

	hits, misses := cached.Stats()
	assert.Equal(t, int64(4), hits)
	assert.Equal(t, int64(2), misses)

	// Different team is a fresh fetch.
	_, err := cached.TeamStats(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.statsCalls)

	cached.Flush()
	_, err = cached.TeamStats(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, inner.statsCalls)
}
