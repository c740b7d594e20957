package service

import (
	"context"
	"io"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/courtline/internal/config"
	"github.com/yourusername/courtline/internal/engine"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/selector"
)

// MockProvider mocks the datasource provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GamesByDate(ctx context.Context, date string, d1Only, upcomingOnly bool) ([]models.Game, error) {
	args := m.Called(ctx, date, d1Only, upcomingOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Game), args.Error(1)
}

func (m *MockProvider) TeamStats(ctx context.Context, teamID int) (*models.TeamSeasonStats, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamSeasonStats), args.Error(1)
}

func (m *MockProvider) RecentGames(ctx context.Context, teamID int, limit int) ([]models.RecentGame, error) {
	args := m.Called(ctx, teamID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecentGame), args.Error(1)
}

func (m *MockProvider) LinesForTeamDate(ctx context.Context, teamName, date string) (*models.MarketLines, error) {
	args := m.Called(ctx, teamName, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MarketLines), args.Error(1)
}

// MockPickRepository mocks pick persistence
type MockPickRepository struct {
	mock.Mock
}

func (m *MockPickRepository) Save(ctx context.Context, pick *models.Pick) error {
	args := m.Called(ctx, pick)
	return args.Error(0)
}

func (m *MockPickRepository) SaveBatch(ctx context.Context, picks []*models.Pick) (int, int, error) {
	args := m.Called(ctx, picks)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockPickRepository) GetByDate(ctx context.Context, date string, bestBetsOnly bool) ([]*models.Pick, error) {
	args := m.Called(ctx, date, bestBetsOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Pick), args.Error(1)
}

func (m *MockPickRepository) GetUngraded(ctx context.Context, date string) ([]*models.Pick, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Pick), args.Error(1)
}

func (m *MockPickRepository) MarkBestBets(ctx context.Context, date string, picks []*models.Pick) error {
	args := m.Called(ctx, date, picks)
	return args.Error(0)
}

func (m *MockPickRepository) LockStartedPicks(ctx context.Context, asOf time.Time) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPickRepository) RecordResult(ctx context.Context, id uuid.UUID, homeScore, awayScore int, won bool) error {
	args := m.Called(ctx, id, homeScore, awayScore, won)
	return args.Error(0)
}

func (m *MockPickRepository) GetGradedRange(ctx context.Context, startDate, endDate string) ([]*models.Pick, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Pick), args.Error(1)
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestAnalyzer(provider *MockProvider, repo *MockPickRepository) *AnalyzerService {
	log := discardLogger()
	eng := engine.New(provider, config.DefaultModelConfig(), log)
	sel := selector.New(config.DefaultSelectorConfig())
	return NewAnalyzerService(provider, eng, sel, repo, log)
}

func teamStats(teamID, games int, offRating, defRating float64) *models.TeamSeasonStats {
	return &models.TeamSeasonStats{
		TeamID:          teamID,
		Games:           games,
		Wins:            games / 2,
		Losses:          games - games/2,
		OffensiveRating: offRating,
		DefensiveRating: defRating,
		Pace:            70,
	}
}

func steadyRecentGames(n, score, oppScore int) []models.RecentGame {
	games := make([]models.RecentGame, n)
	for i := range games {
		games[i] = models.RecentGame{
			Date:          time.Now().AddDate(0, 0, -(n - i)),
			TeamScore:     score,
			OpponentScore: oppScore,
		}
	}
	return games
}

func scheduledGame(id int, start time.Time) models.Game {
	return models.Game{
		ID:             id,
		Season:         2025,
		StartDate:      &start,
		HomeTeam:       "Kansas",
		AwayTeam:       "Duke",
		HomeTeamID:     10,
		AwayTeamID:     20,
		HomeConference: "Big 12",
		AwayConference: "ACC",
		Status:         "scheduled",
	}
}

func postedLines() *models.MarketLines {
	return &models.MarketLines{
		Spread: &models.SpreadLine{HomeSpread: -3.0, AwaySpread: 3.0, HomeOdds: -110, AwayOdds: -110},
		Total:  &models.TotalLine{Line: 140.5, OverOdds: -110, UnderOdds: -110},
	}
}

func TestAnalyzeDateNoGames(t *testing.T) {
	provider := &MockProvider{}
	repo := &MockPickRepository{}
	provider.On("GamesByDate", mock.Anything, "2025-01-15", true, true).Return([]models.Game{}, nil)

	svc := newTestAnalyzer(provider, repo)
	summary, err := svc.AnalyzeDate(context.Background(), "2025-01-15", false)

	require.NoError(t, err)
	assert.Equal(t, 0, summary.Games)
	assert.Empty(t, summary.BestBets)
	repo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
}

func TestAnalyzeDateFullRun(t *testing.T) {
	provider := &MockProvider{}
	repo := &MockPickRepository{}

	start := time.Now().Add(3 * time.Hour)
	game := scheduledGame(101, start)
	provider.On("GamesByDate", mock.Anything, "2025-01-15", true, true).Return([]models.Game{game}, nil)
	provider.On("LinesForTeamDate", mock.Anything, "Kansas", "2025-01-15").Return(postedLines(), nil)
	provider.On("TeamStats", mock.Anything, 10).Return(teamStats(10, 18, 112, 98), nil)
	provider.On("TeamStats", mock.Anything, 20).Return(teamStats(20, 18, 105, 102), nil)
	provider.On("RecentGames", mock.Anything, 10, mock.Anything).Return(steadyRecentGames(10, 78, 70), nil)
	provider.On("RecentGames", mock.Anything, 20, mock.Anything).Return(steadyRecentGames(10, 72, 71), nil)

	repo.On("SaveBatch", mock.Anything, mock.Anything).Return(2, 0, nil)
	repo.On("LockStartedPicks", mock.Anything, mock.Anything).Return(int64(0), nil)
	repo.On("MarkBestBets", mock.Anything, "2025-01-15", mock.Anything).Return(nil)

	svc := newTestAnalyzer(provider, repo)
	summary, err := svc.AnalyzeDate(context.Background(), "2025-01-15", false)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Games)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 2, summary.Candidates)
	assert.Equal(t, 2, summary.Saved)
	assert.Len(t, summary.BestBets, 2)

	for _, pick := range summary.BestBets {
		assert.NotEqual(t, uuid.Nil, pick.ID)
		assert.Equal(t, "2025-01-15", pick.Date)
		assert.Equal(t, 101, pick.GameID)
		assert.Greater(t, pick.Score, 0.0)
	}
	repo.AssertExpectations(t)
}

func TestAnalyzeDateSkipsFailingGame(t *testing.T) {
	provider := &MockProvider{}
	repo := &MockPickRepository{}

	start := time.Now().Add(3 * time.Hour)
	good := scheduledGame(101, start)
	bad := scheduledGame(102, start)
	bad.HomeTeam = "Gonzaga"
	bad.HomeTeamID = 30

	provider.On("GamesByDate", mock.Anything, "2025-01-15", true, true).Return([]models.Game{good, bad}, nil)
	provider.On("LinesForTeamDate", mock.Anything, "Kansas", "2025-01-15").Return(postedLines(), nil)
	provider.On("LinesForTeamDate", mock.Anything, "Gonzaga", "2025-01-15").Return(postedLines(), nil)
	provider.On("TeamStats", mock.Anything, 10).Return(teamStats(10, 18, 112, 98), nil)
	provider.On("TeamStats", mock.Anything, 20).Return(teamStats(20, 18, 105, 102), nil)
	provider.On("TeamStats", mock.Anything, 30).Return(nil, models.ErrNotFound)
	provider.On("RecentGames", mock.Anything, mock.Anything, mock.Anything).Return(steadyRecentGames(10, 75, 70), nil)

	repo.On("SaveBatch", mock.Anything, mock.Anything).Return(2, 0, nil)
	repo.On("LockStartedPicks", mock.Anything, mock.Anything).Return(int64(1), nil)
	repo.On("MarkBestBets", mock.Anything, "2025-01-15", mock.Anything).Return(nil)

	svc := newTestAnalyzer(provider, repo)
	summary, err := svc.AnalyzeDate(context.Background(), "2025-01-15", false)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Games)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Candidates)
	assert.Equal(t, int64(1), summary.Locked)
}

func TestAnalyzeDateStartedGamesNotBestBets(t *testing.T) {
	provider := &MockProvider{}
	repo := &MockPickRepository{}

	start := time.Now().Add(-1 * time.Hour)
	game := scheduledGame(101, start)
	provider.On("GamesByDate", mock.Anything, "2025-01-15", true, true).Return([]models.Game{game}, nil)
	provider.On("LinesForTeamDate", mock.Anything, "Kansas", "2025-01-15").Return(postedLines(), nil)
	provider.On("TeamStats", mock.Anything, 10).Return(teamStats(10, 18, 112, 98), nil)
	provider.On("TeamStats", mock.Anything, 20).Return(teamStats(20, 18, 105, 102), nil)
	provider.On("RecentGames", mock.Anything, mock.Anything, mock.Anything).Return(steadyRecentGames(10, 75, 70), nil)

	repo.On("SaveBatch", mock.Anything, mock.Anything).Return(0, 2, nil)
	repo.On("LockStartedPicks", mock.Anything, mock.Anything).Return(int64(2), nil)
	repo.On("MarkBestBets", mock.Anything, "2025-01-15", mock.MatchedBy(func(picks []*models.Pick) bool {
		return len(picks) == 0
	})).Return(nil)

	svc := newTestAnalyzer(provider, repo)
	summary, err := svc.AnalyzeDate(context.Background(), "2025-01-15", false)

	require.NoError(t, err)
	assert.Empty(t, summary.BestBets)
	repo.AssertExpectations(t)
}

func TestAnalyzeDateUsesDefaultLinesWhenUnposted(t *testing.T) {
	provider := &MockProvider{}
	repo := &MockPickRepository{}

	start := time.Now().Add(3 * time.Hour)
	game := scheduledGame(101, start)
	provider.On("GamesByDate", mock.Anything, "2025-01-15", true, true).Return([]models.Game{game}, nil)
	provider.On("LinesForTeamDate", mock.Anything, "Kansas", "2025-01-15").Return(nil, nil)
	provider.On("TeamStats", mock.Anything, 10).Return(teamStats(10, 18, 112, 98), nil)
	provider.On("TeamStats", mock.Anything, 20).Return(teamStats(20, 18, 105, 102), nil)
	provider.On("RecentGames", mock.Anything, mock.Anything, mock.Anything).Return(steadyRecentGames(10, 75, 70), nil)

	var saved []*models.Pick
	repo.On("SaveBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]*models.Pick)
	}).Return(2, 0, nil)
	repo.On("LockStartedPicks", mock.Anything, mock.Anything).Return(int64(0), nil)
	repo.On("MarkBestBets", mock.Anything, "2025-01-15", mock.Anything).Return(nil)

	svc := newTestAnalyzer(provider, repo)
	_, err := svc.AnalyzeDate(context.Background(), "2025-01-15", false)

	require.NoError(t, err)
	require.NotEmpty(t, saved)
	for _, pick := range saved {
		if pick.BetType == models.BetTypeTotal {
			assert.Equal(t, 145.5, pick.Line)
		} else {
			assert.Equal(t, 5.5, math.Abs(pick.Line))
		}
		assert.Equal(t, -110, pick.Odds)
	}
}
