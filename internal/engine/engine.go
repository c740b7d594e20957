// Package engine implements the statistical prediction model for college
// basketball spreads and totals. Predictions use a tempo-free projected
// score approach: adjusted efficiency ratings times expected pace, with
// regression toward league average that adapts to season progress.
package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/config"
	"github.com/yourusername/courtline/internal/models"
)

// StatsProvider supplies the team data the engine predicts from.
type StatsProvider interface {
	TeamStats(ctx context.Context, teamID int) (*models.TeamSeasonStats, error)
	// RecentGames returns up to limit completed games from the team's
	// perspective, ordered oldest to newest.
	RecentGames(ctx context.Context, teamID int, limit int) ([]models.RecentGame, error)
}

// Engine predicts spreads and totals for matchups.
type Engine struct {
	stats  StatsProvider
	cfg    config.ModelConfig
	logger *logrus.Entry
}

// New creates a prediction engine backed by the given stats provider.
func New(stats StatsProvider, cfg config.ModelConfig, baseLogger *logrus.Logger) *Engine {
	return &Engine{
		stats:  stats,
		cfg:    cfg,
		logger: baseLogger.WithField("component", "engine"),
	}
}

// matchup bundles everything the predictors need for one game.
type matchup struct {
	homeStats   *models.TeamSeasonStats
	awayStats   *models.TeamSeasonStats
	homeRecent  []models.RecentGame
	awayRecent  []models.RecentGame
	homeMetrics models.TeamMetrics
	awayMetrics models.TeamMetrics
	homeForm    models.FormMetrics
	awayForm    models.FormMetrics
}

// numRecent is the combined recent-game count used for sample-size scaling.
func (m *matchup) numRecent() int {
	return len(m.homeRecent) + len(m.awayRecent)
}

func (e *Engine) fetchMatchup(ctx context.Context, homeTeamID, awayTeamID int) (*matchup, error) {
	homeStats, err := e.stats.TeamStats(ctx, homeTeamID)
	if err != nil {
		return nil, fmt.Errorf("fetching home team stats: %w", err)
	}
	awayStats, err := e.stats.TeamStats(ctx, awayTeamID)
	if err != nil {
		return nil, fmt.Errorf("fetching away team stats: %w", err)
	}
	homeRecent, err := e.stats.RecentGames(ctx, homeTeamID, e.cfg.RecentGamesLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching home recent games: %w", err)
	}
	awayRecent, err := e.stats.RecentGames(ctx, awayTeamID, e.cfg.RecentGamesLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching away recent games: %w", err)
	}

	return &matchup{
		homeStats:   homeStats,
		awayStats:   awayStats,
		homeRecent:  homeRecent,
		awayRecent:  awayRecent,
		homeMetrics: DeriveMetrics(homeStats),
		awayMetrics: DeriveMetrics(awayStats),
		homeForm:    AnalyzeForm(homeRecent),
		awayForm:    AnalyzeForm(awayRecent),
	}, nil
}

// validatePace returns the pace if it falls inside the configured bounds,
// the default otherwise. Guards against bad feed data.
func (e *Engine) validatePace(pace float64) float64 {
	if pace <= 0 || pace < e.cfg.MinPace || pace > e.cfg.MaxPace {
		return e.cfg.DefaultPace
	}
	return pace
}

// validateRating returns the efficiency rating if plausible, the league
// default otherwise.
func (e *Engine) validateRating(rating float64) float64 {
	if rating <= 0 || rating < e.cfg.MinRating || rating > e.cfg.MaxRating {
		return e.cfg.DefaultRating
	}
	return rating
}

// expectedPace blends both teams' validated pace, weighting the home team
// slightly more.
func (e *Engine) expectedPace(m *matchup) (homePace, awayPace, gamePace float64) {
	homePace = e.validatePace(m.homeMetrics.Pace)
	awayPace = e.validatePace(m.awayMetrics.Pace)
	gamePace = homePace*e.cfg.HomePaceWeight + awayPace*(1-e.cfg.HomePaceWeight)
	return homePace, awayPace, gamePace
}

// projectedScores computes each side's projected points: adjusted offensive
// efficiency against the opponent's adjusted defense, scaled by pace. The
// home side gets the home court boost. regressionWeight is how much to trust
// raw ratings over the league average.
func (e *Engine) projectedScores(m *matchup, regressionWeight, gamePace float64) (homeProjected, awayProjected float64) {
	leagueAvg := e.cfg.LeagueAverageRating

	regress := func(rating float64) float64 {
		return rating*regressionWeight + leagueAvg*(1-regressionWeight)
	}

	homeOff := regress(e.validateRating(m.homeMetrics.OffensiveRating))
	awayDef := regress(e.validateRating(m.awayMetrics.DefensiveRating))
	awayOff := regress(e.validateRating(m.awayMetrics.OffensiveRating))
	homeDef := regress(e.validateRating(m.homeMetrics.DefensiveRating))

	// A defense below league average suppresses the opposing offense by the
	// same amount it beats the average.
	homeExpectedEff := homeOff + (awayDef - leagueAvg) + e.cfg.HomeCourtAdvantage
	awayExpectedEff := awayOff + (homeDef - leagueAvg)

	homeProjected = homeExpectedEff * gamePace / 100
	awayProjected = awayExpectedEff * gamePace / 100
	return homeProjected, awayProjected
}

// WinProbability converts a predicted spread into a straight-up win
// probability via a logistic curve, pulled toward even money when the model
// is less confident.
func WinProbability(predictedSpread, confidence float64) float64 {
	baseProb := 1 / (1 + math.Exp(-predictedSpread/7))
	return round3(0.5 + (baseProb-0.5)*confidence)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
