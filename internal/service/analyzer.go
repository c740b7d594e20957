// Package service wires the data source, prediction engine, selector and
// repository into the daily analysis and grading workflows.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/courtline/internal/datasource"
	"github.com/yourusername/courtline/internal/engine"
	"github.com/yourusername/courtline/internal/logger"
	"github.com/yourusername/courtline/internal/metrics"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/repository"
	"github.com/yourusername/courtline/internal/selector"
)

// Fallback lines used when the market has not posted a game. The model still
// produces a pick against these so early-season games are not dropped.
const (
	defaultHomeSpread = -5.5
	defaultTotalLine  = 145.5
	defaultJuice      = -110
)

// AnalysisSummary reports the outcome of one analysis run.
type AnalysisSummary struct {
	Date       string
	Games      int
	Skipped    int
	Candidates int
	Saved      int
	NotSaved   int
	Locked     int64
	BestBets   []*models.Pick
}

// AnalyzerService runs the daily prediction pipeline: fetch the slate,
// predict every game, build candidate picks, persist them, lock picks for
// games that have tipped off, and flag the best bets.
type AnalyzerService struct {
	data     datasource.Provider
	engine   *engine.Engine
	selector *selector.Selector
	picks    repository.PickRepository
	log      *logrus.Entry
	analysis *logger.AnalysisLogger
	now      func() time.Time
}

// NewAnalyzerService creates a new analyzer service
func NewAnalyzerService(
	data datasource.Provider,
	eng *engine.Engine,
	sel *selector.Selector,
	picks repository.PickRepository,
	baseLogger *logrus.Logger,
) *AnalyzerService {
	return &AnalyzerService{
		data:     data,
		engine:   eng,
		selector: sel,
		picks:    picks,
		log:      baseLogger.WithField("component", "analyzer"),
		analysis: logger.NewAnalysisLogger(baseLogger),
		now:      time.Now,
	}
}

// AnalyzeDate runs the full pipeline for one date. When allGames is false,
// games already final are excluded from the slate.
func (s *AnalyzerService) AnalyzeDate(ctx context.Context, date string, allGames bool) (*AnalysisSummary, error) {
	started := s.now()
	summary := &AnalysisSummary{Date: date}

	games, err := s.data.GamesByDate(ctx, date, true, !allGames)
	if err != nil {
		return nil, fmt.Errorf("fetching games for %s: %w", date, err)
	}
	summary.Games = len(games)

	if len(games) == 0 {
		s.log.WithField("date", date).Info("no games to analyze")
		return summary, nil
	}

	var candidates []*models.Pick
	for i := range games {
		game := &games[i]
		picks, err := s.analyzeGame(ctx, date, game)
		if err != nil {
			summary.Skipped++
			metrics.RecordGameSkipped("prediction_error")
			s.log.WithError(err).WithFields(logrus.Fields{
				"game_id": game.ID,
				"matchup": game.Description(),
			}).Warn("skipping game")
			continue
		}
		candidates = append(candidates, picks...)
	}
	summary.Candidates = len(candidates)

	saved, skipped, err := s.picks.SaveBatch(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("saving picks for %s: %w", date, err)
	}
	summary.Saved = saved
	summary.NotSaved = skipped

	locked, err := s.picks.LockStartedPicks(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("locking started picks: %w", err)
	}
	summary.Locked = locked
	metrics.UpdateLockedPicks(locked)

	best, err := s.selectBestBets(ctx, date, candidates)
	if err != nil {
		return nil, err
	}
	summary.BestBets = best

	metrics.RecordAnalysisRun(summary.Games, summary.Candidates, s.now().Sub(started).Seconds())
	s.log.WithFields(logrus.Fields{
		"date":       date,
		"games":      summary.Games,
		"candidates": summary.Candidates,
		"saved":      summary.Saved,
		"locked":     summary.Locked,
		"best_bets":  len(summary.BestBets),
	}).Info("analysis run complete")

	return summary, nil
}

// analyzeGame predicts both markets for one game and builds candidate picks
// for every prediction that clears the confidence floor.
func (s *AnalyzerService) analyzeGame(ctx context.Context, date string, game *models.Game) ([]*models.Pick, error) {
	lines, err := s.data.LinesForTeamDate(ctx, game.HomeTeam, date)
	if err != nil {
		return nil, fmt.Errorf("fetching lines: %w", err)
	}
	if lines == nil {
		lines = defaultLines()
	}

	gctx := &models.GameContext{
		HomeConference: game.HomeConference,
		AwayConference: game.AwayConference,
		StartDate:      game.StartDate,
		Odds:           lines,
	}

	predStart := s.now()
	spread, err := s.engine.PredictSpread(ctx, game.HomeTeamID, game.AwayTeamID, gctx)
	if err != nil {
		return nil, fmt.Errorf("predicting spread: %w", err)
	}
	total, err := s.engine.PredictTotal(ctx, game.HomeTeamID, game.AwayTeamID, gctx)
	if err != nil {
		return nil, fmt.Errorf("predicting total: %w", err)
	}
	metrics.RecordGameAnalyzed()
	metrics.RecordPredictionDuration(s.now().Sub(predStart).Seconds())

	s.analysis.LogGamePrediction(game.ID, game.Description(),
		spread.Value, spread.Confidence, total.Value, total.Confidence)

	var picks []*models.Pick
	for _, pred := range []*models.Prediction{spread, total} {
		if !s.selector.MeetsConfidenceFloor(pred.Confidence) {
			continue
		}
		for _, pick := range selector.BetsFromPrediction(game, pred, lines) {
			pick.ID = uuid.New()
			pick.Date = date
			pick.CreatedAt = s.now()
			pick.UpdatedAt = pick.CreatedAt
			metrics.RecordPickCreated(string(pick.BetType), pick.Confidence)
			s.analysis.LogPickCreated(pick.GameID, string(pick.BetType), pick.Pick,
				pick.Odds, pick.ValueRating, pick.Confidence)
			picks = append(picks, pick)
		}
	}

	return picks, nil
}

// selectBestBets ranks candidates from games that have not tipped off and
// persists the best-bet flags.
func (s *AnalyzerService) selectBestBets(ctx context.Context, date string, candidates []*models.Pick) ([]*models.Pick, error) {
	now := s.now()
	eligible := make([]*models.Pick, 0, len(candidates))
	for _, pick := range candidates {
		if pick.GameStart.IsZero() || pick.GameStart.After(now) {
			eligible = append(eligible, pick)
		}
	}

	best := s.selector.SelectBestBets(eligible)
	if err := s.picks.MarkBestBets(ctx, date, best); err != nil {
		return nil, fmt.Errorf("marking best bets: %w", err)
	}
	metrics.RecordBestBets(len(best))

	var topScore float64
	if len(best) > 0 {
		topScore = best[0].Score
	}
	s.analysis.LogBestBets(date, len(eligible), len(best), topScore)

	return best, nil
}

func defaultLines() *models.MarketLines {
	return &models.MarketLines{
		Spread: &models.SpreadLine{
			HomeSpread: defaultHomeSpread,
			AwaySpread: -defaultHomeSpread,
			HomeOdds:   defaultJuice,
			AwayOdds:   defaultJuice,
		},
		Total: &models.TotalLine{
			Line:      defaultTotalLine,
			OverOdds:  defaultJuice,
			UnderOdds: defaultJuice,
		},
	}
}
