package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/courtline/internal/datasource"
	"github.com/yourusername/courtline/internal/logger"
	"github.com/yourusername/courtline/internal/metrics"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/repository"
)

// GradingSummary reports the outcome of one grading pass.
type GradingSummary struct {
	Date      string
	Graded    int
	Wins      int
	Losses    int
	Remaining int
}

// ResultsService grades stored picks against final scores.
type ResultsService struct {
	data     datasource.Provider
	picks    repository.PickRepository
	log      *logrus.Entry
	analysis *logger.AnalysisLogger
}

// NewResultsService creates a new results service
func NewResultsService(
	data datasource.Provider,
	picks repository.PickRepository,
	baseLogger *logrus.Logger,
) *ResultsService {
	return &ResultsService{
		data:     data,
		picks:    picks,
		log:      baseLogger.WithField("component", "results"),
		analysis: logger.NewAnalysisLogger(baseLogger),
	}
}

// UpdateResults grades every ungraded pick for the date whose game has a
// final score. Picks for games still in progress remain ungraded.
func (s *ResultsService) UpdateResults(ctx context.Context, date string) (*GradingSummary, error) {
	summary := &GradingSummary{Date: date}

	ungraded, err := s.picks.GetUngraded(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetching ungraded picks for %s: %w", date, err)
	}
	if len(ungraded) == 0 {
		s.log.WithField("date", date).Info("no picks to grade")
		return summary, nil
	}

	games, err := s.data.GamesByDate(ctx, date, false, false)
	if err != nil {
		return nil, fmt.Errorf("fetching games for %s: %w", date, err)
	}

	finals := make(map[int]*models.Game, len(games))
	for i := range games {
		if games[i].Completed() {
			finals[games[i].ID] = &games[i]
		}
	}

	for _, pick := range ungraded {
		game, ok := finals[pick.GameID]
		if !ok {
			summary.Remaining++
			continue
		}

		won := pick.Won(*game.HomeScore, *game.AwayScore)
		if err := s.picks.RecordResult(ctx, pick.ID, *game.HomeScore, *game.AwayScore, won); err != nil {
			return nil, fmt.Errorf("recording result for pick %s: %w", pick.ID, err)
		}

		metrics.RecordPickGraded(won)
		summary.Graded++
		if won {
			summary.Wins++
		} else {
			summary.Losses++
		}
	}

	s.analysis.LogResultsUpdate(date, summary.Graded, summary.Wins, summary.Losses)

	return summary, nil
}
