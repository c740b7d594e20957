package engine

import (
	"context"
	"math"
	"time"

	"github.com/yourusername/courtline/internal/models"
)

// PredictTotal predicts the combined score for a game using the same
// projected score methodology as the spread prediction, so the two stay
// consistent for a given matchup.
func (e *Engine) PredictTotal(ctx context.Context, homeTeamID, awayTeamID int, gctx *models.GameContext) (*models.Prediction, error) {
	m, err := e.fetchMatchup(ctx, homeTeamID, awayTeamID)
	if err != nil {
		return nil, err
	}

	numRecent := m.numRecent()
	homePace, awayPace, gamePace := e.expectedPace(m)

	regressionWeight := e.regressionWeight(m, gctx)

	homeProjected, awayProjected := e.projectedScores(m, regressionWeight, gamePace)
	predictedTotal := homeProjected + awayProjected

	predictedTotal *= earlySeasonTotalFactor(gctx)

	predictedTotal = clamp(predictedTotal, 110, 200)

	confidence := math.Max(0.35, (m.homeForm.Consistency+m.awayForm.Consistency)/2)
	if numRecent < 4 {
		confidence *= 0.88
	} else if numRecent < 8 {
		confidence *= 0.94
	}

	// Totals far from the league norm carry more variance.
	deviation := math.Abs(predictedTotal - e.cfg.LeagueAverageTotal)
	switch {
	case deviation > 30:
		confidence *= 0.80
	case deviation > 20:
		confidence *= 0.88
	case deviation > 15:
		confidence *= 0.94
	}

	// A large pace mismatch makes the realized tempo hard to call.
	if math.Abs(homePace-awayPace) > 15 {
		confidence *= 0.90
	}

	// Totals are harder to predict than spreads.
	confidence *= 0.92
	confidence = clamp(confidence, 0.35, 0.75)

	e.logger.WithFields(map[string]interface{}{
		"home_team_id": homeTeamID,
		"away_team_id": awayTeamID,
		"total":        round1(predictedTotal),
		"confidence":   round3(confidence),
	}).Debug("Total predicted")

	return &models.Prediction{
		Type:       models.BetTypeTotal,
		Value:      round1(predictedTotal),
		Confidence: round3(confidence),
	}, nil
}

// earlySeasonTotalFactor dampens November and early-December totals. Teams
// score less while rotations and offensive systems are still settling.
func earlySeasonTotalFactor(gctx *models.GameContext) float64 {
	if gctx == nil || gctx.StartDate == nil {
		return 1.0
	}
	switch {
	case gctx.StartDate.Month() == time.November:
		return 0.95
	case gctx.StartDate.Month() == time.December && gctx.StartDate.Day() <= 14:
		return 0.97
	default:
		return 1.0
	}
}
