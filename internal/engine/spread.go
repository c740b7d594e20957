package engine

import (
	"context"
	"math"

	"github.com/yourusername/courtline/internal/models"
)

// PredictSpread predicts the point spread for a game. Positive values favor
// the home team. The game context is optional; when present its market line
// feeds the market-trust blend and its conferences feed the tier adjustment.
func (e *Engine) PredictSpread(ctx context.Context, homeTeamID, awayTeamID int, gctx *models.GameContext) (*models.Prediction, error) {
	m, err := e.fetchMatchup(ctx, homeTeamID, awayTeamID)
	if err != nil {
		return nil, err
	}

	numRecent := m.numRecent()
	_, _, gamePace := e.expectedPace(m)

	regressionWeight := e.dampenedRegressionWeight(m, gctx)

	homeProjected, awayProjected := e.projectedScores(m, regressionWeight, gamePace)

	// Small recent-form nudge, capped at five points either way.
	formAdjustment := (m.homeForm.AvgMargin - m.awayForm.AvgMargin) * 0.10
	formAdjustment = clamp(formAdjustment, -5, 5)

	predictedSpread := (homeProjected - awayProjected) + formAdjustment

	predictedSpread = e.blendTowardMarket(predictedSpread, numRecent, gctx)

	predictedSpread = clamp(predictedSpread, -50, 50)

	confidence := math.Max(0.40, (m.homeForm.Consistency+m.awayForm.Consistency)/2)
	if numRecent < 4 {
		confidence *= 0.90
	} else if numRecent < 8 {
		confidence *= 0.95
	}

	// Extreme spreads are more volatile.
	absSpread := math.Abs(predictedSpread)
	switch {
	case absSpread > 30:
		confidence *= 0.85
	case absSpread > 20:
		confidence *= 0.92
	case absSpread > 15:
		confidence *= 0.96
	}
	confidence = math.Min(confidence, 0.85)

	e.logger.WithFields(map[string]interface{}{
		"home_team_id": homeTeamID,
		"away_team_id": awayTeamID,
		"spread":       round1(predictedSpread),
		"confidence":   round3(confidence),
		"regression":   round3(regressionWeight),
	}).Debug("Spread predicted")

	return &models.Prediction{
		Type:       models.BetTypeSpread,
		Value:      round1(predictedSpread),
		Confidence: round3(confidence),
	}, nil
}

// dampenedRegressionWeight applies extra regression on top of the adaptive
// weight when the season sample is too thin to trust at all. Games played
// with no wins or losses recorded signal exhibition games or feed problems.
func (e *Engine) dampenedRegressionWeight(m *matchup, gctx *models.GameContext) float64 {
	base := e.regressionWeight(m, gctx)

	homeUnreliable := m.homeStats.Games > 0 && m.homeStats.Wins+m.homeStats.Losses == 0
	awayUnreliable := m.awayStats.Games > 0 && m.awayStats.Wins+m.awayStats.Losses == 0
	totalGames := m.homeStats.Games + m.awayStats.Games

	switch {
	case (homeUnreliable || awayUnreliable) && totalGames < 6:
		return base * 0.60
	case totalGames < 4:
		return base * 0.80
	default:
		return base
	}
}

// blendTowardMarket pulls the model spread toward the posted line when both
// agree on the favorite but the market is substantially more extreme. The
// model systematically underestimates blowouts early in the season; the
// market does not.
func (e *Engine) blendTowardMarket(predictedSpread float64, numRecent int, gctx *models.GameContext) float64 {
	mb := e.cfg.MarketBlend
	if gctx == nil || numRecent >= mb.MaxRecentGames {
		return predictedSpread
	}
	if gctx.Odds == nil || gctx.Odds.Spread == nil {
		return predictedSpread
	}

	marketSpread := gctx.Odds.Spread.HomeSpread

	// Sportsbook convention: negative home spread means home favored. The
	// model uses the opposite sign, positive favors home.
	marketFavorsHome := marketSpread < 0
	modelFavorsHome := predictedSpread > 0
	if marketFavorsHome != modelFavorsHome {
		return predictedSpread
	}

	marketMag := math.Abs(marketSpread)
	modelMag := math.Abs(predictedSpread)
	gap := marketMag - modelMag
	if gap <= mb.MinGap {
		return predictedSpread
	}

	gamesFactor := math.Max(0.3, (float64(mb.MaxRecentGames)-float64(numRecent))/float64(mb.MaxRecentGames))

	var blendFactor float64
	switch {
	case marketMag >= mb.ExtremeMagnitude:
		blendFactor = mb.ExtremeBase + gamesFactor*mb.ExtremeSpan
	case marketMag >= mb.BigMagnitude:
		blendFactor = mb.BigBase + gamesFactor*mb.BigSpan
	case marketMag >= mb.ModerateMagnitude:
		blendFactor = mb.ModerateBase + gamesFactor*mb.ModerateSpan
	default:
		blendFactor = mb.DefaultBase + gamesFactor*mb.DefaultSpan
	}

	adjustment := gap * blendFactor
	if marketFavorsHome {
		return predictedSpread + adjustment
	}
	return predictedSpread - adjustment
}
