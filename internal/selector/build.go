package selector

import (
	"fmt"
	"math"
	"time"

	"github.com/yourusername/courtline/internal/models"
)

func gameStart(game *models.Game) time.Time {
	if game.StartDate != nil {
		return *game.StartDate
	}
	return time.Time{}
}

// BetsFromPrediction builds candidate picks from a prediction against the
// posted market lines. Returns nil when the relevant line is missing. The
// caller fills identity fields (ID, Date, timestamps) before persisting.
func BetsFromPrediction(game *models.Game, pred *models.Prediction, lines *models.MarketLines) []*models.Pick {
	if lines == nil {
		return nil
	}
	switch pred.Type {
	case models.BetTypeSpread:
		if lines.Spread == nil {
			return nil
		}
		return []*models.Pick{spreadPick(game, pred, lines.Spread)}
	case models.BetTypeTotal:
		if lines.Total == nil {
			return nil
		}
		return []*models.Pick{totalPick(game, pred, lines.Total)}
	default:
		return nil
	}
}

// spreadPick chooses the side with value: back the model's favorite when it
// projects a bigger win than the market line, otherwise take the points on
// the other side.
func spreadPick(game *models.Game, pred *models.Prediction, line *models.SpreadLine) *models.Pick {
	var (
		team   string
		spread float64
		odds   int
		edge   float64
	)

	if pred.Value > 0 {
		// Model favors home.
		if pred.Value > math.Abs(line.HomeSpread) {
			team = game.HomeTeam
			spread = line.HomeSpread
			odds = line.HomeOdds
			edge = pred.Value - line.HomeSpread
		} else {
			team = game.AwayTeam
			spread = line.AwaySpread
			odds = line.AwayOdds
			edge = line.AwaySpread - pred.Value
		}
	} else {
		// Model favors away (or sees an even game).
		if math.Abs(pred.Value) > math.Abs(line.AwaySpread) {
			team = game.AwayTeam
			spread = line.AwaySpread
			odds = line.AwayOdds
			edge = math.Abs(pred.Value) - math.Abs(line.AwaySpread)
		} else {
			team = game.HomeTeam
			spread = line.HomeSpread
			odds = line.HomeOdds
			edge = line.HomeSpread + math.Abs(pred.Value)
		}
	}

	var reasoning string
	switch {
	case pred.Value > 0:
		reasoning = fmt.Sprintf("Model predicts %s by %.1f", game.HomeTeam, math.Abs(pred.Value))
	case pred.Value < 0:
		reasoning = fmt.Sprintf("Model predicts %s by %.1f", game.AwayTeam, math.Abs(pred.Value))
	default:
		reasoning = "Model predicts even game"
	}

	return &models.Pick{
		GameID:          game.ID,
		GameDescription: game.Description(),
		HomeTeam:        game.HomeTeam,
		AwayTeam:        game.AwayTeam,
		GameStart:       gameStart(game),
		BetType:         models.BetTypeSpread,
		Selection:       team,
		Line:            spread,
		Pick:            models.FormatSpreadPick(team, spread),
		Odds:            odds,
		ValueRating:     SpreadEdgeValueRating(edge),
		Confidence:      adjustConfidenceForEdge(pred.Confidence, edge, models.BetTypeSpread),
		Edge:            edge,
		Reasoning:       reasoning,
	}
}

// totalPick takes the over when the model projects above the line, the
// under otherwise. A projection exactly on the line yields an under with
// zero edge, which the value curve rates as no edge.
func totalPick(game *models.Game, pred *models.Prediction, line *models.TotalLine) *models.Pick {
	var (
		selection string
		odds      int
		edge      float64
	)

	if pred.Value > line.Line {
		selection = models.SelectionOver
		odds = line.OverOdds
		edge = pred.Value - line.Line
	} else {
		selection = models.SelectionUnder
		odds = line.UnderOdds
		edge = line.Line - pred.Value
	}

	reasoning := fmt.Sprintf("Model predicts %.1f (%s %.1f by %.1f)", pred.Value, selection, line.Line, edge)

	return &models.Pick{
		GameID:          game.ID,
		GameDescription: game.Description(),
		HomeTeam:        game.HomeTeam,
		AwayTeam:        game.AwayTeam,
		GameStart:       gameStart(game),
		BetType:         models.BetTypeTotal,
		Selection:       selection,
		Line:            line.Line,
		Pick:            models.FormatTotalPick(selection, line.Line),
		Odds:            odds,
		ValueRating:     TotalEdgeValueRating(edge),
		Confidence:      adjustConfidenceForEdge(pred.Confidence, edge, models.BetTypeTotal),
		Edge:            edge,
		Reasoning:       reasoning,
	}
}
