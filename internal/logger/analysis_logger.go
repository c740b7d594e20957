// Package logger provides analysis-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AnalysisLogger provides dedicated logging for prediction and pick events.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: baseLogger.WithField("component", "analysis"),
	}
}

// LogGamePrediction logs the model output for one game.
func (al *AnalysisLogger) LogGamePrediction(gameID int, matchup string, spread, spreadConfidence, total, totalConfidence float64) {
	al.WithFields(logrus.Fields{
		"game_id":           gameID,
		"matchup":           matchup,
		"spread":            spread,
		"spread_confidence": spreadConfidence,
		"total":             total,
		"total_confidence":  totalConfidence,
	}).Info("Game prediction generated")
}

// LogPickCreated logs a candidate pick built from a prediction.
func (al *AnalysisLogger) LogPickCreated(gameID int, betType, pick string, oddsPrice int, valueRating, confidence float64) {
	al.WithFields(logrus.Fields{
		"game_id":      gameID,
		"bet_type":     betType,
		"pick":         pick,
		"odds":         oddsPrice,
		"value_rating": valueRating,
		"confidence":   confidence,
	}).Debug("Pick created")
}

// LogBestBets logs the outcome of a best-bet selection run.
func (al *AnalysisLogger) LogBestBets(date string, candidates, selected int, topScore float64) {
	al.WithFields(logrus.Fields{
		"date":       date,
		"candidates": candidates,
		"selected":   selected,
		"top_score":  topScore,
	}).Info("Best bets selected")
}

// LogResultsUpdate logs a grading pass over stored picks.
func (al *AnalysisLogger) LogResultsUpdate(date string, graded, wins, losses int) {
	al.WithFields(logrus.Fields{
		"date":   date,
		"graded": graded,
		"wins":   wins,
		"losses": losses,
	}).Info("Pick results updated")
}
