package selector

import (
	"sort"

	"github.com/yourusername/courtline/internal/config"
	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/odds"
)

// Selector ranks candidate picks and selects the best bets.
type Selector struct {
	cfg config.SelectorConfig
}

// New creates a selector with the given configuration.
func New(cfg config.SelectorConfig) *Selector {
	return &Selector{cfg: cfg}
}

// Score computes the ranking score for a pick: 60% value rating, 40% model
// confidence, with a small penalty for short odds that tie up bankroll.
func (s *Selector) Score(valueRating float64, americanOdds int, confidence float64) float64 {
	base := valueRating*0.6 + confidence*0.4
	oddsFactor := 1 - (odds.ImpliedProbability(americanOdds)-0.5)*0.2
	return round4(base * oddsFactor)
}

// SelectBestBets filters candidates by the odds ceiling, scores the
// survivors, and returns the top N by score. Scores are written back onto
// the selected picks; candidates that miss the odds cut keep a zero score.
// The input slice is not reordered.
func (s *Selector) SelectBestBets(candidates []*models.Pick) []*models.Pick {
	eligible := make([]*models.Pick, 0, len(candidates))
	for _, p := range candidates {
		if !odds.MeetsCriteria(p.Odds, s.cfg.MaxOdds) {
			continue
		}
		p.Score = s.Score(p.ValueRating, p.Odds, p.Confidence)
		eligible = append(eligible, p)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Score > eligible[j].Score
	})

	if len(eligible) > s.cfg.TopN {
		eligible = eligible[:s.cfg.TopN]
	}
	return eligible
}

// MeetsConfidenceFloor reports whether a prediction clears the minimum
// confidence required to become a pick at all.
func (s *Selector) MeetsConfidenceFloor(confidence float64) bool {
	return confidence >= s.cfg.MinConfidence
}
