package engine

import (
	"math"

	"github.com/yourusername/courtline/internal/models"
)

// regressionWeight computes how much to trust raw efficiency ratings versus
// the league average for this matchup, in [0.75, 0.99]. Trust grows with
// games played, and grows faster for obvious mismatches where early-season
// regression would wrongly flatten the gap.
func (e *Engine) regressionWeight(m *matchup, gctx *models.GameContext) float64 {
	homeGames := m.homeStats.Games
	if homeGames == 0 {
		homeGames = len(m.homeRecent)
	}
	awayGames := m.awayStats.Games
	if awayGames == 0 {
		awayGames = len(m.awayRecent)
	}
	avgGames := float64(homeGames+awayGames) / 2

	// Smooth base curve from 75% trust at zero games to 99% deep in season.
	var baseWeight float64
	switch {
	case avgGames <= 5:
		baseWeight = 0.75 + (avgGames/5)*0.10
	case avgGames <= 10:
		baseWeight = 0.85 + ((avgGames-5)/5)*0.07
	case avgGames <= 20:
		baseWeight = 0.92 + ((avgGames-10)/10)*0.05
	default:
		baseWeight = 0.97 + math.Min((avgGames-20)/20, 1.0)*0.02
	}

	// Gap across net, offensive, and defensive ratings. One-sided gaps are
	// discounted to 70% since they are narrower evidence of a mismatch.
	netGap := math.Abs(m.homeMetrics.NetRating - m.awayMetrics.NetRating)
	offGap := math.Abs(m.homeMetrics.OffensiveRating - m.awayMetrics.OffensiveRating)
	defGap := math.Abs(m.homeMetrics.DefensiveRating - m.awayMetrics.DefensiveRating)
	maxGap := math.Max(netGap, math.Max(offGap*0.7, defGap*0.7))

	var talentBoost float64
	switch {
	case maxGap > 30:
		talentBoost = 0.10
	case maxGap > 20:
		talentBoost = 0.07
	case maxGap > 15:
		talentBoost = 0.04
	}

	// Early-season safety: a large record gap with a small rating gap means
	// ratings have not caught up with one team's dominance yet.
	if homeGames >= 2 && awayGames >= 2 {
		winPctGap := math.Abs(m.homeStats.WinPct() - m.awayStats.WinPct())
		if winPctGap > 0.6 && netGap < 15 {
			talentBoost = math.Max(talentBoost, 0.06)
		}
	}

	// Conference tier mismatches get extra trust for the first ten games,
	// fading to nothing as ratings stabilize.
	if gctx != nil && avgGames < 10 {
		homeTier := e.conferenceTier(gctx.HomeConference)
		awayTier := e.conferenceTier(gctx.AwayConference)
		tierGap := homeTier - awayTier
		if tierGap < 0 {
			tierGap = -tierGap
		}

		var conferenceBoost float64
		switch {
		case tierGap >= 3:
			conferenceBoost = 0.12
		case tierGap >= 2:
			conferenceBoost = 0.08
		case tierGap >= 1:
			conferenceBoost = 0.04
		}
		conferenceBoost *= (10 - avgGames) / 10

		talentBoost = math.Max(talentBoost, conferenceBoost)
	}

	return math.Min(0.99, baseWeight+talentBoost)
}

// conferenceTier looks up a conference's tier, 7 for unknown conferences.
func (e *Engine) conferenceTier(conference string) int {
	if tier, ok := e.cfg.ConferenceTiers[conference]; ok {
		return tier
	}
	return 7
}
