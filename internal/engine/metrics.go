package engine

import (
	"github.com/yourusername/courtline/internal/models"
)

// DeriveMetrics computes the derived efficiency metrics for a team from its
// season snapshot. Tempo-free fields from the feed are preferred; missing
// fields degrade to per-game estimates rather than failing.
func DeriveMetrics(stats *models.TeamSeasonStats) models.TeamMetrics {
	m := models.TeamMetrics{}

	m.OffensiveRating = stats.OffensiveRating
	if m.OffensiveRating == 0 {
		m.OffensiveRating = stats.PointsPerGame
	}
	m.DefensiveRating = stats.DefensiveRating
	if m.DefensiveRating == 0 {
		m.DefensiveRating = stats.OpponentPointsPerGame
	}
	m.NetRating = m.OffensiveRating - m.DefensiveRating

	m.TrueShootingPct = stats.TrueShootingPct
	if m.TrueShootingPct != 0 {
		m.ShootingEfficiency = m.TrueShootingPct
	} else if stats.FieldGoalPct != 0 {
		// Weighted shooting blend when true shooting is unavailable.
		m.ShootingEfficiency = stats.FieldGoalPct*0.5 + stats.ThreePointPct*0.3 + stats.FreeThrowPct*0.2
	}

	m.FourFactors = stats.FourFactors
	if m.FourFactors.EffectiveFGPct == 0 {
		m.FourFactors.EffectiveFGPct = stats.FieldGoalPct
	}
	m.OpponentFourFactors = stats.OpponentFourFactors

	m.ReboundRate = stats.ReboundsPerGame
	if stats.TurnoversPerGame > 0 {
		m.AssistToTurnover = stats.AssistsPerGame / stats.TurnoversPerGame
	}
	m.DefensiveIntensity = stats.StealsPerGame + stats.BlocksPerGame

	m.Pace = stats.Pace
	if m.Pace == 0 {
		// Crude possessions estimate when the feed has no pace yet.
		m.Pace = stats.PointsPerGame + stats.OpponentPointsPerGame
	}

	return m
}
