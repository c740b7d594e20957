package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/courtline/internal/models"
)

func matchupFor(home, away *models.TeamSeasonStats) *matchup {
	return &matchup{
		homeStats:   home,
		awayStats:   away,
		homeMetrics: DeriveMetrics(home),
		awayMetrics: DeriveMetrics(away),
		homeForm:    AnalyzeForm(nil),
		awayForm:    AnalyzeForm(nil),
	}
}

func TestRegressionWeightGrowsWithGames(t *testing.T) {
	e := newTestEngine(&stubProvider{})

	early := e.regressionWeight(matchupFor(evenTeamStats(1, 2), evenTeamStats(2, 2)), nil)
	mid := e.regressionWeight(matchupFor(evenTeamStats(1, 10), evenTeamStats(2, 10)), nil)
	late := e.regressionWeight(matchupFor(evenTeamStats(1, 30), evenTeamStats(2, 30)), nil)

	assert.Less(t, early, mid)
	assert.Less(t, mid, late)
	assert.LessOrEqual(t, late, 0.99)
	assert.GreaterOrEqual(t, early, 0.75)
}

func TestRegressionWeightTalentGapBoost(t *testing.T) {
	e := newTestEngine(&stubProvider{})

	evenMatch := matchupFor(evenTeamStats(1, 5), evenTeamStats(2, 5))

	elite := &models.TeamSeasonStats{TeamID: 1, Games: 5, Wins: 5, OffensiveRating: 125, DefensiveRating: 88, Pace: 70}
	weak := &models.TeamSeasonStats{TeamID: 2, Games: 5, Losses: 5, OffensiveRating: 95, DefensiveRating: 110, Pace: 70}
	mismatch := matchupFor(elite, weak)

	assert.Greater(t, e.regressionWeight(mismatch, nil), e.regressionWeight(evenMatch, nil))
}

func TestRegressionWeightRecordGapSafety(t *testing.T) {
	e := newTestEngine(&stubProvider{})

	// Ratings nearly identical, but one team is unbeaten and the other
	// winless. The record gap should add trust even without a rating gap.
	unbeaten := &models.TeamSeasonStats{TeamID: 1, Games: 5, Wins: 5, OffensiveRating: 105, DefensiveRating: 100, Pace: 70}
	winless := &models.TeamSeasonStats{TeamID: 2, Games: 5, Losses: 5, OffensiveRating: 103, DefensiveRating: 101, Pace: 70}

	withGap := e.regressionWeight(matchupFor(unbeaten, winless), nil)
	without := e.regressionWeight(matchupFor(evenTeamStats(1, 5), evenTeamStats(2, 5)), nil)

	assert.GreaterOrEqual(t, withGap-without, 0.059)
}

func TestRegressionWeightConferenceTiers(t *testing.T) {
	e := newTestEngine(&stubProvider{})

	m := matchupFor(evenTeamStats(1, 2), evenTeamStats(2, 2))

	crossTier := &models.GameContext{HomeConference: "Big Ten", AwayConference: "MAAC"}
	sameTier := &models.GameContext{HomeConference: "Big Ten", AwayConference: "SEC"}

	assert.Greater(t, e.regressionWeight(m, crossTier), e.regressionWeight(m, sameTier))

	// By ten games the tier boost has fully decayed.
	seasoned := matchupFor(evenTeamStats(1, 12), evenTeamStats(2, 12))
	assert.Equal(t, e.regressionWeight(seasoned, crossTier), e.regressionWeight(seasoned, nil))
}

func TestConferenceTierUnknown(t *testing.T) {
	e := newTestEngine(&stubProvider{})

	assert.Equal(t, 1, e.conferenceTier("Big Ten"))
	assert.Equal(t, 6, e.conferenceTier("SWAC"))
	assert.Equal(t, 7, e.conferenceTier("Mystery League"))
	assert.Equal(t, 7, e.conferenceTier(""))
}

func TestDampenedRegressionWeight(t *testing.T) {
	e := newTestEngine(&stubProvider{})

	// Games recorded but no wins or losses looks like exhibition data.
	suspect := &models.TeamSeasonStats{TeamID: 1, Games: 2, OffensiveRating: 105, DefensiveRating: 100, Pace: 70}
	normal := evenTeamStats(2, 2)

	m := matchupFor(suspect, normal)
	base := e.regressionWeight(m, nil)
	assert.InDelta(t, base*0.60, e.dampenedRegressionWeight(m, nil), 0.001)

	// Tiny combined sample without suspect records still gets dampened.
	thin := matchupFor(evenTeamStats(1, 1), evenTeamStats(2, 1))
	thinBase := e.regressionWeight(thin, nil)
	assert.InDelta(t, thinBase*0.80, e.dampenedRegressionWeight(thin, nil), 0.001)

	// Healthy sample passes through untouched.
	healthy := matchupFor(evenTeamStats(1, 15), evenTeamStats(2, 15))
	assert.Equal(t, e.regressionWeight(healthy, nil), e.dampenedRegressionWeight(healthy, nil))
}

func TestDeriveMetricsFallbacks(t *testing.T) {
	// No tempo-free fields published yet: fall back to per-game numbers.
	raw := &models.TeamSeasonStats{
		PointsPerGame:         78,
		OpponentPointsPerGame: 71,
		FieldGoalPct:          0.46,
		ThreePointPct:         0.35,
		FreeThrowPct:          0.72,
		AssistsPerGame:        14,
		TurnoversPerGame:      10,
		StealsPerGame:         6,
		BlocksPerGame:         3,
	}
	m := DeriveMetrics(raw)

	assert.Equal(t, 78.0, m.OffensiveRating)
	assert.Equal(t, 71.0, m.DefensiveRating)
	assert.Equal(t, 7.0, m.NetRating)
	assert.InDelta(t, 0.46*0.5+0.35*0.3+0.72*0.2, m.ShootingEfficiency, 0.001)
	assert.Equal(t, 0.46, m.FourFactors.EffectiveFGPct)
	assert.InDelta(t, 1.4, m.AssistToTurnover, 0.001)
	assert.Equal(t, 9.0, m.DefensiveIntensity)
	assert.Equal(t, 149.0, m.Pace)

	// Published advanced fields win over per-game estimates.
	advanced := &models.TeamSeasonStats{
		PointsPerGame:   78,
		OffensiveRating: 112,
		DefensiveRating: 96,
		TrueShootingPct: 0.58,
		Pace:            68,
	}
	m = DeriveMetrics(advanced)

	assert.Equal(t, 112.0, m.OffensiveRating)
	assert.Equal(t, 16.0, m.NetRating)
	assert.Equal(t, 0.58, m.ShootingEfficiency)
	assert.Equal(t, 68.0, m.Pace)
}
