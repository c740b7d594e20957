package models

// FourFactors holds the four tempo-free efficiency drivers: shooting,
// turnovers, rebounding, and free throws.
type FourFactors struct {
	EffectiveFGPct      float64 `db:"effective_fg_pct" json:"effective_fg_pct"`
	TurnoverRatio       float64 `db:"turnover_ratio" json:"turnover_ratio"`
	OffensiveReboundPct float64 `db:"offensive_rebound_pct" json:"offensive_rebound_pct"`
	FreeThrowRate       float64 `db:"free_throw_rate" json:"free_throw_rate"`
}

// TeamSeasonStats is an immutable snapshot of a team's season-to-date
// statistics. Unknown or unavailable fields are zero; the prediction engine
// treats zero as "no data" and degrades to neutral values rather than failing.
type TeamSeasonStats struct {
	TeamID     int    `db:"team_id" json:"team_id"`
	Team       string `db:"team" json:"team"`
	Conference string `db:"conference" json:"conference"`
	Season     int    `db:"season" json:"season"`

	Games  int `db:"games" json:"games"`
	Wins   int `db:"wins" json:"wins"`
	Losses int `db:"losses" json:"losses"`

	PointsPerGame         float64 `db:"points_per_game" json:"points_per_game"`
	OpponentPointsPerGame float64 `db:"opponent_points_per_game" json:"opponent_points_per_game"`
	FieldGoalPct          float64 `db:"field_goal_pct" json:"field_goal_pct"`
	ThreePointPct         float64 `db:"three_point_pct" json:"three_point_pct"`
	FreeThrowPct          float64 `db:"free_throw_pct" json:"free_throw_pct"`
	ReboundsPerGame       float64 `db:"rebounds_per_game" json:"rebounds_per_game"`
	AssistsPerGame        float64 `db:"assists_per_game" json:"assists_per_game"`
	TurnoversPerGame      float64 `db:"turnovers_per_game" json:"turnovers_per_game"`
	StealsPerGame         float64 `db:"steals_per_game" json:"steals_per_game"`
	BlocksPerGame         float64 `db:"blocks_per_game" json:"blocks_per_game"`

	// Tempo-free advanced metrics (points per 100 possessions, possessions
	// per game). Zero when the upstream feed has not published them yet.
	OffensiveRating float64 `db:"offensive_rating" json:"offensive_rating"`
	DefensiveRating float64 `db:"defensive_rating" json:"defensive_rating"`
	TrueShootingPct float64 `db:"true_shooting_pct" json:"true_shooting_pct"`
	Pace            float64 `db:"pace" json:"pace"`
	Possessions     float64 `db:"possessions" json:"possessions"`

	FourFactors         FourFactors `json:"four_factors"`
	OpponentFourFactors FourFactors `json:"opponent_four_factors"`
}

// WinPct returns the team's season win percentage, 0 when no games are
// recorded.
func (s *TeamSeasonStats) WinPct() float64 {
	if s.Games <= 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}
