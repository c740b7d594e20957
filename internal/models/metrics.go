package models

// TeamMetrics holds the derived efficiency metrics computed from a
// TeamSeasonStats snapshot. A pure function of its source stats; absent
// source fields flow through as zero or the documented fallback.
type TeamMetrics struct {
	OffensiveRating    float64 `json:"offensive_rating"`
	DefensiveRating    float64 `json:"defensive_rating"`
	NetRating          float64 `json:"net_rating"`
	TrueShootingPct    float64 `json:"true_shooting_pct"`
	ShootingEfficiency float64 `json:"shooting_efficiency"`

	FourFactors         FourFactors `json:"four_factors"`
	OpponentFourFactors FourFactors `json:"opponent_four_factors"`

	ReboundRate        float64 `json:"rebound_rate"`
	AssistToTurnover   float64 `json:"assist_to_turnover"`
	DefensiveIntensity float64 `json:"defensive_intensity"`
	Pace               float64 `json:"pace"`
}

// FormMetrics summarizes a team's recent results. Consistency is a bounded
// [0.25, 0.85] data-quality score; 0.3 is the explicit "no data" signal.
type FormMetrics struct {
	WinRate      float64 `json:"win_rate"`
	AvgMargin    float64 `json:"avg_margin"`
	ScoringTrend float64 `json:"scoring_trend"`
	Consistency  float64 `json:"consistency"`
}
