package models

import (
	"fmt"
	"time"
)

// Game represents a scheduled or completed game as supplied by the data
// source.
type Game struct {
	ID             int        `db:"id" json:"id"`
	Season         int        `db:"season" json:"season"`
	StartDate      *time.Time `db:"start_date" json:"start_date"`
	HomeTeam       string     `db:"home_team" json:"home_team"`
	AwayTeam       string     `db:"away_team" json:"away_team"`
	HomeTeamID     int        `db:"home_team_id" json:"home_team_id"`
	AwayTeamID     int        `db:"away_team_id" json:"away_team_id"`
	HomeConference string     `db:"home_conference" json:"home_conference"`
	AwayConference string     `db:"away_conference" json:"away_conference"`
	HomeScore      *int       `db:"home_score" json:"home_score"`
	AwayScore      *int       `db:"away_score" json:"away_score"`
	Venue          string     `db:"venue" json:"venue"`
	Status         string     `db:"status" json:"status"`
}

// Description returns the conventional "Away @ Home" matchup string.
func (g *Game) Description() string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam, g.HomeTeam)
}

// Completed reports whether the game has a final score for both sides.
func (g *Game) Completed() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// SpreadLine is the market point-spread line for a game. Spreads follow
// sportsbook convention: a negative home spread means the home team is
// favored. Odds are American format.
type SpreadLine struct {
	HomeSpread float64 `json:"home_spread"`
	AwaySpread float64 `json:"away_spread"`
	HomeOdds   int     `json:"home_odds"`
	AwayOdds   int     `json:"away_odds"`
}

// TotalLine is the market total-points line for a game.
type TotalLine struct {
	Line      float64 `json:"line"`
	OverOdds  int     `json:"over_odds"`
	UnderOdds int     `json:"under_odds"`
}

// MarketLines bundles the betting lines available for a game. A nil field
// means the market has not posted that line.
type MarketLines struct {
	Spread *SpreadLine `json:"spread,omitempty"`
	Total  *TotalLine  `json:"total,omitempty"`
}

// GameContext carries the optional per-game information the prediction engine
// may use: conferences for the tier adjustment, the tip-off date for the
// early-season total dampener, and market lines for market-trust blending.
// All fields are optional; the engine skips the corresponding adjustment when
// a field is absent. The engine never mutates a context.
type GameContext struct {
	HomeConference string       `json:"home_conference,omitempty"`
	AwayConference string       `json:"away_conference,omitempty"`
	StartDate      *time.Time   `json:"start_date,omitempty"`
	Odds           *MarketLines `json:"odds,omitempty"`
}

// RecentGame is a completed game seen from one team's perspective. Sequences
// of RecentGame handed to the engine must be ordered oldest to newest; the
// data source boundary enforces that ordering before the engine applies its
// recency weights.
type RecentGame struct {
	Date          time.Time `json:"date"`
	TeamScore     int       `json:"team_score"`
	OpponentScore int       `json:"opponent_score"`
	Home          bool      `json:"home"`
}

// Margin returns the signed final margin from the team's perspective.
func (g RecentGame) Margin() int {
	return g.TeamScore - g.OpponentScore
}

// Won reports whether the team won the game.
func (g RecentGame) Won() bool {
	return g.Margin() > 0
}
