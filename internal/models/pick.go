package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Total-bet selections. Spread selections carry the team name instead.
const (
	SelectionOver  = "Over"
	SelectionUnder = "Under"
)

// Pick is a finalized betting recommendation produced by one analysis run.
// ValueRating and Confidence are tracked separately and never conflated;
// Score is the only field that blends them. After scoring, a pick is only
// mutated for rank assignment and result grading.
type Pick struct {
	ID              uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Date            string    `db:"date" json:"date" validate:"required,datetime=2006-01-02"`
	GameID          int       `db:"game_id" json:"game_id" validate:"required"`
	GameDescription string    `db:"game_description" json:"game_description"`
	HomeTeam        string    `db:"home_team" json:"home_team"`
	AwayTeam        string    `db:"away_team" json:"away_team"`

	// GameStart is the scheduled tip-off in UTC. Picks lock once it passes.
	GameStart time.Time `db:"game_start" json:"game_start"`

	BetType BetType `db:"bet_type" json:"bet_type" validate:"required,oneof=spread total"`
	// Selection is the team name for spread picks, "Over" or "Under" for
	// total picks. Line is the market line the pick was made against (the
	// selected side's spread, or the total line).
	Selection string  `db:"selection" json:"selection" validate:"required"`
	Line      float64 `db:"line" json:"line"`
	// Pick is the display string: "{team} {signed spread}" or
	// "Over {line}" / "Under {line}". Always parseable downstream.
	Pick string `db:"pick" json:"pick" validate:"required"`
	Odds int    `db:"odds" json:"odds"`

	ValueRating float64 `db:"value_rating" json:"value_rating" validate:"gte=0.5,lte=0.7"`
	Confidence  float64 `db:"confidence" json:"confidence" validate:"gte=0.25,lte=0.88"`
	Edge        float64 `db:"edge" json:"edge"`
	Score       float64 `db:"score" json:"score"`
	Reasoning   string  `db:"reasoning" json:"reasoning"`

	IsBestBet   bool `db:"is_best_bet" json:"is_best_bet"`
	BestBetRank *int `db:"best_bet_rank" json:"best_bet_rank"`
	IsLocked    bool `db:"is_locked" json:"is_locked"`

	HomeScore *int  `db:"home_score" json:"home_score"`
	AwayScore *int  `db:"away_score" json:"away_score"`
	Result    *bool `db:"result" json:"result"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Won grades the pick against a final score. Pushes lose: both spread cover
// and total checks use strict inequalities.
func (p *Pick) Won(homeScore, awayScore int) bool {
	switch p.BetType {
	case BetTypeTotal:
		total := float64(homeScore + awayScore)
		if p.Selection == SelectionOver {
			return total > p.Line
		}
		return total < p.Line
	default:
		margin := float64(homeScore - awayScore)
		if p.Selection == p.HomeTeam {
			return margin > -p.Line
		}
		return margin < p.Line
	}
}

// Graded reports whether a result has been recorded for the pick.
func (p *Pick) Graded() bool {
	return p.Result != nil
}

// FormatSpreadPick builds the canonical display string for a spread pick.
func FormatSpreadPick(team string, spread float64) string {
	return fmt.Sprintf("%s %+.1f", team, spread)
}

// FormatTotalPick builds the canonical display string for a total pick.
func FormatTotalPick(selection string, line float64) string {
	return fmt.Sprintf("%s %.1f", selection, line)
}
