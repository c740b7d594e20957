package datasource

import (
	"strings"
	"time"

	"github.com/yourusername/courtline/internal/models"
)

// Raw CBBD response shapes. Pointer fields distinguish "not published" from
// zero; normalization maps absent fields to zero values so downstream code
// never sees nils outside of scores.

type cbbdTeam struct {
	ID           int    `json:"id"`
	School       string `json:"school"`
	Conference   string `json:"conference"`
	Abbreviation string `json:"abbreviation"`
}

type cbbdGame struct {
	ID             int     `json:"id"`
	Season         int     `json:"season"`
	StartDate      string  `json:"startDate"`
	HomeTeam       string  `json:"homeTeam"`
	AwayTeam       string  `json:"awayTeam"`
	HomeTeamID     int     `json:"homeTeamId"`
	AwayTeamID     int     `json:"awayTeamId"`
	HomeConference *string `json:"homeConference"`
	AwayConference *string `json:"awayConference"`
	HomePoints     *int    `json:"homePoints"`
	AwayPoints     *int    `json:"awayPoints"`
	Venue          *string `json:"venue"`
	Status         *string `json:"status"`
}

func (g *cbbdGame) startTime() time.Time {
	if t, err := time.Parse(time.RFC3339, g.StartDate); err == nil {
		return t
	}
	// Some feeds omit the zone suffix.
	if t, err := time.Parse("2006-01-02T15:04:05", g.StartDate); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

func (g *cbbdGame) toGame() models.Game {
	game := models.Game{
		ID:         g.ID,
		Season:     g.Season,
		HomeTeam:   g.HomeTeam,
		AwayTeam:   g.AwayTeam,
		HomeTeamID: g.HomeTeamID,
		AwayTeamID: g.AwayTeamID,
		HomeScore:  g.HomePoints,
		AwayScore:  g.AwayPoints,
	}
	if t := g.startTime(); !t.IsZero() {
		game.StartDate = &t
	}
	if g.HomeConference != nil {
		game.HomeConference = *g.HomeConference
	}
	if g.AwayConference != nil {
		game.AwayConference = *g.AwayConference
	}
	if g.Venue != nil {
		game.Venue = *g.Venue
	}
	if g.Status != nil {
		game.Status = *g.Status
	}
	return game
}

// toRecentGame projects a completed game onto one team's perspective.
func (g *cbbdGame) toRecentGame(teamID int) models.RecentGame {
	home := g.HomeTeamID == teamID
	rg := models.RecentGame{
		Date: g.startTime(),
		Home: home,
	}
	if g.HomePoints != nil && g.AwayPoints != nil {
		if home {
			rg.TeamScore = *g.HomePoints
			rg.OpponentScore = *g.AwayPoints
		} else {
			rg.TeamScore = *g.AwayPoints
			rg.OpponentScore = *g.HomePoints
		}
	}
	return rg
}

type cbbdFourFactors struct {
	EffectiveFieldGoalPct *float64 `json:"effectiveFieldGoalPct"`
	TurnoverRatio         *float64 `json:"turnoverRatio"`
	OffensiveReboundPct   *float64 `json:"offensiveReboundPct"`
	FreeThrowRate         *float64 `json:"freeThrowRate"`
}

type cbbdCountStat struct {
	Total float64 `json:"total"`
	Pct   float64 `json:"pct"`
}

type cbbdSideStats struct {
	Points               *cbbdCountStat   `json:"points"`
	FieldGoals           *cbbdCountStat   `json:"fieldGoals"`
	ThreePointFieldGoals *cbbdCountStat   `json:"threePointFieldGoals"`
	FreeThrows           *cbbdCountStat   `json:"freeThrows"`
	Rebounds             *cbbdCountStat   `json:"rebounds"`
	Turnovers            *cbbdCountStat   `json:"turnovers"`
	Assists              *float64         `json:"assists"`
	Steals               *float64         `json:"steals"`
	Blocks               *float64         `json:"blocks"`
	Rating               *float64         `json:"rating"`
	TrueShooting         *float64         `json:"trueShooting"`
	Possessions          *float64         `json:"possessions"`
	FourFactors          *cbbdFourFactors `json:"fourFactors"`
}

type cbbdTeamSeasonStats struct {
	TeamID        int            `json:"teamId"`
	Team          string         `json:"team"`
	Conference    *string        `json:"conference"`
	Season        int            `json:"season"`
	Games         int            `json:"games"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	Pace          *float64       `json:"pace"`
	TeamStats     *cbbdSideStats `json:"teamStats"`
	OpponentStats *cbbdSideStats `json:"opponentStats"`
}

func (s *cbbdTeamSeasonStats) toTeamSeasonStats() *models.TeamSeasonStats {
	out := &models.TeamSeasonStats{
		TeamID: s.TeamID,
		Team:   s.Team,
		Season: s.Season,
		Games:  s.Games,
		Wins:   s.Wins,
		Losses: s.Losses,
	}
	if s.Conference != nil {
		out.Conference = *s.Conference
	}

	games := float64(s.Games)
	if games == 0 {
		games = 1
	}

	if ts := s.TeamStats; ts != nil {
		if ts.Points != nil {
			out.PointsPerGame = ts.Points.Total / games
		}
		if ts.FieldGoals != nil {
			out.FieldGoalPct = ts.FieldGoals.Pct / 100
		}
		if ts.ThreePointFieldGoals != nil {
			out.ThreePointPct = ts.ThreePointFieldGoals.Pct / 100
		}
		if ts.FreeThrows != nil {
			out.FreeThrowPct = ts.FreeThrows.Pct / 100
		}
		if ts.Rebounds != nil {
			out.ReboundsPerGame = ts.Rebounds.Total / games
		}
		if ts.Turnovers != nil {
			out.TurnoversPerGame = ts.Turnovers.Total / games
		}
		if ts.Assists != nil {
			out.AssistsPerGame = *ts.Assists / games
		}
		if ts.Steals != nil {
			out.StealsPerGame = *ts.Steals / games
		}
		if ts.Blocks != nil {
			out.BlocksPerGame = *ts.Blocks / games
		}
		if ts.Rating != nil {
			out.OffensiveRating = *ts.Rating
		}
		if ts.TrueShooting != nil {
			out.TrueShootingPct = *ts.TrueShooting / 100
		}
		if ts.Possessions != nil {
			out.Possessions = *ts.Possessions / games
		}
		out.FourFactors = normalizeFourFactors(ts.FourFactors)
	}

	if os := s.OpponentStats; os != nil {
		if os.Points != nil {
			out.OpponentPointsPerGame = os.Points.Total / games
		}
		if os.Rating != nil {
			out.DefensiveRating = *os.Rating
		}
		out.OpponentFourFactors = normalizeFourFactors(os.FourFactors)
	}

	if s.Pace != nil {
		out.Pace = *s.Pace
	} else {
		out.Pace = out.Possessions
	}

	return out
}

func normalizeFourFactors(ff *cbbdFourFactors) models.FourFactors {
	if ff == nil {
		return models.FourFactors{}
	}
	out := models.FourFactors{}
	if ff.EffectiveFieldGoalPct != nil {
		out.EffectiveFGPct = *ff.EffectiveFieldGoalPct / 100
	}
	if ff.TurnoverRatio != nil {
		out.TurnoverRatio = *ff.TurnoverRatio / 100
	}
	if ff.OffensiveReboundPct != nil {
		out.OffensiveReboundPct = *ff.OffensiveReboundPct / 100
	}
	if ff.FreeThrowRate != nil {
		out.FreeThrowRate = *ff.FreeThrowRate / 100
	}
	return out
}

type cbbdLine struct {
	Provider      *string  `json:"provider"`
	Spread        *float64 `json:"spread"`
	OverUnder     *float64 `json:"overUnder"`
	HomeMoneyline *int     `json:"homeMoneyline"`
	AwayMoneyline *int     `json:"awayMoneyline"`
}

type cbbdGameLines struct {
	GameID   int        `json:"gameId"`
	HomeTeam string     `json:"homeTeam"`
	AwayTeam string     `json:"awayTeam"`
	Lines    []cbbdLine `json:"lines"`
}

// toMarketLines flattens the per-provider line list into one MarketLines,
// taking the first provider that posts each market. The feed does not carry
// juice on spreads or totals, so standard -110 is assumed. A zero spread is
// treated as unposted; the feed uses 0 as its missing marker.
func (gl *cbbdGameLines) toMarketLines() *models.MarketLines {
	out := &models.MarketLines{}
	for _, l := range gl.Lines {
		if out.Spread == nil && l.Spread != nil && *l.Spread != 0 {
			out.Spread = &models.SpreadLine{
				HomeSpread: *l.Spread,
				AwaySpread: -*l.Spread,
				HomeOdds:   -110,
				AwayOdds:   -110,
			}
		}
		if out.Total == nil && l.OverUnder != nil && *l.OverUnder != 0 {
			out.Total = &models.TotalLine{
				Line:      *l.OverUnder,
				OverOdds:  -110,
				UnderOdds: -110,
			}
		}
	}
	if out.Spread == nil && out.Total == nil {
		return nil
	}
	return out
}

// statusFinal reports whether a raw status string marks a finished game.
func statusFinal(status string) bool {
	s := strings.ToUpper(status)
	return strings.Contains(s, "FINAL") || strings.Contains(s, "COMPLETED")
}
