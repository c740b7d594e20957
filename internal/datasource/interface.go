// Package datasource fetches games, team statistics, and betting lines from
// the CollegeBasketballData API and normalizes them into typed records.
package datasource

import (
	"context"
	"time"

	"github.com/yourusername/courtline/internal/models"
)

// Provider supplies normalized college basketball data. Implementations are
// the live API client and the caching wrapper around it.
type Provider interface {
	// GamesByDate returns games tipping off on the given date, interpreted
	// as an Eastern-time calendar day. d1Only drops games where either team
	// lacks a conference affiliation (exhibitions); upcomingOnly drops games
	// already final.
	GamesByDate(ctx context.Context, date string, d1Only, upcomingOnly bool) ([]models.Game, error)

	// TeamStats returns the team's season-to-date statistics snapshot.
	TeamStats(ctx context.Context, teamID int) (*models.TeamSeasonStats, error)

	// RecentGames returns up to limit completed games from the team's
	// perspective, ordered oldest to newest.
	RecentGames(ctx context.Context, teamID int, limit int) ([]models.RecentGame, error)

	// LinesForTeamDate returns the posted market lines for the team's game
	// on the given date, or nil when no line is posted.
	LinesForTeamDate(ctx context.Context, teamName, date string) (*models.MarketLines, error)
}

// SourceError wraps a provider failure with the operation and an error code.
type SourceError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *SourceError) Error() string {
	msg := "cbbd: " + e.Op + ": " + e.Code + ": " + e.Message
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Error codes for SourceError.
const (
	ErrCodeAuthFailed   = "authentication_failed"
	ErrCodeRateLimited  = "rate_limit_exceeded"
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidData  = "invalid_data"
	ErrCodeNetworkError = "network_error"
	ErrCodeServerError  = "server_error"
)

func newSourceError(op, code, message string, err error) *SourceError {
	return &SourceError{Op: op, Code: code, Message: message, Err: err}
}

// CurrentSeason returns the season label for a point in time. Seasons span
// two calendar years and are named for the later one: the 2024-25 season is
// "2025". The cutover is July.
func CurrentSeason(now time.Time) int {
	if now.Month() < time.July {
		return now.Year()
	}
	return now.Year() + 1
}

// easternDayWindow converts a YYYY-MM-DD date in Eastern time (fixed UTC-5)
// to the UTC instant range covering that whole day. Game feeds timestamp in
// UTC; schedules read in Eastern.
func easternDayWindow(date string) (start, end time.Time, err error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = day.Add(5 * time.Hour)
	end = start.Add(24*time.Hour - time.Second)
	return start, end, nil
}
