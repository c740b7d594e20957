package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/courtline/internal/models"
)

// PickRepository defines the interface for pick persistence
type PickRepository interface {
	// Save inserts a pick, or updates the existing pick for the same
	// (date, game_id, bet_type) key. Locked picks are never overwritten;
	// Save returns models.ErrPickLocked in that case.
	Save(ctx context.Context, pick *models.Pick) error
	// SaveBatch saves picks one by one and reports how many were written
	// and how many were skipped because the existing pick was locked.
	SaveBatch(ctx context.Context, picks []*models.Pick) (saved, skipped int, err error)
	GetByDate(ctx context.Context, date string, bestBetsOnly bool) ([]*models.Pick, error)
	GetUngraded(ctx context.Context, date string) ([]*models.Pick, error)
	// MarkBestBets clears all best-bet flags for the date and then flags
	// the given picks with ranks 1..n, in order.
	MarkBestBets(ctx context.Context, date string, picks []*models.Pick) error
	// LockStartedPicks locks every unlocked pick whose game has tipped off.
	LockStartedPicks(ctx context.Context, asOf time.Time) (int64, error)
	RecordResult(ctx context.Context, id uuid.UUID, homeScore, awayScore int, won bool) error
	GetGradedRange(ctx context.Context, startDate, endDate string) ([]*models.Pick, error)
}
