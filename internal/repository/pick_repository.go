package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/courtline/internal/database"
	"github.com/yourusername/courtline/internal/models"
)

// PostgresPickRepository implements PickRepository for PostgreSQL
type PostgresPickRepository struct {
	db *database.DB
}

// NewPostgresPickRepository creates a new pick repository
func NewPostgresPickRepository(db *database.DB) PickRepository {
	return &PostgresPickRepository{db: db}
}

const pickColumns = `
	id, date::text, game_id, game_description, home_team, away_team, game_start,
	bet_type, selection, line, pick, odds, value_rating, confidence, edge,
	score, reasoning, is_best_bet, best_bet_rank, is_locked,
	home_score, away_score, result, created_at, updated_at
`

// Save inserts a pick, or refreshes the existing pick for the same
// (date, game_id, bet_type) key. A locked pick is left untouched and
// models.ErrPickLocked is returned.
func (r *PostgresPickRepository) Save(ctx context.Context, pick *models.Pick) error {
	query := `
		INSERT INTO model_picks (
			id, date, game_id, game_description, home_team, away_team, game_start,
			bet_type, selection, line, pick, odds, value_rating, confidence, edge,
			score, reasoning
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (date, game_id, bet_type) DO UPDATE SET
			game_description = EXCLUDED.game_description,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			game_start = EXCLUDED.game_start,
			selection = EXCLUDED.selection,
			line = EXCLUDED.line,
			pick = EXCLUDED.pick,
			odds = EXCLUDED.odds,
			value_rating = EXCLUDED.value_rating,
			confidence = EXCLUDED.confidence,
			edge = EXCLUDED.edge,
			score = EXCLUDED.score,
			reasoning = EXCLUDED.reasoning,
			updated_at = now()
		WHERE model_picks.is_locked = FALSE
	`

	tag, err := r.db.GetPool().Exec(ctx, query,
		pick.ID, pick.Date, pick.GameID, pick.GameDescription, pick.HomeTeam, pick.AwayTeam,
		pick.GameStart, pick.BetType, pick.Selection, pick.Line, pick.Pick, pick.Odds,
		pick.ValueRating, pick.Confidence, pick.Edge, pick.Score, pick.Reasoning,
	)
	if err != nil {
		return fmt.Errorf("failed to save pick: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrPickLocked
	}

	return nil
}

// SaveBatch saves each pick in turn. Locked picks are counted as skipped;
// any other error aborts the batch.
func (r *PostgresPickRepository) SaveBatch(ctx context.Context, picks []*models.Pick) (int, int, error) {
	var saved, skipped int
	for _, pick := range picks {
		err := r.Save(ctx, pick)
		if errors.Is(err, models.ErrPickLocked) {
			skipped++
			continue
		}
		if err != nil {
			return saved, skipped, err
		}
		saved++
	}
	return saved, skipped, nil
}

// GetByDate retrieves the picks for a date, best bets first by rank when
// bestBetsOnly is set, otherwise all picks ordered by score.
func (r *PostgresPickRepository) GetByDate(ctx context.Context, date string, bestBetsOnly bool) ([]*models.Pick, error) {
	query := `SELECT ` + pickColumns + ` FROM model_picks WHERE date = $1 ORDER BY score DESC`
	if bestBetsOnly {
		query = `SELECT ` + pickColumns + ` FROM model_picks WHERE date = $1 AND is_best_bet ORDER BY best_bet_rank`
	}

	rows, err := r.db.GetPool().Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks by date: %w", err)
	}
	defer rows.Close()

	return scanPicks(rows)
}

// GetUngraded retrieves the picks for a date that have no recorded result.
func (r *PostgresPickRepository) GetUngraded(ctx context.Context, date string) ([]*models.Pick, error) {
	query := `SELECT ` + pickColumns + ` FROM model_picks WHERE date = $1 AND result IS NULL ORDER BY game_id, bet_type`

	rows, err := r.db.GetPool().Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query ungraded picks: %w", err)
	}
	defer rows.Close()

	return scanPicks(rows)
}

// MarkBestBets clears the best-bet flags for the date and flags the given
// picks with ranks assigned in order.
func (r *PostgresPickRepository) MarkBestBets(ctx context.Context, date string, picks []*models.Pick) error {
	clear := `
		UPDATE model_picks
		SET is_best_bet = FALSE, best_bet_rank = NULL, updated_at = now()
		WHERE date = $1 AND is_best_bet
	`
	if _, err := r.db.GetPool().Exec(ctx, clear, date); err != nil {
		return fmt.Errorf("failed to clear best bets: %w", err)
	}

	set := `
		UPDATE model_picks
		SET is_best_bet = TRUE, best_bet_rank = $1, updated_at = now()
		WHERE date = $2 AND game_id = $3 AND bet_type = $4
	`
	for i, pick := range picks {
		rank := i + 1
		tag, err := r.db.GetPool().Exec(ctx, set, rank, date, pick.GameID, pick.BetType)
		if err != nil {
			return fmt.Errorf("failed to mark best bet: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("best bet not found: game %d %s on %s", pick.GameID, pick.BetType, date)
		}
		pick.IsBestBet = true
		pick.BestBetRank = &rank
	}

	return nil
}

// LockStartedPicks locks every unlocked, ungraded pick whose game has
// tipped off as of the given time. Returns the number of picks locked.
func (r *PostgresPickRepository) LockStartedPicks(ctx context.Context, asOf time.Time) (int64, error) {
	query := `
		UPDATE model_picks
		SET is_locked = TRUE, updated_at = now()
		WHERE is_locked = FALSE AND result IS NULL AND game_start <= $1
	`

	tag, err := r.db.GetPool().Exec(ctx, query, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to lock started picks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RecordResult stores the final score and grade for a pick.
func (r *PostgresPickRepository) RecordResult(ctx context.Context, id uuid.UUID, homeScore, awayScore int, won bool) error {
	query := `
		UPDATE model_picks
		SET home_score = $2, away_score = $3, result = $4, is_locked = TRUE, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.GetPool().Exec(ctx, query, id, homeScore, awayScore, won)
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// GetGradedRange retrieves all graded picks in a date range, inclusive.
func (r *PostgresPickRepository) GetGradedRange(ctx context.Context, startDate, endDate string) ([]*models.Pick, error) {
	query := `SELECT ` + pickColumns + `
		FROM model_picks
		WHERE date >= $1 AND date <= $2 AND result IS NOT NULL
		ORDER BY date, score DESC`

	rows, err := r.db.GetPool().Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query graded picks: %w", err)
	}
	defer rows.Close()

	return scanPicks(rows)
}
