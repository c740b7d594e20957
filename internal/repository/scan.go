package repository

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/courtline/internal/models"
)

func scanPicks(rows pgx.Rows) ([]*models.Pick, error) {
	var picks []*models.Pick
	for rows.Next() {
		pick := &models.Pick{}
		err := rows.Scan(
			&pick.ID, &pick.Date, &pick.GameID, &pick.GameDescription, &pick.HomeTeam,
			&pick.AwayTeam, &pick.GameStart, &pick.BetType, &pick.Selection, &pick.Line,
			&pick.Pick, &pick.Odds, &pick.ValueRating, &pick.Confidence, &pick.Edge,
			&pick.Score, &pick.Reasoning, &pick.IsBestBet, &pick.BestBetRank, &pick.IsLocked,
			&pick.HomeScore, &pick.AwayScore, &pick.Result, &pick.CreatedAt, &pick.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		picks = append(picks, pick)
	}

	return picks, rows.Err()
}
