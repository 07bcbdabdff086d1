package repository

import (
	"context"
	"database/sql"
	"fmt"

	"rps-master/internal/game"

	"github.com/rs/zerolog"
)

type HistoryRepository struct {
	db     DBTX
	logger zerolog.Logger
}

func NewHistoryRepository(sqlDB *sql.DB, logger zerolog.Logger) *HistoryRepository {
	return &HistoryRepository{db: sqlDB, logger: logger}
}

func (r *HistoryRepository) WithTx(tx *sql.Tx) *HistoryRepository {
	return &HistoryRepository{db: tx, logger: r.logger}
}

// Get returns the player's move window, oldest first. Unparsable rows are
// skipped.
func (r *HistoryRepository) Get(ctx context.Context, playerID string) (game.History, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT move FROM move_history WHERE player_id = ? ORDER BY seq ASC`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moves []game.Move
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		m, err := game.ParseMove(raw)
		if err != nil {
			r.logger.Warn().Str("player_id", playerID).Str("move", raw).Msg("skipping invalid stored move")
			continue
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return game.NormalizeHistory(moves), nil
}

func (r *HistoryRepository) Replace(ctx context.Context, playerID string, history game.History) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM move_history WHERE player_id = ?`, playerID); err != nil {
		return fmt.Errorf("failed to clear history for %s: %w", playerID, err)
	}
	for seq, m := range history {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO move_history (player_id, seq, move) VALUES (?, ?, ?)`,
			playerID, seq, m.String())
		if err != nil {
			return fmt.Errorf("failed to store history for %s: %w", playerID, err)
		}
	}
	return nil
}
