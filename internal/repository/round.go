package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rps-master/internal/domain"
	"rps-master/internal/game"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type RoundRepository struct {
	db     DBTX
	logger zerolog.Logger
}

func NewRoundRepository(sqlDB *sql.DB, logger zerolog.Logger) *RoundRepository {
	return &RoundRepository{db: sqlDB, logger: logger}
}

func (r *RoundRepository) WithTx(tx *sql.Tx) *RoundRepository {
	return &RoundRepository{db: tx, logger: r.logger}
}

// Insert logs a round, assigning a nanoid when round.ID is empty.
func (r *RoundRepository) Insert(ctx context.Context, round *domain.Round) error {
	if round.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		round.ID = id
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rounds (id, player_id, player_move, opponent_move, outcome,
		                    gold_delta, exp_gained, level_after, streak_after, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		round.ID, round.PlayerID, round.PlayerMove.String(), round.OpponentMove.String(),
		round.Outcome.String(), round.GoldDelta, round.ExpGained, round.LevelAfter,
		round.StreakAfter, round.PlayedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert round %s: %w", round.ID, err)
	}
	return nil
}

// ListByPlayer returns the newest rounds first.
func (r *RoundRepository) ListByPlayer(ctx context.Context, playerID string, limit int) ([]domain.Round, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, player_id, player_move, opponent_move, outcome,
		       gold_delta, exp_gained, level_after, streak_after, played_at
		FROM rounds WHERE player_id = ?
		ORDER BY played_at DESC, rowid DESC
		LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := []domain.Round{}
	for rows.Next() {
		var round domain.Round
		var playerMove, opponentMove, outcome string
		err := rows.Scan(&round.ID, &round.PlayerID, &playerMove, &opponentMove, &outcome,
			&round.GoldDelta, &round.ExpGained, &round.LevelAfter, &round.StreakAfter, &round.PlayedAt)
		if err != nil {
			return nil, err
		}
		round.PlayerMove, _ = game.ParseMove(playerMove)
		round.OpponentMove, _ = game.ParseMove(opponentMove)
		round.Outcome = parseOutcome(outcome)
		rounds = append(rounds, round)
	}
	return rounds, rows.Err()
}

// DeleteBefore drops every round played before cutoff and reports how many
// were removed.
func (r *RoundRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rounds WHERE played_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune rounds: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	r.logger.Debug().Time("cutoff", cutoff).Int64("deleted", n).Msg("rounds pruned")
	return n, nil
}

func parseOutcome(s string) game.Outcome {
	switch s {
	case game.Win.String():
		return game.Win
	case game.Lose.String():
		return game.Lose
	default:
		return game.Draw
	}
}
