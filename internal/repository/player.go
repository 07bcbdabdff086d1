package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rps-master/internal/domain"
	"rps-master/internal/game"

	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	db     DBTX
	logger zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{db: sqlDB, logger: logger}
}

func (r *PlayerRepository) WithTx(tx *sql.Tx) *PlayerRepository {
	return &PlayerRepository{db: tx, logger: r.logger}
}

func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player, rec game.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO players (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		player.ID, player.Name, player.CreatedAt.UTC(), player.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert player %s: %w", player.ID, err)
	}
	return r.SaveRecord(ctx, player.ID, rec)
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*domain.Player, error) {
	var p domain.Player
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM players WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetRecord loads the progression record. Stored values are repaired by
// game.Normalize, so a hand-edited or partially written row never fails the
// load.
func (r *PlayerRepository) GetRecord(ctx context.Context, id string) (game.Record, error) {
	var rec game.Record
	var selected string
	err := r.db.QueryRowContext(ctx, `
		SELECT wins, losses, draws, total_games, current_win_streak, max_win_streak,
		       gold, level, exp, selected_cosmetic
		FROM players WHERE id = ?`, id).
		Scan(&rec.Wins, &rec.Losses, &rec.Draws, &rec.TotalGames, &rec.CurrentWinStreak,
			&rec.MaxWinStreak, &rec.Gold, &rec.Level, &rec.Exp, &selected)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Record{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return game.Record{}, err
	}
	rec.Selected = game.CosmeticID(selected)

	rows, err := r.db.QueryContext(ctx, `
		SELECT cosmetic_id FROM player_cosmetics WHERE player_id = ?`, id)
	if err != nil {
		return game.Record{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var cosmetic string
		if err := rows.Scan(&cosmetic); err != nil {
			return game.Record{}, err
		}
		if _, ok := game.LookupCosmetic(game.CosmeticID(cosmetic)); !ok {
			r.logger.Warn().Str("player_id", id).Str("cosmetic_id", cosmetic).Msg("dropping unknown cosmetic")
			continue
		}
		rec.Unlocked = append(rec.Unlocked, game.CosmeticID(cosmetic))
	}
	if err := rows.Err(); err != nil {
		return game.Record{}, err
	}

	normalized := game.Normalize(rec)
	if normalized.TotalGames != rec.TotalGames || normalized.Selected != rec.Selected || normalized.Level != rec.Level {
		r.logger.Warn().Str("player_id", id).Msg("stored record repaired on load")
	}
	return normalized, nil
}

// SaveRecord writes counters and makes player_cosmetics mirror rec.Unlocked.
func (r *PlayerRepository) SaveRecord(ctx context.Context, id string, rec game.Record) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE players SET
			wins = ?, losses = ?, draws = ?, total_games = ?,
			current_win_streak = ?, max_win_streak = ?,
			gold = ?, level = ?, exp = ?, selected_cosmetic = ?, updated_at = ?
		WHERE id = ?`,
		rec.Wins, rec.Losses, rec.Draws, rec.TotalGames,
		rec.CurrentWinStreak, rec.MaxWinStreak,
		rec.Gold, rec.Level, rec.Exp, string(rec.Selected), now, id)
	if err != nil {
		return fmt.Errorf("failed to update player %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("player %s: %w", id, ErrNotFound)
	}

	for _, cosmetic := range rec.Unlocked {
		_, err := r.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO player_cosmetics (player_id, cosmetic_id, unlocked_at)
			VALUES (?, ?, ?)`, id, string(cosmetic), now)
		if err != nil {
			return fmt.Errorf("failed to unlock cosmetic %s for %s: %w", cosmetic, id, err)
		}
	}

	if err := r.pruneCosmetics(ctx, id, rec.Unlocked); err != nil {
		return err
	}

	r.logger.Debug().
		Str("player_id", id).
		Int("total_games", rec.TotalGames).
		Int("level", rec.Level).
		Int("gold", rec.Gold).
		Msg("record saved")
	return nil
}

// pruneCosmetics removes rows that are no longer unlocked, which only
// happens on reset or import.
func (r *PlayerRepository) pruneCosmetics(ctx context.Context, id string, keep []game.CosmeticID) error {
	rows, err := r.db.QueryContext(ctx, `SELECT cosmetic_id FROM player_cosmetics WHERE player_id = ?`, id)
	if err != nil {
		return err
	}
	var stale []string
	for rows.Next() {
		var cosmetic string
		if err := rows.Scan(&cosmetic); err != nil {
			rows.Close()
			return err
		}
		if !containsCosmetic(keep, game.CosmeticID(cosmetic)) {
			stale = append(stale, cosmetic)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, cosmetic := range stale {
		if _, err := r.db.ExecContext(ctx, `
			DELETE FROM player_cosmetics WHERE player_id = ? AND cosmetic_id = ?`, id, cosmetic); err != nil {
			return fmt.Errorf("failed to remove cosmetic %s for %s: %w", cosmetic, id, err)
		}
	}
	return nil
}

func containsCosmetic(ids []game.CosmeticID, id game.CosmeticID) bool {
	for _, c := range ids {
		if c == id {
			return true
		}
	}
	return false
}
