package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"rps-master/internal/database"
	"rps-master/internal/domain"
	"rps-master/internal/game"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "rps.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createPlayer(t *testing.T, repo *PlayerRepository, id string) {
	t.Helper()
	now := time.Now()
	err := repo.Create(context.Background(), &domain.Player{ID: id, Name: "tester", CreatedAt: now, UpdatedAt: now}, game.FreshRecord())
	require.NoError(t, err)
}

func TestPlayerRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository(openTestDB(t), zerolog.Nop())
	createPlayer(t, repo, "p1")

	p, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "tester", p.Name)
	assert.False(t, p.CreatedAt.IsZero())

	rec, err := repo.GetRecord(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, game.FreshRecord(), rec)

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetRecord(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlayerRepository_SaveRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewPlayerRepository(openTestDB(t), zerolog.Nop())
	createPlayer(t, repo, "p1")

	rec := game.FreshRecord()
	rec.Gold = 700
	rec, err := game.Purchase(rec, "galaxy")
	require.NoError(t, err)
	rec, err = game.Select(rec, "galaxy")
	require.NoError(t, err)
	rec.Wins, rec.TotalGames, rec.CurrentWinStreak, rec.MaxWinStreak = 12, 12, 12, 12
	rec, _ = game.SweepUnlocks(rec)

	require.NoError(t, repo.SaveRecord(ctx, "p1", rec))

	got, err := repo.GetRecord(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	require.NoError(t, repo.SaveRecord(ctx, "p1", game.FreshRecord()))
	got, err = repo.GetRecord(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, game.FreshRecord(), got, "reset removes stale cosmetics")

	assert.ErrorIs(t, repo.SaveRecord(ctx, "missing", rec), ErrNotFound)
}

func TestPlayerRepository_RepairsStoredRecord(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewPlayerRepository(db, zerolog.Nop())
	createPlayer(t, repo, "p1")

	_, err := db.Exec(`UPDATE players SET wins = 3, losses = -2, total_games = 40, level = 0, selected_cosmetic = 'unicorn' WHERE id = 'p1'`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO player_cosmetics (player_id, cosmetic_id, unlocked_at) VALUES ('p1', 'unicorn', ?)`, time.Now())
	require.NoError(t, err)

	rec, err := repo.GetRecord(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Wins)
	assert.Equal(t, 0, rec.Losses)
	assert.Equal(t, 3, rec.TotalGames)
	assert.Equal(t, 1, rec.Level)
	assert.Equal(t, game.DefaultCosmetic, rec.Selected)
	assert.Equal(t, []game.CosmeticID{game.DefaultCosmetic}, rec.Unlocked)
}

func TestHistoryRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	createPlayer(t, NewPlayerRepository(db, zerolog.Nop()), "p1")
	repo := NewHistoryRepository(db, zerolog.Nop())

	h, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, h)

	want := game.History{game.Rock, game.Paper, game.Paper, game.Scissors}
	require.NoError(t, repo.Replace(ctx, "p1", want))
	h, err = repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, want, h)

	_, err = db.Exec(`INSERT INTO move_history (player_id, seq, move) VALUES ('p1', 99, 'lizard')`)
	require.NoError(t, err)
	h, err = repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, want, h, "invalid rows are skipped")

	require.NoError(t, repo.Replace(ctx, "p1", game.EmptyHistory()))
	h, err = repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestRoundRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	createPlayer(t, NewPlayerRepository(db, zerolog.Nop()), "p1")
	repo := NewRoundRepository(db, zerolog.Nop())

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, outcome := range []game.Outcome{game.Win, game.Lose, game.Draw} {
		round := &domain.Round{
			PlayerID:     "p1",
			PlayerMove:   game.Rock,
			OpponentMove: game.Scissors,
			Outcome:      outcome,
			GoldDelta:    i,
			ExpGained:    1,
			LevelAfter:   1,
			PlayedAt:     base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Insert(ctx, round))
		assert.NotEmpty(t, round.ID)
	}

	rounds, err := repo.ListByPlayer(ctx, "p1", 2)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, game.Draw, rounds[0].Outcome)
	assert.Equal(t, game.Lose, rounds[1].Outcome)
	assert.Equal(t, game.Rock, rounds[0].PlayerMove)
	assert.Equal(t, game.Scissors, rounds[0].OpponentMove)
	assert.True(t, rounds[0].PlayedAt.Equal(base.Add(2*time.Hour)))

	deleted, err := repo.DeleteBefore(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	rounds, err = repo.ListByPlayer(ctx, "p1", 10)
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.Equal(t, game.Draw, rounds[0].Outcome)
}

func TestRepositoriesShareTransaction(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	players := NewPlayerRepository(db, zerolog.Nop())
	history := NewHistoryRepository(db, zerolog.Nop())
	createPlayer(t, players, "p1")

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	rec := game.FreshRecord()
	rec.Gold = 42
	require.NoError(t, players.WithTx(tx).SaveRecord(ctx, "p1", rec))
	require.NoError(t, history.WithTx(tx).Replace(ctx, "p1", game.History{game.Rock}))
	require.NoError(t, tx.Rollback())

	got, err := players.GetRecord(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Gold)
	h, err := history.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, h)
}
