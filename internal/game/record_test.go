package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryAppendEvictsOldest(t *testing.T) {
	h := EmptyHistory()
	for i := 0; i < HistoryWindow; i++ {
		h = h.Append(Rock)
	}
	require.Len(t, h, HistoryWindow)

	prev := h
	h = h.Append(Scissors)
	assert.Len(t, h, HistoryWindow)
	assert.Equal(t, Scissors, h[len(h)-1])
	assert.Equal(t, Rock, prev[len(prev)-1], "append must not touch the receiver")

	h = History{Paper}.Append(Rock).Append(Scissors)
	assert.Equal(t, History{Paper, Rock, Scissors}, h)
	assert.Equal(t, History{Rock, Scissors}, h.Last(2))
	assert.Equal(t, h, h.Last(10))
}

func TestNormalizeHistory(t *testing.T) {
	in := []Move{0, Rock, 7, Paper, Scissors, Rock, Rock, Rock, Paper, Paper, Paper, Scissors, Scissors}
	got := NormalizeHistory(in)

	assert.Len(t, got, HistoryWindow)
	for _, m := range got {
		assert.True(t, m.Valid())
	}
	assert.Equal(t, Scissors, got[len(got)-1])
	assert.Equal(t, Paper, got[0])
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		in    Record
		check func(t *testing.T, got Record)
	}{
		{
			name: "zero value becomes fresh",
			in:   Record{},
			check: func(t *testing.T, got Record) {
				assert.Equal(t, FreshRecord(), got)
			},
		},
		{
			name: "negative counters clamp and total recomputed",
			in:   Record{Wins: 4, Losses: -3, Draws: 2, TotalGames: 99, Gold: -10, Exp: -1, Level: 3},
			check: func(t *testing.T, got Record) {
				assert.Equal(t, 0, got.Losses)
				assert.Equal(t, 6, got.TotalGames)
				assert.Equal(t, 0, got.Gold)
				assert.Equal(t, 0, got.Exp)
				assert.Equal(t, 3, got.Level)
			},
		},
		{
			name: "max streak raised to current",
			in:   Record{Wins: 5, CurrentWinStreak: 5, MaxWinStreak: 2, Level: 1},
			check: func(t *testing.T, got Record) {
				assert.Equal(t, 5, got.MaxWinStreak)
			},
		},
		{
			name: "unknown cosmetics dropped and default restored",
			in:   Record{Level: 1, Unlocked: []CosmeticID{"galaxy", "unicorn", "neon", "galaxy"}, Selected: "unicorn"},
			check: func(t *testing.T, got Record) {
				assert.Equal(t, []CosmeticID{DefaultCosmetic, "neon", "galaxy"}, got.Unlocked)
				assert.Equal(t, DefaultCosmetic, got.Selected)
			},
		},
		{
			name: "valid selection kept",
			in:   Record{Level: 2, Unlocked: []CosmeticID{DefaultCosmetic, "neon"}, Selected: "neon"},
			check: func(t *testing.T, got Record) {
				assert.Equal(t, CosmeticID("neon"), got.Selected)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			tt.check(t, got)
			assert.Equal(t, got.Wins+got.Losses+got.Draws, got.TotalGames)
			assert.LessOrEqual(t, got.CurrentWinStreak, got.MaxWinStreak)
			assert.True(t, got.HasCosmetic(DefaultCosmetic))
			assert.True(t, got.HasCosmetic(got.Selected))
			assert.Equal(t, got, Normalize(got), "normalize is idempotent")
		})
	}
}

func TestWinRate(t *testing.T) {
	assert.Zero(t, FreshRecord().WinRate())
	assert.InDelta(t, 0.25, Record{Wins: 1, Losses: 3, TotalGames: 4}.WinRate(), 1e-9)
}

func TestPlayRound(t *testing.T) {
	rec := FreshRecord()
	history := History{Rock, Rock}
	rnd := &scriptedRandom{ints: []int{2}}

	res := PlayRound(rec, history, Rock, rnd)

	assert.Equal(t, Rock, res.PlayerMove)
	assert.Equal(t, Scissors, res.OpponentMove)
	assert.Equal(t, Win, res.Outcome)
	assert.Equal(t, History{Rock, Rock, Rock}, res.History)
	assert.Equal(t, History{Rock, Rock}, history)
	assert.Equal(t, 1, res.Record.Wins)
	assert.Equal(t, WinGoldBase, res.Reward.Gold)
	assert.Equal(t, 0, rec.Wins)
}

func TestPlayRoundOpponentIgnoresCurrentMove(t *testing.T) {
	// Two moves of history keep the opponent in the cold-start branch even
	// though the current move would complete a window of three.
	rnd := &scriptedRandom{ints: []int{0}}
	res := PlayRound(FreshRecord(), History{Scissors, Scissors}, Scissors, rnd)
	assert.Equal(t, Rock, res.OpponentMove)
	assert.Equal(t, Lose, res.Outcome)
	assert.Empty(t, rnd.floats)
}

func TestPlayRoundSessionInvariants(t *testing.T) {
	rnd := rand.New(rand.NewPCG(42, 42))
	rec, history := FreshRecord(), EmptyHistory()
	for i := 0; i < 500; i++ {
		res := PlayRound(rec, history, Moves[i%len(Moves)], rnd)
		assertInvariants(t, res.Record)
		assert.LessOrEqual(t, len(res.History), HistoryWindow)
		assert.Equal(t, rec.TotalGames+1, res.Record.TotalGames)
		rec, history = res.Record, res.History
	}
}
