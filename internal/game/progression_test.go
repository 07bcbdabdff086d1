package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyAll(rec Record, outcomes ...Outcome) (Record, []Reward) {
	rewards := make([]Reward, 0, len(outcomes))
	for _, o := range outcomes {
		var r Reward
		rec, r = ApplyRound(rec, o)
		rewards = append(rewards, r)
	}
	return rec, rewards
}

func assertInvariants(t *testing.T, rec Record) {
	t.Helper()
	assert.Equal(t, rec.Wins+rec.Losses+rec.Draws, rec.TotalGames, "total games")
	assert.LessOrEqual(t, rec.CurrentWinStreak, rec.MaxWinStreak, "streak")
	assert.True(t, rec.HasCosmetic(DefaultCosmetic), "default unlocked")
	assert.True(t, rec.HasCosmetic(rec.Selected), "selected unlocked")
	assert.Less(t, rec.Exp, ExpThreshold(rec.Level), "exp below threshold")
}

func TestApplyRound_StreakRewardScenario(t *testing.T) {
	rec := FreshRecord()
	rec.Gold = 100

	rec, rewards := applyAll(rec, Win, Win, Win)

	assert.Equal(t, 3, rec.CurrentWinStreak)
	assert.Equal(t, 3, rec.MaxWinStreak)
	assert.Equal(t, 10, rewards[0].Gold)
	assert.Equal(t, 10, rewards[1].Gold)
	assert.Equal(t, 15, rewards[2].Gold)
	assert.Equal(t, 100+10+10+15, rec.Gold)
	assert.Equal(t, 30, rec.Exp)
	assertInvariants(t, rec)
}

func TestApplyRound_LevelUpScenario(t *testing.T) {
	rec := FreshRecord()
	rec.Exp = 95

	next, reward := ApplyRound(rec, Win)

	assert.Equal(t, 2, next.Level)
	assert.Equal(t, 5, next.Exp)
	assert.Equal(t, 1, reward.LevelsGained)
	assert.Equal(t, LevelUpBonusGold, reward.LevelUpGold)
	assert.Equal(t, WinGoldBase+LevelUpBonusGold, next.Gold)
	assertInvariants(t, next)
}

func TestApplyRound_LevelUpCascades(t *testing.T) {
	rec := FreshRecord()
	// Level 1 needs 100, level 2 needs 200: 305 + 1 exp clears both.
	rec.Exp = 305

	next, reward := ApplyRound(rec, Lose)

	assert.Equal(t, 3, next.Level)
	assert.Equal(t, 6, next.Exp)
	assert.Equal(t, 2, reward.LevelsGained)
	assert.Equal(t, 2*LevelUpBonusGold, next.Gold)
	assertInvariants(t, next)
}

func TestApplyRound_ExactThresholdAdvances(t *testing.T) {
	rec := FreshRecord()
	rec.Level = 4
	rec.Exp = ExpThreshold(4) - DrawExp

	next, _ := ApplyRound(rec, Draw)

	assert.Equal(t, 5, next.Level)
	assert.Equal(t, 0, next.Exp)
}

func TestApplyRound_Counters(t *testing.T) {
	tests := []struct {
		name     string
		outcome  Outcome
		wantWins int
		wantLoss int
		wantDraw int
		wantGold int
		wantExp  int
	}{
		{name: "win", outcome: Win, wantWins: 1, wantGold: WinGoldBase, wantExp: WinExp},
		{name: "lose", outcome: Lose, wantLoss: 1, wantGold: LoseGold, wantExp: LoseExp},
		{name: "draw", outcome: Draw, wantDraw: 1, wantGold: DrawGold, wantExp: DrawExp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, reward := ApplyRound(FreshRecord(), tt.outcome)
			assert.Equal(t, 1, next.TotalGames)
			assert.Equal(t, tt.wantWins, next.Wins)
			assert.Equal(t, tt.wantLoss, next.Losses)
			assert.Equal(t, tt.wantDraw, next.Draws)
			assert.Equal(t, tt.wantGold, reward.Gold)
			assert.Equal(t, tt.wantExp, reward.Exp)
			assertInvariants(t, next)
		})
	}
}

func TestApplyRound_StreakRules(t *testing.T) {
	rec, _ := applyAll(FreshRecord(), Win, Win, Win, Win, Win)
	assert.Equal(t, 5, rec.CurrentWinStreak)

	rec, _ = ApplyRound(rec, Draw)
	assert.Equal(t, 5, rec.CurrentWinStreak, "draw keeps the streak")

	rec, _ = ApplyRound(rec, Lose)
	assert.Equal(t, 0, rec.CurrentWinStreak)
	assert.Equal(t, 5, rec.MaxWinStreak)

	rec, _ = applyAll(rec, Win, Win)
	assert.Equal(t, 2, rec.CurrentWinStreak)
	assert.Equal(t, 5, rec.MaxWinStreak)
}

func TestApplyRound_MaxStreakNeverDecreases(t *testing.T) {
	seq := []Outcome{Win, Win, Lose, Draw, Win, Win, Win, Lose, Lose, Win, Draw, Win}
	rec := FreshRecord()
	prevMax := 0
	for _, o := range seq {
		rec, _ = ApplyRound(rec, o)
		assert.GreaterOrEqual(t, rec.MaxWinStreak, prevMax)
		prevMax = rec.MaxWinStreak
		assertInvariants(t, rec)
	}
	assert.Equal(t, 3, rec.MaxWinStreak)
}

func TestRoundRewardMonotonicInStreak(t *testing.T) {
	prev := 0
	for streak := 1; streak <= 30; streak++ {
		gold, exp := RoundReward(Win, streak)
		assert.GreaterOrEqual(t, gold, prev)
		assert.Equal(t, WinExp, exp)
		prev = gold
	}
	drawGold, _ := RoundReward(Draw, 0)
	drawGoldStreak, _ := RoundReward(Draw, 9)
	assert.Equal(t, drawGold, drawGoldStreak)
}

func TestApplyRound_DoesNotMutateInput(t *testing.T) {
	rec := FreshRecord()
	rec.Wins = 9
	rec.TotalGames = 9
	rec.MaxWinStreak = 9
	rec.CurrentWinStreak = 9
	before := rec.Clone()

	next, reward := ApplyRound(rec, Win)

	assert.Equal(t, before, rec)
	assert.Equal(t, []CosmeticID{"bronze"}, reward.Unlocked)
	assert.Equal(t, []CosmeticID{DefaultCosmetic, "bronze"}, next.Unlocked)
}

func TestApplyRound_RepairsSelection(t *testing.T) {
	rec := FreshRecord()
	rec.Selected = "dragon"

	next, _ := ApplyRound(rec, Draw)
	assert.Equal(t, DefaultCosmetic, next.Selected)
}

func TestSweepUnlocks(t *testing.T) {
	rec := FreshRecord()
	rec.Wins = 35

	once, added := SweepUnlocks(rec)
	require.Equal(t, []CosmeticID{"bronze", "silver"}, added)
	assert.Equal(t, []CosmeticID{DefaultCosmetic, "bronze", "silver"}, once.Unlocked)

	twice, addedAgain := SweepUnlocks(once)
	assert.Empty(t, addedAgain)
	assert.Equal(t, once.Unlocked, twice.Unlocked)
}

func TestSweepUnlocksSkipsPurchasable(t *testing.T) {
	rec := FreshRecord()
	rec.Wins = 10000

	next, _ := SweepUnlocks(rec)
	for _, c := range Catalog() {
		assert.Equal(t, !c.Purchasable(), next.HasCosmetic(c.ID), c.ID)
	}
}

func TestUnlockedOnlyGrows(t *testing.T) {
	rec := FreshRecord()
	rec.Gold = 10000
	rec, err := Purchase(rec, "galaxy")
	require.NoError(t, err)

	prev := len(rec.Unlocked)
	for i := 0; i < 80; i++ {
		o := Win
		if i%4 == 3 {
			o = Lose
		}
		rec, _ = ApplyRound(rec, o)
		assert.GreaterOrEqual(t, len(rec.Unlocked), prev)
		assert.True(t, rec.HasCosmetic("galaxy"))
		prev = len(rec.Unlocked)
	}
	assert.True(t, rec.HasCosmetic("golden"))
}
