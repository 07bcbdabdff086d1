package game

// Reward tuning. A win pays WinGoldBase plus StreakBonus for every full
// StreakStep wins in the current streak.
const (
	WinGoldBase = 10
	StreakBonus = 5
	StreakStep  = 3
	WinExp      = 10

	DrawGold = 2
	DrawExp  = 2
	LoseGold = 0
	LoseExp  = 1

	LevelUpBonusGold = 50
	expPerLevel      = 100
)

// ExpThreshold is the experience needed to leave level.
func ExpThreshold(level int) int {
	return level * expPerLevel
}

// Reward describes what a single round granted.
type Reward struct {
	Gold         int
	Exp          int
	LevelsGained int
	LevelUpGold  int
	Unlocked     []CosmeticID
}

// RoundReward returns the gold and experience for an outcome, given the win
// streak after the round has been counted.
func RoundReward(outcome Outcome, streak int) (gold, exp int) {
	switch outcome {
	case Win:
		return WinGoldBase + (streak/StreakStep)*StreakBonus, WinExp
	case Lose:
		return LoseGold, LoseExp
	default:
		return DrawGold, DrawExp
	}
}

// ApplyRound folds one resolved round into rec and returns the new record
// with a description of what changed. rec is not modified.
func ApplyRound(rec Record, outcome Outcome) (Record, Reward) {
	next := rec.Clone()
	next.TotalGames++

	switch outcome {
	case Win:
		next.Wins++
		next.CurrentWinStreak++
		if next.CurrentWinStreak > next.MaxWinStreak {
			next.MaxWinStreak = next.CurrentWinStreak
		}
	case Lose:
		next.Losses++
		next.CurrentWinStreak = 0
	default:
		next.Draws++
	}

	var reward Reward
	reward.Gold, reward.Exp = RoundReward(outcome, next.CurrentWinStreak)
	next.Gold += reward.Gold
	next.Exp += reward.Exp

	if next.Level < 1 {
		next.Level = 1
	}
	for next.Exp >= ExpThreshold(next.Level) {
		next.Exp -= ExpThreshold(next.Level)
		next.Level++
		next.Gold += LevelUpBonusGold
		reward.LevelsGained++
		reward.LevelUpGold += LevelUpBonusGold
	}

	next, reward.Unlocked = SweepUnlocks(next)

	if !next.HasCosmetic(next.Selected) {
		next.Selected = DefaultCosmetic
	}
	return next, reward
}

// SweepUnlocks adds every win-gated cosmetic the record now qualifies for and
// reports the newly added ids. Purchasable cosmetics are never unlocked here.
func SweepUnlocks(rec Record) (Record, []CosmeticID) {
	next := rec.Clone()
	var added []CosmeticID
	for _, c := range catalog {
		if c.Purchasable() || next.Wins < c.WinsRequired || next.HasCosmetic(c.ID) {
			continue
		}
		next.unlock(c.ID)
		added = append(added, c.ID)
	}
	return next, added
}
