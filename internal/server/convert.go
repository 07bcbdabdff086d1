package server

import (
	"rps-master/internal/api"
	"rps-master/internal/domain"
	"rps-master/internal/game"
	"rps-master/internal/service"
)

func cosmeticIDs(ids []game.CosmeticID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func toRecord(rec game.Record) api.Record {
	return api.Record{
		Wins:         rec.Wins,
		Losses:       rec.Losses,
		Draws:        rec.Draws,
		TotalGames:   rec.TotalGames,
		WinStreak:    rec.CurrentWinStreak,
		MaxWinStreak: rec.MaxWinStreak,
		Gold:         rec.Gold,
		Level:        rec.Level,
		Exp:          rec.Exp,
		Unlocked:     cosmeticIDs(rec.Unlocked),
		Selected:     string(rec.Selected),
	}
}

func toTier(t game.Tier) api.Tier {
	return api.Tier{Name: t.Name, MinWins: t.MinWins}
}

func toProfile(p *service.Profile) *api.Profile {
	history := make([]string, len(p.History))
	for i, m := range p.History {
		history[i] = m.String()
	}
	return &api.Profile{
		PlayerID:     p.Player.ID,
		Name:         p.Player.Name,
		CreatedAt:    p.Player.CreatedAt,
		Record:       toRecord(p.Record),
		History:      history,
		Tier:         toTier(p.Tier),
		NextLevelExp: p.NextLevelExp,
		WinRate:      p.WinRate,
	}
}

func toReward(r game.Reward) api.Reward {
	reward := api.Reward{
		Gold:         r.Gold,
		Exp:          r.Exp,
		LevelsGained: r.LevelsGained,
		LevelUpGold:  r.LevelUpGold,
	}
	if len(r.Unlocked) > 0 {
		reward.Unlocked = cosmeticIDs(r.Unlocked)
	}
	return reward
}

func toRound(r domain.Round) api.Round {
	return api.Round{
		ID:           r.ID,
		PlayerMove:   r.PlayerMove.String(),
		OpponentMove: r.OpponentMove.String(),
		Outcome:      r.Outcome.String(),
		GoldDelta:    r.GoldDelta,
		ExpGained:    r.ExpGained,
		LevelAfter:   r.LevelAfter,
		StreakAfter:  r.StreakAfter,
		PlayedAt:     r.PlayedAt,
	}
}

func toCosmetic(c game.Cosmetic) api.Cosmetic {
	return api.Cosmetic{
		ID:           string(c.ID),
		Name:         c.Name,
		Rarity:       string(c.Rarity),
		WinsRequired: c.WinsRequired,
		Price:        c.Price,
	}
}
