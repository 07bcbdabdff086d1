package domain

import (
	"time"

	"rps-master/internal/game"
)

type Player struct {
	ID        string // nanoid
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Progress is the persisted state of one player: the record plus the move
// window the opponent learns from.
type Progress struct {
	Player  Player
	Record  game.Record
	History game.History
}

type Round struct {
	ID           string // nanoid
	PlayerID     string
	PlayerMove   game.Move
	OpponentMove game.Move
	Outcome      game.Outcome
	GoldDelta    int // round reward plus level-up bonus
	ExpGained    int
	LevelAfter   int
	StreakAfter  int
	PlayedAt     time.Time
}
