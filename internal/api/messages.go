// Package api holds the JSON messages of the GameService Connect API. The
// server and the fasthttp client share these types.
package api

import "time"

const ServicePath = "/rps.v1.GameService/"

const (
	ProcedureCreatePlayer   = ServicePath + "CreatePlayer"
	ProcedureGetProfile     = ServicePath + "GetProfile"
	ProcedurePlayRound      = ServicePath + "PlayRound"
	ProcedurePurchase       = ServicePath + "Purchase"
	ProcedureSelectCosmetic = ServicePath + "SelectCosmetic"
	ProcedureReset          = ServicePath + "Reset"
	ProcedureListRounds     = ServicePath + "ListRounds"
	ProcedureGetCatalog     = ServicePath + "GetCatalog"
	ProcedureExportSave     = ServicePath + "ExportSave"
	ProcedureImportSave     = ServicePath + "ImportSave"
)

const HealthPath = "/healthz"

type CreatePlayerRequest struct {
	Name string `json:"name"`
}

type PlayerRequest struct {
	PlayerID string `json:"player_id"`
}

type PlayRoundRequest struct {
	PlayerID string `json:"player_id"`
	Move     string `json:"move"`
}

type CosmeticRequest struct {
	PlayerID   string `json:"player_id"`
	CosmeticID string `json:"cosmetic_id"`
}

type ListRoundsRequest struct {
	PlayerID string `json:"player_id"`
	Limit    int    `json:"limit"`
}

type CatalogRequest struct{}

type ImportSaveRequest struct {
	PlayerID string `json:"player_id"`
	Data     []byte `json:"data"`
}

type Record struct {
	Wins         int      `json:"wins"`
	Losses       int      `json:"losses"`
	Draws        int      `json:"draws"`
	TotalGames   int      `json:"total_games"`
	WinStreak    int      `json:"win_streak"`
	MaxWinStreak int      `json:"max_win_streak"`
	Gold         int      `json:"gold"`
	Level        int      `json:"level"`
	Exp          int      `json:"exp"`
	Unlocked     []string `json:"unlocked"`
	Selected     string   `json:"selected"`
}

type Tier struct {
	Name    string `json:"name"`
	MinWins int    `json:"min_wins"`
}

type Profile struct {
	PlayerID     string    `json:"player_id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	Record       Record    `json:"record"`
	History      []string  `json:"history"`
	Tier         Tier      `json:"tier"`
	NextLevelExp int       `json:"next_level_exp"`
	WinRate      float64   `json:"win_rate"`
}

type Reward struct {
	Gold         int      `json:"gold"`
	Exp          int      `json:"exp"`
	LevelsGained int      `json:"levels_gained"`
	LevelUpGold  int      `json:"level_up_gold"`
	Unlocked     []string `json:"unlocked,omitempty"`
}

type PlayRoundResponse struct {
	RoundID      string  `json:"round_id"`
	PlayerMove   string  `json:"player_move"`
	OpponentMove string  `json:"opponent_move"`
	Outcome      string  `json:"outcome"`
	Reward       Reward  `json:"reward"`
	Profile      Profile `json:"profile"`
}

type Round struct {
	ID           string    `json:"id"`
	PlayerMove   string    `json:"player_move"`
	OpponentMove string    `json:"opponent_move"`
	Outcome      string    `json:"outcome"`
	GoldDelta    int       `json:"gold_delta"`
	ExpGained    int       `json:"exp_gained"`
	LevelAfter   int       `json:"level_after"`
	StreakAfter  int       `json:"streak_after"`
	PlayedAt     time.Time `json:"played_at"`
}

type ListRoundsResponse struct {
	Rounds []Round `json:"rounds"`
}

type Cosmetic struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Rarity       string `json:"rarity"`
	WinsRequired int    `json:"wins_required,omitempty"`
	Price        int    `json:"price,omitempty"`
}

type CatalogResponse struct {
	Cosmetics []Cosmetic `json:"cosmetics"`
	Tiers     []Tier     `json:"tiers"`
}

// ExportSaveResponse carries the msgpack save; encoding/json renders it as
// base64.
type ExportSaveResponse struct {
	Data []byte `json:"data"`
}

// ErrorBody is the Connect protocol's JSON error payload.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
