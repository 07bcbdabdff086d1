// Package snapshot encodes a player's progression and move history as a
// single msgpack blob, the portable save file of the game.
//
// Decoding never trusts the blob: every field that is missing or has the
// wrong type falls back to its fresh value, and the result is normalized
// before it is returned.
package snapshot

import (
	"errors"
	"fmt"
	"math"

	"rps-master/internal/game"

	"github.com/vmihailenco/msgpack/v5"
)

var ErrMalformedSave = errors.New("malformed save")

const (
	keyWins         = "wins"
	keyLosses       = "losses"
	keyDraws        = "draws"
	keyTotalGames   = "totalGames"
	keyWinStreak    = "winStreak"
	keyMaxWinStreak = "maxWinStreak"
	keyGold         = "gold"
	keyLevel        = "level"
	keyExp          = "exp"
	keyUnlocked     = "unlocked"
	keySelected     = "selected"
	keyHistory      = "history"
)

func Encode(rec game.Record, history game.History) ([]byte, error) {
	unlocked := make([]string, len(rec.Unlocked))
	for i, id := range rec.Unlocked {
		unlocked[i] = string(id)
	}
	moves := make([]string, len(history))
	for i, m := range history {
		moves[i] = m.String()
	}

	blob := map[string]any{
		keyWins:         rec.Wins,
		keyLosses:       rec.Losses,
		keyDraws:        rec.Draws,
		keyTotalGames:   rec.TotalGames,
		keyWinStreak:    rec.CurrentWinStreak,
		keyMaxWinStreak: rec.MaxWinStreak,
		keyGold:         rec.Gold,
		keyLevel:        rec.Level,
		keyExp:          rec.Exp,
		keyUnlocked:     unlocked,
		keySelected:     string(rec.Selected),
		keyHistory:      moves,
	}

	data, err := msgpack.Marshal(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to encode save: %w", err)
	}
	return data, nil
}

// Decode reads a save produced by Encode. Only a blob that is not a msgpack
// map is rejected; anything inside it is repaired field by field.
func Decode(data []byte) (game.Record, game.History, error) {
	var blob map[string]any
	if err := msgpack.Unmarshal(data, &blob); err != nil {
		return game.Record{}, nil, fmt.Errorf("%w: %v", ErrMalformedSave, err)
	}
	if blob == nil {
		return game.Record{}, nil, fmt.Errorf("%w: empty save", ErrMalformedSave)
	}

	fresh := game.FreshRecord()
	rec := game.Record{
		Wins:             intField(blob, keyWins, fresh.Wins),
		Losses:           intField(blob, keyLosses, fresh.Losses),
		Draws:            intField(blob, keyDraws, fresh.Draws),
		CurrentWinStreak: intField(blob, keyWinStreak, fresh.CurrentWinStreak),
		MaxWinStreak:     intField(blob, keyMaxWinStreak, fresh.MaxWinStreak),
		Gold:             intField(blob, keyGold, fresh.Gold),
		Level:            intField(blob, keyLevel, fresh.Level),
		Exp:              intField(blob, keyExp, fresh.Exp),
		Selected:         game.CosmeticID(stringField(blob, keySelected, string(fresh.Selected))),
	}
	for _, s := range stringsField(blob, keyUnlocked) {
		rec.Unlocked = append(rec.Unlocked, game.CosmeticID(s))
	}

	var moves []game.Move
	for _, s := range stringsField(blob, keyHistory) {
		if m, err := game.ParseMove(s); err == nil {
			moves = append(moves, m)
		}
	}

	return game.Normalize(rec), game.NormalizeHistory(moves), nil
}

func intField(blob map[string]any, key string, fallback int) int {
	v, ok := blob[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return clampInt64(n)
	case int:
		return n
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return clampInt64(int64(n))
	case uint64:
		if n > math.MaxInt32 {
			return math.MaxInt32
		}
		return int(n)
	case float32:
		return floatToInt(float64(n), fallback)
	case float64:
		return floatToInt(n, fallback)
	}
	return fallback
}

func clampInt64(n int64) int {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int(n)
}

func floatToInt(f float64, fallback int) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return clampInt64(int64(math.Max(math.MinInt32, math.Min(math.MaxInt32, math.Floor(f)))))
}

func stringField(blob map[string]any, key, fallback string) string {
	if s, ok := blob[key].(string); ok {
		return s
	}
	return fallback
}

func stringsField(blob map[string]any, key string) []string {
	items, ok := blob[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
