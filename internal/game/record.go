package game

// Record is the durable progression state of one player.
type Record struct {
	Wins             int
	Losses           int
	Draws            int
	TotalGames       int
	CurrentWinStreak int
	MaxWinStreak     int
	Gold             int
	Level            int
	Exp              int
	Unlocked         []CosmeticID // catalog order, always contains DefaultCosmetic
	Selected         CosmeticID
}

func FreshRecord() Record {
	return Record{
		Level:    1,
		Unlocked: []CosmeticID{DefaultCosmetic},
		Selected: DefaultCosmetic,
	}
}

// Clone returns a copy that shares no memory with r.
func (r Record) Clone() Record {
	out := r
	out.Unlocked = append([]CosmeticID(nil), r.Unlocked...)
	return out
}

func (r Record) HasCosmetic(id CosmeticID) bool {
	for _, u := range r.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

func (r Record) WinRate() float64 {
	if r.TotalGames == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.TotalGames)
}

// unlock adds id keeping Unlocked in catalog order.
func (r *Record) unlock(id CosmeticID) {
	if r.HasCosmetic(id) {
		return
	}
	set := make(map[CosmeticID]bool, len(r.Unlocked)+1)
	for _, u := range r.Unlocked {
		set[u] = true
	}
	set[id] = true
	ordered := make([]CosmeticID, 0, len(set))
	for _, c := range catalog {
		if set[c.ID] {
			ordered = append(ordered, c.ID)
		}
	}
	r.Unlocked = ordered
}

// Normalize repairs a record loaded from storage field by field: negative
// counters become zero, totals are recomputed, unknown cosmetics are dropped
// and the selection falls back to the default skin.
func Normalize(r Record) Record {
	out := Record{
		Wins:             nonNegative(r.Wins),
		Losses:           nonNegative(r.Losses),
		Draws:            nonNegative(r.Draws),
		CurrentWinStreak: nonNegative(r.CurrentWinStreak),
		MaxWinStreak:     nonNegative(r.MaxWinStreak),
		Gold:             nonNegative(r.Gold),
		Level:            r.Level,
		Exp:              nonNegative(r.Exp),
		Unlocked:         []CosmeticID{DefaultCosmetic},
		Selected:         r.Selected,
	}
	out.TotalGames = out.Wins + out.Losses + out.Draws
	if out.MaxWinStreak < out.CurrentWinStreak {
		out.MaxWinStreak = out.CurrentWinStreak
	}
	if out.Level < 1 {
		out.Level = 1
	}
	for _, id := range r.Unlocked {
		if _, ok := LookupCosmetic(id); ok {
			out.unlock(id)
		}
	}
	if !out.HasCosmetic(out.Selected) {
		out.Selected = DefaultCosmetic
	}
	return out
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
