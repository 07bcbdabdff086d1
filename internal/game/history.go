package game

// HistoryWindow is the number of player moves kept for the opponent policy.
const HistoryWindow = 10

// History holds the player's most recent moves, oldest first.
type History []Move

func EmptyHistory() History {
	return History{}
}

// Append returns a new history with m added, evicting the oldest entries
// beyond HistoryWindow. The receiver is never modified.
func (h History) Append(m Move) History {
	start := 0
	if len(h)+1 > HistoryWindow {
		start = len(h) + 1 - HistoryWindow
	}
	out := make(History, 0, HistoryWindow)
	out = append(out, h[start:]...)
	return append(out, m)
}

// Last returns up to n of the most recent moves.
func (h History) Last(n int) History {
	if n >= len(h) {
		return h
	}
	return h[len(h)-n:]
}

// NormalizeHistory drops anything that is not a valid move and keeps the
// newest HistoryWindow entries.
func NormalizeHistory(moves []Move) History {
	out := make(History, 0, len(moves))
	for _, m := range moves {
		if m.Valid() {
			out = append(out, m)
		}
	}
	if len(out) > HistoryWindow {
		out = out[len(out)-HistoryWindow:]
	}
	return out
}
