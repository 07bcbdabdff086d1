package game

const (
	// PolicyWindow is how many recent player moves the opponent inspects.
	PolicyWindow = 3

	// AdaptProbability is the chance the opponent counters the player's
	// most frequent recent move instead of playing at random.
	AdaptProbability = 0.7
)

// Random is the randomness consumed by the opponent. *rand.Rand from
// math/rand/v2 satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// ChooseOpponentMove picks the opponent's move from the player's history.
// With fewer than PolicyWindow moves it plays uniformly at random. Otherwise
// it counters the most frequent move of the last PolicyWindow with
// probability AdaptProbability, falling back to a uniform pick.
func ChooseOpponentMove(history History, rnd Random) Move {
	if len(history) < PolicyWindow {
		return randomMove(rnd)
	}
	if rnd.Float64() < AdaptProbability {
		return modeOf(history.Last(PolicyWindow)).CounteredBy()
	}
	return randomMove(rnd)
}

func randomMove(rnd Random) Move {
	return Moves[rnd.IntN(len(Moves))]
}

// modeOf returns the most frequent move. Ties go to the move declared first.
func modeOf(window History) Move {
	var counts [len(Moves) + 1]int
	for _, m := range window {
		if m.Valid() {
			counts[m]++
		}
	}
	best := Moves[0]
	for _, m := range Moves[1:] {
		if counts[m] > counts[best] {
			best = m
		}
	}
	return best
}
