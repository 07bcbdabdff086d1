// Package game implements rock-paper-scissors rounds against an adaptive
// opponent, plus the gold, experience, level and cosmetic progression that
// each round feeds.
//
// Every function here is pure with respect to its arguments. The only
// outside input is the Random passed to the opponent policy, so a seeded
// source reproduces a session exactly. Callers own persistence and must
// serialize access to a single player's Record and History.
package game

// RoundResult is everything a presentation layer needs to render a round.
type RoundResult struct {
	PlayerMove   Move
	OpponentMove Move
	Outcome      Outcome
	Record       Record
	History      History
	Reward       Reward
}

// PlayRound resolves playerMove against an opponent that only sees the
// history from before this round, then applies the progression update.
func PlayRound(rec Record, history History, playerMove Move, rnd Random) RoundResult {
	opponent := ChooseOpponentMove(history, rnd)
	outcome := Resolve(playerMove, opponent)
	next, reward := ApplyRound(rec, outcome)

	return RoundResult{
		PlayerMove:   playerMove,
		OpponentMove: opponent,
		Outcome:      outcome,
		Record:       next,
		History:      history.Append(playerMove),
		Reward:       reward,
	}
}
