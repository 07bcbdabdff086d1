package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidMove = errors.New("invalid move")

// Move is one of the three hand shapes. The zero value is not a move.
// Declaration order doubles as the tie-break priority of the opponent policy.
type Move uint8

const (
	Rock Move = iota + 1
	Paper
	Scissors
)

// Moves lists every valid move in priority order.
var Moves = [...]Move{Rock, Paper, Scissors}

func (m Move) Valid() bool {
	return m >= Rock && m <= Scissors
}

func (m Move) String() string {
	switch m {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return fmt.Sprintf("move(%d)", uint8(m))
	}
}

// Beats returns the move that m defeats.
func (m Move) Beats() Move {
	switch m {
	case Rock:
		return Scissors
	case Paper:
		return Rock
	case Scissors:
		return Paper
	}
	panic(fmt.Sprintf("game: %s has no dominance relation", m))
}

// CounteredBy returns the move that defeats m.
func (m Move) CounteredBy() Move {
	switch m {
	case Rock:
		return Paper
	case Paper:
		return Scissors
	case Scissors:
		return Rock
	}
	panic(fmt.Sprintf("game: %s has no dominance relation", m))
}

// ParseMove accepts "rock", "paper" or "scissors" in any case.
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock":
		return Rock, nil
	case "paper":
		return Paper, nil
	case "scissors":
		return Scissors, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMove, s)
}

type Outcome uint8

const (
	Draw Outcome = iota
	Win
	Lose
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	default:
		return "draw"
	}
}

// Resolve scores a round from the player's perspective.
func Resolve(player, opponent Move) Outcome {
	if player == opponent {
		return Draw
	}
	if player.Beats() == opponent {
		return Win
	}
	return Lose
}
