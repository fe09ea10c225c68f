package game

import "errors"

var (
	ErrUnknownPlayer  = errors.New("mover is not seated in this game")
	ErrNoActivePlayer = errors.New("no player left to take the turn")
)

// Turn is the result of applying the rules to a settled board.
type Turn struct {
	Players      []Player
	NextPlayerID string
	Status       Status
	WinnerID     string
}

// Advance recomputes orb counts, eliminates players and picks the next
// player. Nobody can be eliminated, and the game cannot finish, before every
// seat has had a move (moveCountAfter < len(players)). Elimination is never
// reverted.
func Advance(b Board, players []Player, moverID string, moveCountAfter int) (Turn, error) {
	counts := OrbCounts(b)
	out := make([]Player, len(players))
	moverIdx := -1
	for i, p := range players {
		p.OrbCount = counts[p.ID]
		if p.ID == moverID {
			moverIdx = i
		}
		out[i] = p
	}
	if moverIdx < 0 {
		return Turn{}, ErrUnknownPlayer
	}

	graceOver := moveCountAfter >= len(players)
	if graceOver {
		for i := range out {
			if i != moverIdx && !out[i].IsEliminated && out[i].OrbCount == 0 {
				out[i].IsEliminated = true
			}
		}
	}

	alive := 0
	var last string
	for _, p := range out {
		if !p.IsEliminated {
			alive++
			last = p.ID
		}
	}
	if graceOver && alive == 1 {
		return Turn{Players: out, NextPlayerID: last, Status: StatusFinished, WinnerID: last}, nil
	}

	next, ok := nextSeat(out, moverIdx)
	if !ok {
		return Turn{}, ErrNoActivePlayer
	}
	return Turn{Players: out, NextPlayerID: next, Status: StatusActive}, nil
}

// nextSeat scans forward circularly from idx, skipping eliminated players.
func nextSeat(players []Player, idx int) (string, bool) {
	n := len(players)
	for i := 1; i <= n; i++ {
		p := players[(idx+i)%n]
		if !p.IsEliminated {
			return p.ID, true
		}
	}
	return "", false
}
