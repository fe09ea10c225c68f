package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seats(ids ...string) []Player {
	out := make([]Player, len(ids))
	for i, id := range ids {
		out[i] = Player{ID: id, Name: id, IsConnected: true}
	}
	return out
}

func boardWith(cells map[Pos]Cell) Board {
	b := NewBoard(3, 3)
	for p, c := range cells {
		c.Capacity = b.Cells[p.Row][p.Col].Capacity
		b.Cells[p.Row][p.Col] = c
	}
	return b
}

func TestAdvanceGracePeriod(t *testing.T) {
	b := boardWith(map[Pos]Cell{
		{0, 0}: {Orbs: 1, Owner: "a"},
		{2, 2}: {Orbs: 1, Owner: "b"},
	})

	turn, err := Advance(b, seats("a", "b", "c"), "b", 2)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, turn.Status)
	assert.Equal(t, "c", turn.NextPlayerID)
	for _, p := range turn.Players {
		assert.False(t, p.IsEliminated, "%s eliminated during grace period", p.ID)
	}
	assert.Equal(t, 1, turn.Players[0].OrbCount)
	assert.Equal(t, 0, turn.Players[2].OrbCount)
}

func TestAdvanceEliminatesAndSkips(t *testing.T) {
	b := boardWith(map[Pos]Cell{
		{0, 0}: {Orbs: 1, Owner: "a"},
		{1, 1}: {Orbs: 3, Owner: "c"},
	})

	turn, err := Advance(b, seats("a", "b", "c"), "a", 4)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, turn.Status)
	assert.True(t, turn.Players[1].IsEliminated)
	assert.Equal(t, "c", turn.NextPlayerID)

	turn, err = Advance(b, turn.Players, "c", 5)
	require.NoError(t, err)
	assert.Equal(t, "a", turn.NextPlayerID)
}

func TestAdvanceDeclaresWinner(t *testing.T) {
	b := boardWith(map[Pos]Cell{
		{0, 0}: {Orbs: 1, Owner: "a"},
		{0, 1}: {Orbs: 2, Owner: "a"},
	})

	turn, err := Advance(b, seats("a", "b"), "a", 5)
	require.NoError(t, err)

	assert.Equal(t, StatusFinished, turn.Status)
	assert.Equal(t, "a", turn.WinnerID)
	assert.Equal(t, "a", turn.NextPlayerID)
	assert.Equal(t, 3, turn.Players[0].OrbCount)
	assert.True(t, turn.Players[1].IsEliminated)
}

func TestAdvanceCannotFinishDuringFirstRound(t *testing.T) {
	b := boardWith(map[Pos]Cell{{1, 1}: {Orbs: 1, Owner: "a"}})

	turn, err := Advance(b, seats("a", "b"), "a", 1)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, turn.Status)
	assert.Empty(t, turn.WinnerID)
	assert.Equal(t, "b", turn.NextPlayerID)
}

func TestAdvanceEliminationIsMonotonic(t *testing.T) {
	players := seats("a", "b", "c")
	players[1].IsEliminated = true
	// A corrupted board handing orbs back to b must not revive it.
	b := boardWith(map[Pos]Cell{
		{0, 0}: {Orbs: 1, Owner: "a"},
		{0, 1}: {Orbs: 1, Owner: "b"},
		{0, 2}: {Orbs: 1, Owner: "c"},
	})

	turn, err := Advance(b, players, "a", 6)
	require.NoError(t, err)

	assert.True(t, turn.Players[1].IsEliminated)
	assert.Equal(t, "c", turn.NextPlayerID)
	assert.Zero(t, players[0].OrbCount, "Advance must not modify its input")
}

func TestAdvanceUnknownMover(t *testing.T) {
	_, err := Advance(NewBoard(3, 3), seats("a", "b"), "z", 3)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestSuggestPrefersCapture(t *testing.T) {
	b := boardWith(map[Pos]Cell{
		{0, 0}: {Orbs: 1, Owner: "a"},
		{0, 1}: {Orbs: 1, Owner: "b"},
		{2, 2}: {Orbs: 1, Owner: "b"},
	})

	mv, ok := Suggest(b, "a")
	require.True(t, ok)
	assert.Equal(t, Move{Row: 0, Col: 0, PlayerID: "a"}, mv)
}

func TestSuggestWithoutLegalMoves(t *testing.T) {
	b := NewBoard(3, 3)
	for r := range b.Cells {
		for c := range b.Cells[r] {
			b.Cells[r][c].Orbs = 1
			b.Cells[r][c].Owner = "b"
		}
	}
	_, ok := Suggest(b, "a")
	assert.False(t, ok)
}
