package game

// TotalOrbs sums the orbs on every cell.
func TotalOrbs(b Board) int {
	sum := 0
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			sum += b.Cells[r][c].Orbs
		}
	}
	return sum
}

// OrbCounts returns the number of orbs held by each owner.
func OrbCounts(b Board) map[string]int {
	out := map[string]int{}
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			cell := b.Cells[r][c]
			if !cell.Neutral() {
				out[cell.Owner] += cell.Orbs
			}
		}
	}
	return out
}

func OrbCountFor(b Board, playerID string) int {
	sum := 0
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if b.Cells[r][c].Owner == playerID {
				sum += b.Cells[r][c].Orbs
			}
		}
	}
	return sum
}

// StableCapacity is the most orbs the board can hold with no cell
// overloaded.
func StableCapacity(b Board) int {
	sum := 0
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			sum += b.Cells[r][c].Capacity - 1
		}
	}
	return sum
}

// IsSettled reports whether no cell is overloaded.
func IsSettled(b Board) bool {
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			if b.Cells[r][c].Overloaded() {
				return false
			}
		}
	}
	return true
}

// LegalMoves lists every cell the player may place on: neutral cells and
// cells the player already owns.
func LegalMoves(b Board, playerID string) []Move {
	var moves []Move
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			cell := b.Cells[r][c]
			if !cell.Neutral() && cell.Owner != playerID {
				continue
			}
			moves = append(moves, Move{Row: r, Col: c, PlayerID: playerID})
		}
	}
	return moves
}
