package game

import "errors"

var (
	ErrInvalidCell       = errors.New("cell out of bounds")
	ErrCellOccupied      = errors.New("cell occupied by opponent")
	ErrCascadeDivergence = errors.New("cascade did not settle")
)

// IterationFactor bounds a cascade at rows*cols*IterationFactor explosions.
const IterationFactor = 50

// Cascade is the outcome of settling one placement.
type Cascade struct {
	Board      Board `json:"board"`
	Explosions int   `json:"explosions"`
	// Dominated is set when the cascade stopped unsettled after every orb on
	// the board came to belong to the placing player: either the board holds
	// more orbs than it can settle, or the explosion cap was reached.
	// Overloaded cells may remain.
	Dominated bool `json:"dominated"`
}

// Place returns a copy of b with one orb added to (row, col) for playerID.
func Place(b Board, row, col int, playerID string) (Board, error) {
	if !b.InBounds(row, col) {
		return Board{}, ErrInvalidCell
	}
	cell := b.Cells[row][col]
	if !cell.Neutral() && cell.Owner != playerID {
		return Board{}, ErrCellOccupied
	}

	out := b.Clone()
	out.Cells[row][col].Orbs++
	out.Cells[row][col].Owner = playerID
	return out, nil
}

// Settle runs the chain reaction triggered at (row, col) until no cell is
// overloaded. The trigger cell must already hold the placed orb. Overloaded
// cells are processed in FIFO order; neighbours are visited up, down, left,
// right. b is not modified.
func Settle(b Board, row, col int, placer string) (Cascade, error) {
	out := b.Clone()
	if !out.InBounds(row, col) {
		return Cascade{}, ErrInvalidCell
	}

	opponents := 0
	for r := 0; r < out.Rows; r++ {
		for c := 0; c < out.Cols; c++ {
			if owner := out.Cells[r][c].Owner; owner != "" && owner != placer {
				opponents++
			}
		}
	}
	contested := opponents > 0
	// More orbs than every cell can hold below capacity: no fixed point exists.
	saturated := TotalOrbs(out) > StableCapacity(out)

	queued := make([][]bool, out.Rows)
	for r := range queued {
		queued[r] = make([]bool, out.Cols)
	}
	var queue []Pos
	push := func(p Pos) {
		if queued[p.Row][p.Col] {
			return
		}
		queued[p.Row][p.Col] = true
		queue = append(queue, p)
	}

	if out.Cells[row][col].Overloaded() {
		push(Pos{Row: row, Col: col})
	}

	limit := out.Rows * out.Cols * IterationFactor
	explosions := 0
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		queued[p.Row][p.Col] = false

		cell := &out.Cells[p.Row][p.Col]
		if !cell.Overloaded() {
			continue
		}
		if explosions == limit {
			if contested && opponents == 0 {
				return Cascade{Board: out, Explosions: explosions, Dominated: true}, nil
			}
			return Cascade{}, ErrCascadeDivergence
		}
		explosions++

		// Orbs received while queued stay behind with the placer.
		cell.Orbs -= cell.Capacity
		if cell.Orbs == 0 {
			cell.Owner = ""
		}
		if cell.Overloaded() {
			push(p)
		}

		for _, n := range NeighborsOf(p.Row, p.Col, out.Rows, out.Cols) {
			nc := &out.Cells[n.Row][n.Col]
			if nc.Owner != "" && nc.Owner != placer {
				opponents--
			}
			nc.Owner = placer
			nc.Orbs++
			if nc.Overloaded() {
				push(n)
			}
		}

		if contested && opponents == 0 && saturated && len(queue) > 0 {
			return Cascade{Board: out, Explosions: explosions, Dominated: true}, nil
		}
	}

	return Cascade{Board: out, Explosions: explosions}, nil
}
