package game

const (
	MinBoardSide = 3
	MaxBoardSide = 10
)

// Cell is one grid square. Owner is empty when the cell is neutral.
type Cell struct {
	Orbs     int    `json:"orbs"`
	Owner    string `json:"owner,omitempty"`
	Capacity int    `json:"capacity"` // fixed at board creation
}

func (c Cell) Neutral() bool { return c.Owner == "" }

// Overloaded reports whether the cell must explode.
func (c Cell) Overloaded() bool { return c.Orbs >= c.Capacity }

type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Board struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells [][]Cell `json:"cells"`
}

// NewBoard returns an empty board with every cell's capacity precomputed.
// Sides outside [MinBoardSide, MaxBoardSide] are clamped.
func NewBoard(rows, cols int) Board {
	rows = clampSide(rows)
	cols = clampSide(cols)

	c := make([][]Cell, rows)
	for r := range c {
		c[r] = make([]Cell, cols)
		for col := range c[r] {
			c[r][col] = Cell{Capacity: CapacityOf(r, col, rows, cols)}
		}
	}

	return Board{
		Rows:  rows,
		Cols:  cols,
		Cells: c,
	}
}

func clampSide(n int) int {
	if n < MinBoardSide {
		return MinBoardSide
	}
	if n > MaxBoardSide {
		return MaxBoardSide
	}
	return n
}

// CapacityOf returns the critical mass of a position: 2 for corners,
// 3 for the remaining edge cells and 4 for interior cells.
func CapacityOf(row, col, rows, cols int) int {
	capacity := 4
	if row == 0 || row == rows-1 {
		capacity--
	}
	if col == 0 || col == cols-1 {
		capacity--
	}
	return capacity
}

var orthogonal = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// NeighborsOf lists the in-bounds orthogonal neighbours in up, down, left,
// right order. The order is part of the cascade's determinism.
func NeighborsOf(row, col, rows, cols int) []Pos {
	out := make([]Pos, 0, 4)
	for _, d := range orthogonal {
		r, c := row+d[0], col+d[1]
		if in(r, c, rows, cols) {
			out = append(out, Pos{Row: r, Col: c})
		}
	}
	return out
}

func in(r, c, rows, cols int) bool {
	return r >= 0 && r < rows && c >= 0 && c < cols
}

func (b Board) InBounds(row, col int) bool {
	return in(row, col, b.Rows, b.Cols)
}

func (b Board) At(row, col int) Cell {
	return b.Cells[row][col]
}

// Clone returns a deep copy; boards are never shared between states.
func (b Board) Clone() Board {
	out := Board{Rows: b.Rows, Cols: b.Cols}
	if b.Cells == nil {
		return out
	}
	out.Cells = make([][]Cell, len(b.Cells))
	for r := range b.Cells {
		out.Cells[r] = append([]Cell(nil), b.Cells[r]...)
	}
	return out
}

type Status string

const (
	StatusLobby    Status = "lobby"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	OrbCount     int    `json:"orbCount"` // derived, recomputed after each settle
	IsEliminated bool   `json:"isEliminated"`
	IsConnected  bool   `json:"isConnected"`
}

type Move struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	PlayerID string `json:"playerId"`
}
