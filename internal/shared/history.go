package shared

// History is a bounded trail of prior game states, newest last. Once Depth
// snapshots are held, pushing drops the oldest one.
type History struct {
	Depth     int         `json:"depth"`
	Snapshots []GameState `json:"snapshots"`
}

func NewHistory(depth int) History {
	if depth < 1 {
		depth = 1
	}
	return History{Depth: depth}
}

func (h History) Len() int { return len(h.Snapshots) }

// Push returns a new history with s appended.
func (h History) Push(s GameState) History {
	depth := h.Depth
	if depth < 1 {
		depth = 1
	}
	keep := h.Snapshots
	if len(keep) >= depth {
		keep = keep[len(keep)-depth+1:]
	}
	out := History{Depth: depth, Snapshots: make([]GameState, 0, len(keep)+1)}
	for _, snap := range keep {
		out.Snapshots = append(out.Snapshots, snap.Clone())
	}
	out.Snapshots = append(out.Snapshots, s.Clone())
	return out
}

// Peek returns the newest snapshot.
func (h History) Peek() (GameState, bool) {
	if len(h.Snapshots) == 0 {
		return GameState{}, false
	}
	return h.Snapshots[len(h.Snapshots)-1].Clone(), true
}

// Pop returns the newest snapshot and the history without it.
func (h History) Pop() (GameState, History, bool) {
	top, ok := h.Peek()
	if !ok {
		return GameState{}, h, false
	}
	rest := h.clone()
	rest.Snapshots = rest.Snapshots[:len(rest.Snapshots)-1]
	return top, rest, true
}

func (h History) clone() History {
	out := History{Depth: h.Depth}
	if h.Snapshots != nil {
		out.Snapshots = make([]GameState, len(h.Snapshots))
		for i, s := range h.Snapshots {
			out.Snapshots[i] = s.Clone()
		}
	}
	return out
}
