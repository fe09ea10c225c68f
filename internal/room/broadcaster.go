package room

// Broadcaster is notified after a room mutation commits. Delivery is best
// effort and never affects the committed state.
type Broadcaster interface {
	Broadcast(roomID string, action string, data interface{})
}

type noopBroadcaster struct{}

func (noopBroadcaster) Broadcast(string, string, interface{}) {}

// Broadcast actions.
const (
	ActionPlayerJoined = "player_joined"
	ActionGameStarted  = "game_started"
	ActionMove         = "move"
	ActionUndo         = "undo"
	ActionGameOver     = "game_over"
)
