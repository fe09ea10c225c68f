package http

import (
	"time"

	"chain-reaction/internal/shared"
)

// MoveRequest is the payload for /api/game/move. Row and col are pointers so
// that a zero coordinate is still "present" for the required check.
type MoveRequest struct {
	RoomID string `json:"roomId" binding:"required"`
	Row    *int   `json:"row" binding:"required"`
	Col    *int   `json:"col" binding:"required"`
}

// UndoRequest is the payload for /api/game/undo.
type UndoRequest struct {
	RoomID string `json:"roomId" binding:"required"`
}

// CreateRoomRequest is the payload for /api/rooms. Settings default to the
// server defaults when omitted.
type CreateRoomRequest struct {
	PlayerName string           `json:"playerName"`
	RoomName   string           `json:"roomName"`
	Settings   *shared.Settings `json:"settings"`
}

type JoinRoomRequest struct {
	PlayerName string `json:"playerName"`
}

type GameStateResponse struct {
	GameState shared.GameState `json:"gameState"`
	Message   string           `json:"message,omitempty"`
}

// RoomView is the public shape of a room. Undo history stays server side.
type RoomView struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	HostID       string           `json:"hostId"`
	Settings     shared.Settings  `json:"settings"`
	GameState    shared.GameState `json:"gameState"`
	CreatedAt    time.Time        `json:"createdAt"`
	CanUndo      bool             `json:"canUndo"`
	TurnDeadline *time.Time       `json:"turnDeadline,omitempty"`
	GameDeadline *time.Time       `json:"gameDeadline,omitempty"`
}

type RoomResponse struct {
	Room     RoomView `json:"room"`
	PlayerID string   `json:"playerId,omitempty"`
}

func newRoomView(r shared.Room) RoomView {
	v := RoomView{
		ID:        r.ID,
		Name:      r.Name,
		HostID:    r.HostID,
		Settings:  r.Settings,
		GameState: r.GameState,
		CreatedAt: r.CreatedAt,
		CanUndo:   r.Settings.UndoEnabled && r.History.Len() > 0,
	}
	if t, ok := shared.TurnDeadline(r.GameState, r.Settings); ok {
		v.TurnDeadline = &t
	}
	if t, ok := shared.GameDeadline(r); ok {
		v.GameDeadline = &t
	}
	return v
}
