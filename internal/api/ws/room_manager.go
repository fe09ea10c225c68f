package ws

import (
	"context"

	"chain-reaction/internal/shared"
)

type RoomManager interface {
	Get(ctx context.Context, roomID string) (shared.Room, error)
	MakeMove(ctx context.Context, req shared.MoveRequest) (shared.GameState, error)
	Undo(ctx context.Context, req shared.UndoRequest) (shared.GameState, error)
}
