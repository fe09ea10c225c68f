package room

import (
	"context"
	"errors"
	"time"

	"chain-reaction/internal/game"
	apperrors "chain-reaction/internal/platform/errors"
	"chain-reaction/internal/shared"
)

// Store is the versioned document store rooms are committed to. A write
// succeeds only while the stored version still equals expectedVersion.
type Store interface {
	GetRoom(ctx context.Context, id string) (shared.Room, error)
	CreateRoom(ctx context.Context, r shared.Room) (shared.Room, error)
	SaveRoomIfVersion(ctx context.Context, r shared.Room, expectedVersion int64) (shared.Room, error)
}

const (
	MsgRoomNotFound      = "Room not found"
	MsgGameNotActive     = "Game is not active"
	MsgNotYourTurn       = "Not your turn"
	MsgInvalidCell       = "Invalid cell"
	MsgCellOccupied      = "Cell is occupied by another player"
	MsgNotYourTurnToUndo = "You can only undo on your turn"
	MsgUndoDisabled      = "Undo is not enabled for this game"
	MsgNoMoveToUndo      = "No moves to undo"
	MsgMoveFailed        = "Failed to make move"
	MsgUndoFailed        = "Failed to undo move"
	MsgMoveUndone        = "Move undone"
)

// applyMove validates req against r and returns the room after the orb is
// placed, the board settled and the turn advanced. r is left untouched.
func applyMove(r shared.Room, req shared.MoveRequest, now time.Time) (shared.Room, game.Cascade, error) {
	st := r.GameState
	if st.Status != game.StatusActive {
		return shared.Room{}, game.Cascade{}, apperrors.New(apperrors.CodeGameNotActive, MsgGameNotActive)
	}
	if req.PlayerID == "" || req.PlayerID != st.CurrentPlayerID {
		return shared.Room{}, game.Cascade{}, apperrors.New(apperrors.CodeNotYourTurn, MsgNotYourTurn)
	}

	placed, err := game.Place(st.Grid, req.Row, req.Col, req.PlayerID)
	if err != nil {
		return shared.Room{}, game.Cascade{}, translate(err)
	}
	res, err := game.Settle(placed, req.Row, req.Col, req.PlayerID)
	if err != nil {
		return shared.Room{}, game.Cascade{}, translate(err)
	}

	moveCount := st.MoveCount + 1
	turn, err := game.Advance(res.Board, st.Players, req.PlayerID, moveCount)
	if err != nil {
		return shared.Room{}, game.Cascade{}, translate(err)
	}
	if res.Dominated && turn.Status != game.StatusFinished {
		return shared.Room{}, game.Cascade{}, apperrors.New(apperrors.CodeInvariantViolation, "cascade stopped early on an undecided game")
	}

	out := r
	out.History = r.History.Push(st)
	out.GameState = shared.GameState{
		Grid:            res.Board,
		Players:         turn.Players,
		CurrentPlayerID: turn.NextPlayerID,
		MoveCount:       moveCount,
		TurnStartedAt:   st.TurnStartedAt,
		StartedAt:       st.StartedAt,
		Status:          turn.Status,
		WinnerID:        turn.WinnerID,
	}
	if turn.Status == game.StatusActive {
		out.GameState.TurnStartedAt = now
	}
	return out, res, nil
}

// undoMove restores the newest snapshot. Only the player who made the move
// being reverted may undo it.
func undoMove(r shared.Room, requesterID string) (shared.Room, error) {
	if !r.Settings.UndoEnabled {
		return shared.Room{}, apperrors.New(apperrors.CodeUndoDisabled, MsgUndoDisabled)
	}
	// A finished game is read-only.
	if r.GameState.Status == game.StatusFinished {
		return shared.Room{}, apperrors.New(apperrors.CodeGameNotActive, MsgGameNotActive)
	}
	prev, rest, ok := r.History.Pop()
	if !ok {
		return shared.Room{}, apperrors.New(apperrors.CodeNoMoveToUndo, MsgNoMoveToUndo)
	}
	if requesterID == "" || prev.CurrentPlayerID != requesterID {
		return shared.Room{}, apperrors.New(apperrors.CodeNotYourTurnToUndo, MsgNotYourTurnToUndo)
	}

	out := r
	out.GameState = prev
	out.History = rest
	return out, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, game.ErrInvalidCell):
		return apperrors.Wrap(apperrors.CodeInvalidCell, MsgInvalidCell, err)
	case errors.Is(err, game.ErrCellOccupied):
		return apperrors.Wrap(apperrors.CodeCellOccupied, MsgCellOccupied, err)
	case errors.Is(err, game.ErrCascadeDivergence):
		return apperrors.Wrap(apperrors.CodeCascadeDivergence, "cascade did not settle", err)
	default:
		return apperrors.Wrap(apperrors.CodeInvariantViolation, "turn rules failed", err)
	}
}
