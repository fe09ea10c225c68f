// Package errors provides coded domain errors and their transport mapping.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Request shape
	CodeInvalidRequest  Code = "INVALID_REQUEST"
	CodeInvalidSettings Code = "INVALID_SETTINGS"

	// Lookups
	CodeRoomNotFound   Code = "ROOM_NOT_FOUND"
	CodePlayerNotFound Code = "PLAYER_NOT_FOUND"

	// Game rules
	CodeGameNotActive     Code = "GAME_NOT_ACTIVE"
	CodeNotYourTurn       Code = "NOT_YOUR_TURN"
	CodeInvalidCell       Code = "INVALID_CELL"
	CodeCellOccupied      Code = "CELL_OCCUPIED"
	CodeRoomFull          Code = "ROOM_FULL"
	CodeNotHost           Code = "NOT_HOST"
	CodeNotEnoughPlayers  Code = "NOT_ENOUGH_PLAYERS"
	CodeUndoDisabled      Code = "UNDO_DISABLED"
	CodeNoMoveToUndo      Code = "NO_MOVE_TO_UNDO"
	CodeNotYourTurnToUndo Code = "NOT_YOUR_TURN_TO_UNDO"

	// Concurrency
	CodeConflict Code = "CONFLICT"

	// Internal
	CodeCascadeDivergence  Code = "CASCADE_DIVERGENCE"
	CodeInvariantViolation Code = "INVARIANT_VIOLATION"
	CodeStoreFailure       Code = "STORE_FAILURE"
)

// Kind is the failure taxonomy callers act on.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindRuleViolation Kind = "rule_violation"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindInternal      Kind = "internal"
)

func (c Code) Kind() Kind {
	switch c {
	case CodeInvalidRequest,
		CodeInvalidSettings,
		CodeInvalidCell:
		return KindValidation

	case CodeGameNotActive,
		CodeNotYourTurn,
		CodeCellOccupied,
		CodeRoomFull,
		CodeNotHost,
		CodeNotEnoughPlayers,
		CodeUndoDisabled,
		CodeNoMoveToUndo,
		CodeNotYourTurnToUndo:
		return KindRuleViolation

	case CodeRoomNotFound,
		CodePlayerNotFound:
		return KindNotFound

	case CodeConflict:
		return KindConflict

	default:
		return KindInternal
	}
}

// Retryable reports whether a fresh read-compute-commit attempt may succeed.
func (c Code) Retryable() bool {
	return c.Kind() == KindConflict
}

func (c Code) HTTPStatus() int {
	switch c.Kind() {
	case KindValidation, KindRuleViolation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
