package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("apply: %w", New(CodeNotYourTurn, "Not your turn"))

	assert.True(t, stderrors.Is(err, New(CodeNotYourTurn, "")))
	assert.False(t, stderrors.Is(err, New(CodeCellOccupied, "")))
	assert.Equal(t, CodeNotYourTurn, CodeOf(err))
	assert.Equal(t, CodeUnknown, CodeOf(stderrors.New("plain")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := Wrap(CodeStoreFailure, "save room", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save room: disk on fire", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidCell:       http.StatusBadRequest,
		CodeNotYourTurn:       http.StatusBadRequest,
		CodeCellOccupied:      http.StatusBadRequest,
		CodeNotYourTurnToUndo: http.StatusBadRequest,
		CodeRoomNotFound:      http.StatusNotFound,
		CodeConflict:          http.StatusConflict,
		CodeCascadeDivergence: http.StatusInternalServerError,
		CodeUnknown:           http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, code.HTTPStatus(), "status for %s", code)
	}
	assert.True(t, CodeConflict.Retryable())
	assert.False(t, CodeNotYourTurn.Retryable())
}

func TestUserMessageHidesInternals(t *testing.T) {
	assert.Equal(t, "No moves to undo", UserMessage(New(CodeNoMoveToUndo, "No moves to undo"), "Failed to undo move"))
	assert.Equal(t, "Failed to undo move", UserMessage(Wrap(CodeStoreFailure, "sqlite busy", stderrors.New("locked")), "Failed to undo move"))
	assert.Equal(t, "Failed to undo move", UserMessage(stderrors.New("boom"), "Failed to undo move"))
}
