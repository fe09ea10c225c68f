package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chain-reaction/internal/game"
	"chain-reaction/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoom(id string) shared.Room {
	return shared.Room{
		ID:        id,
		Name:      "test",
		HostID:    "a",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Settings:  shared.Settings{MaxPlayers: 2, BoardSize: shared.BoardSize{Rows: 3, Cols: 3}},
		GameState: shared.GameState{
			Grid:    game.NewBoard(3, 3),
			Players: []game.Player{{ID: "a", Name: "Ann"}},
			Status:  game.StatusLobby,
		},
		History: shared.NewHistory(4),
	}
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	created, err := s.CreateRoom(ctx, newRoom("r1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)

	got, err := s.GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.CreateRoom(ctx, newRoom("r1"))
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.GetRoom(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreReadsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_, err := s.CreateRoom(ctx, newRoom("r1"))
	require.NoError(t, err)

	first, err := s.GetRoom(ctx, "r1")
	require.NoError(t, err)
	first.GameState.Grid.Cells[0][0].Orbs = 9
	first.GameState.Players[0].Name = "changed"

	second, err := s.GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Zero(t, second.GameState.Grid.Cells[0][0].Orbs)
	assert.Equal(t, "Ann", second.GameState.Players[0].Name)
}

func TestMemoryStoreConditionalWrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	r, err := s.CreateRoom(ctx, newRoom("r1"))
	require.NoError(t, err)

	r.Name = "renamed"
	saved, err := s.SaveRoomIfVersion(ctx, r, r.Version)
	require.NoError(t, err)
	assert.Equal(t, int64(2), saved.Version)

	r.Name = "stale"
	_, err = s.SaveRoomIfVersion(ctx, r, 1)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := s.GetRoom(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)

	_, err = s.SaveRoomIfVersion(ctx, newRoom("nope"), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSingleWinnerPerVersion(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	r, err := s.CreateRoom(ctx, newRoom("r1"))
	require.NoError(t, err)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.SaveRoomIfVersion(ctx, r, r.Version); err == nil {
				wins.Add(1)
			} else {
				assert.ErrorIs(t, err, ErrConflict)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestMemoryStoreHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryStore().GetRoom(ctx, "r1")
	assert.ErrorIs(t, err, context.Canceled)
}
