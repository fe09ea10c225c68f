package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chain-reaction/internal/room"
	"chain-reaction/internal/shared"
	"chain-reaction/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type errorData struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func newHubServer(t *testing.T) (*httptest.Server, *Hub, *room.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rm := room.NewManager(store.NewMemoryStore())
	hub := NewHub(rm, 2)
	rm.SetBroadcaster(hub)

	r := gin.New()
	r.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, hub, rm
}

func startedRoom(t *testing.T, rm *room.Manager) (string, string, string) {
	t.Helper()
	ctx := context.Background()
	r, err := rm.CreateRoom(ctx, "Ann", "", shared.Settings{MaxPlayers: 2, BoardSize: shared.BoardSize{Rows: 3, Cols: 3}})
	require.NoError(t, err)
	_, guest, err := rm.JoinRoom(ctx, r.ID, "Bo")
	require.NoError(t, err)
	_, err = rm.StartGame(ctx, r.ID, r.HostID)
	require.NoError(t, err)
	return r.ID, r.HostID, guest.ID
}

func dial(t *testing.T, srv *httptest.Server, query string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if conn != nil {
		t.Cleanup(func() { _ = conn.Close() })
	}
	return conn, resp, err
}

func read(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestHubRoutesMovesAndFansOut(t *testing.T) {
	srv, hub, rm := newHubServer(t)
	roomID, host, guest := startedRoom(t, rm)

	hostConn, _, err := dial(t, srv, "room_id="+roomID+"&player_id="+host)
	require.NoError(t, err)
	assert.Equal(t, "state", read(t, hostConn).Action)

	watcher, _, err := dial(t, srv, "room_id="+roomID)
	require.NoError(t, err)
	assert.Equal(t, "state", read(t, watcher).Action)
	assert.Equal(t, 2, hub.Connections(roomID))

	require.NoError(t, hostConn.WriteJSON(gin.H{"action": "move", "data": gin.H{"row": 0, "col": 0}}))
	for _, conn := range []*websocket.Conn{hostConn, watcher} {
		f := read(t, conn)
		require.Equal(t, room.ActionMove, f.Action)
		var payload struct {
			PlayerID  string           `json:"playerId"`
			GameState shared.GameState `json:"gameState"`
		}
		require.NoError(t, json.Unmarshal(f.Data, &payload))
		assert.Equal(t, host, payload.PlayerID)
		assert.Equal(t, guest, payload.GameState.CurrentPlayerID)
		assert.Equal(t, 1, payload.GameState.MoveCount)
	}

	require.NoError(t, hostConn.WriteJSON(gin.H{"action": "move", "data": gin.H{"row": 1, "col": 1}}))
	f := read(t, hostConn)
	require.Equal(t, "error", f.Action)
	var e errorData
	require.NoError(t, json.Unmarshal(f.Data, &e))
	assert.Equal(t, room.MsgNotYourTurn, e.Error)

	require.NoError(t, watcher.WriteJSON(gin.H{"action": "undo"}))
	f = read(t, watcher)
	require.Equal(t, "error", f.Action)
	require.NoError(t, json.Unmarshal(f.Data, &e))
	assert.Equal(t, "Spectators cannot act", e.Error)

	require.NoError(t, hostConn.WriteJSON(gin.H{"action": "resign"}))
	f = read(t, hostConn)
	require.Equal(t, "error", f.Action)
	require.NoError(t, json.Unmarshal(f.Data, &e))
	assert.Equal(t, "INVALID_REQUEST", e.Code)
}

func TestHubRejectsMoveWithoutCoordinates(t *testing.T) {
	srv, _, rm := newHubServer(t)
	roomID, host, _ := startedRoom(t, rm)

	conn, _, err := dial(t, srv, "room_id="+roomID+"&player_id="+host)
	require.NoError(t, err)
	assert.Equal(t, "state", read(t, conn).Action)

	payloads := []gin.H{
		{"action": "move"},
		{"action": "move", "data": gin.H{}},
		{"action": "move", "data": gin.H{"row": 1}},
		{"action": "move", "data": gin.H{"col": 1}},
	}
	for _, p := range payloads {
		require.NoError(t, conn.WriteJSON(p))
		f := read(t, conn)
		require.Equal(t, "error", f.Action)
		var e errorData
		require.NoError(t, json.Unmarshal(f.Data, &e))
		assert.Equal(t, "INVALID_REQUEST", e.Code)
		assert.Equal(t, "row and col are required", e.Error)
	}

	r, err := rm.Get(context.Background(), roomID)
	require.NoError(t, err)
	assert.Zero(t, r.GameState.MoveCount)
	assert.True(t, r.GameState.Grid.Cells[0][0].Neutral())
	assert.Equal(t, host, r.GameState.CurrentPlayerID)
}

func TestHubRejectsUnknownRoomAndPlayer(t *testing.T) {
	srv, _, rm := newHubServer(t)
	roomID, _, _ := startedRoom(t, rm)

	_, resp, err := dial(t, srv, "room_id=missing")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, resp, err = dial(t, srv, "room_id="+roomID+"&player_id=stranger")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, resp, err = dial(t, srv, "")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBroadcastWithoutListeners(t *testing.T) {
	hub := NewHub(nil, 1)
	assert.NotPanics(t, func() { hub.Broadcast("nobody", "move", nil) })
	assert.Zero(t, hub.Connections("nobody"))
}
