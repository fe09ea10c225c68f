package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	apperrors "chain-reaction/internal/platform/errors"
	"chain-reaction/internal/room"
	"chain-reaction/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Message is the envelope for every frame in both directions.
type Message struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

// moveData mirrors the HTTP move payload: a missing coordinate is an error,
// not a zero.
type moveData struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// client is one socket. playerID is bound at connect time and empty for
// spectators. gorilla allows one writer at a time, hence writeMu.
type client struct {
	conn     *websocket.Conn
	playerID string
	writeMu  sync.Mutex
}

func (c *client) send(msg outbound) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// Hub fans committed room changes out to every socket in the room and
// routes move/undo actions back to the room manager.
type Hub struct {
	mu          sync.RWMutex
	rooms       map[string]map[*client]struct{}
	roomManager RoomManager
	retries     uint
}

func NewHub(roomManager RoomManager, conflictRetries uint) *Hub {
	return &Hub{
		rooms:       make(map[string]map[*client]struct{}),
		roomManager: roomManager,
		retries:     conflictRetries,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

func (h *Hub) HandleWS(c *gin.Context) {
	roomID := c.Query("room_id")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing room_id"})
		return
	}
	r, err := h.roomManager.Get(c.Request.Context(), roomID)
	if err != nil {
		code := apperrors.CodeOf(err)
		c.JSON(code.HTTPStatus(), gin.H{"success": false, "error": apperrors.UserMessage(err, "Failed to load room")})
		return
	}
	playerID := c.Query("player_id")
	if playerID != "" {
		if _, ok := r.GameState.Player(playerID); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Player not found"})
			return
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	cl := &client{conn: conn, playerID: playerID}

	h.mu.Lock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*client]struct{})
	}
	h.rooms[roomID][cl] = struct{}{}
	h.mu.Unlock()
	log.Printf("room %s: websocket connected (player %q)", roomID, playerID)

	defer func() {
		h.remove(roomID, cl)
		_ = conn.Close()
	}()

	if err := cl.send(outbound{Action: "state", Data: gin.H{"gameState": r.GameState}}); err != nil {
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("room %s: read failed: %v", roomID, err)
			}
			return
		}
		h.handle(c.Request.Context(), roomID, cl, msg)
	}
}

func (h *Hub) handle(ctx context.Context, roomID string, cl *client, msg Message) {
	if cl.playerID == "" {
		h.reply(cl, apperrors.New(apperrors.CodeInvalidRequest, "Spectators cannot act"), "")
		return
	}

	switch msg.Action {
	case room.ActionMove:
		var mv moveData
		if err := json.Unmarshal(msg.Data, &mv); err != nil || mv.Row == nil || mv.Col == nil {
			h.reply(cl, apperrors.New(apperrors.CodeInvalidRequest, "row and col are required"), "")
			return
		}
		req := shared.MoveRequest{RoomID: roomID, PlayerID: cl.playerID, Row: *mv.Row, Col: *mv.Col}
		_, err := room.RetryConflicts(ctx, h.retries, func(ctx context.Context) (shared.GameState, error) {
			return h.roomManager.MakeMove(ctx, req)
		})
		if err != nil {
			h.reply(cl, err, room.MsgMoveFailed)
		}
	case room.ActionUndo:
		req := shared.UndoRequest{RoomID: roomID, PlayerID: cl.playerID}
		_, err := room.RetryConflicts(ctx, h.retries, func(ctx context.Context) (shared.GameState, error) {
			return h.roomManager.Undo(ctx, req)
		})
		if err != nil {
			h.reply(cl, err, room.MsgUndoFailed)
		}
	default:
		h.reply(cl, apperrors.New(apperrors.CodeInvalidRequest, "Unknown action: "+msg.Action), "")
	}
}

// reply reports a failed action to the sender only. Successful actions are
// announced to the whole room by the manager through Broadcast.
func (h *Hub) reply(cl *client, err error, fallback string) {
	msg := outbound{Action: "error", Data: gin.H{
		"error": apperrors.UserMessage(err, fallback),
		"code":  apperrors.CodeOf(err),
	}}
	if werr := cl.send(msg); werr != nil {
		log.Printf("Failed to send error reply: %v", werr)
	}
}

func (h *Hub) Broadcast(roomID string, action string, data interface{}) {
	if h == nil {
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[roomID]))
	for cl := range h.rooms[roomID] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	msg := outbound{Action: action, Data: data}
	for _, cl := range clients {
		if err := cl.send(msg); err != nil {
			log.Printf("room %s: failed to send %s: %v", roomID, action, err)
			h.remove(roomID, cl)
			_ = cl.conn.Close()
		}
	}
}

func (h *Hub) remove(roomID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms[roomID], cl)
	if len(h.rooms[roomID]) == 0 {
		delete(h.rooms, roomID)
	}
}

// Connections reports how many sockets are attached to a room.
func (h *Hub) Connections(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
