package http

import (
	"context"
	"net/http"
	"strings"

	"chain-reaction/internal/config"
	"chain-reaction/internal/room"
	"chain-reaction/internal/shared"

	"github.com/gin-gonic/gin"
)

const msgMissingIdentity = "Missing player identity"

func playerID(c *gin.Context, cfg config.Config) (string, bool) {
	id := strings.TrimSpace(c.GetHeader(cfg.PlayerHeader))
	return id, id != ""
}

// @Summary Place an orb
// @Description Place one orb for the calling player and settle the board
// @Tags Game
// @Accept json
// @Produce json
// @Param request body http.MoveRequest true "Target cell"
// @Success 200 {object} map[string]interface{}
// @Router /api/game/move [post]
func MoveHandler(rm *room.Manager, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, ok := playerID(c, cfg)
		if !ok {
			badRequest(c, msgMissingIdentity)
			return
		}
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "roomId, row and col are required")
			return
		}

		mv := shared.MoveRequest{RoomID: req.RoomID, PlayerID: pid, Row: *req.Row, Col: *req.Col}
		st, err := room.RetryConflicts(c.Request.Context(), cfg.ConflictRetries, func(ctx context.Context) (shared.GameState, error) {
			return rm.MakeMove(ctx, mv)
		})
		if err != nil {
			fail(c, err, room.MsgMoveFailed)
			return
		}
		respond(c, http.StatusOK, GameStateResponse{GameState: st})
	}
}

// @Summary Undo the last move
// @Description Revert the most recent move; only the player who made it may undo
// @Tags Game
// @Accept json
// @Produce json
// @Param request body http.UndoRequest true "Room"
// @Success 200 {object} map[string]interface{}
// @Router /api/game/undo [post]
func UndoHandler(rm *room.Manager, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, ok := playerID(c, cfg)
		if !ok {
			badRequest(c, msgMissingIdentity)
			return
		}
		var req UndoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "roomId is required")
			return
		}

		undo := shared.UndoRequest{RoomID: req.RoomID, PlayerID: pid}
		st, err := room.RetryConflicts(c.Request.Context(), cfg.ConflictRetries, func(ctx context.Context) (shared.GameState, error) {
			return rm.Undo(ctx, undo)
		})
		if err != nil {
			fail(c, err, room.MsgUndoFailed)
			return
		}
		respond(c, http.StatusOK, GameStateResponse{GameState: st, Message: room.MsgMoveUndone})
	}
}

// @Summary Create a room
// @Description Open a lobby with the caller seated as host
// @Tags Room
// @Accept json
// @Produce json
// @Param request body http.CreateRoomRequest true "Host and settings"
// @Success 201 {object} map[string]interface{}
// @Router /api/rooms [post]
func CreateRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid room payload")
			return
		}
		settings := config.DefaultSettings()
		if req.Settings != nil {
			settings = *req.Settings
		}

		r, err := rm.CreateRoom(c.Request.Context(), req.PlayerName, req.RoomName, settings)
		if err != nil {
			fail(c, err, "Failed to create room")
			return
		}
		respond(c, http.StatusCreated, RoomResponse{Room: newRoomView(r), PlayerID: r.HostID})
	}
}

// @Summary Join a room
// @Tags Room
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Param request body http.JoinRoomRequest true "Player info"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{roomId}/join [post]
func JoinRoomHandler(rm *room.Manager, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid join payload")
			return
		}

		type joined struct {
			room     RoomView
			playerID string
		}
		out, err := room.RetryConflicts(c.Request.Context(), cfg.ConflictRetries, func(ctx context.Context) (joined, error) {
			r, p, err := rm.JoinRoom(ctx, c.Param("roomId"), req.PlayerName)
			if err != nil {
				return joined{}, err
			}
			return joined{room: newRoomView(r), playerID: p.ID}, nil
		})
		if err != nil {
			fail(c, err, "Failed to join room")
			return
		}
		respond(c, http.StatusOK, RoomResponse{Room: out.room, PlayerID: out.playerID})
	}
}

// @Summary Start the game
// @Description Host only; at least two players must be seated
// @Tags Room
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{roomId}/start [post]
func StartGameHandler(rm *room.Manager, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		pid, ok := playerID(c, cfg)
		if !ok {
			badRequest(c, msgMissingIdentity)
			return
		}
		r, err := room.RetryConflicts(c.Request.Context(), cfg.ConflictRetries, func(ctx context.Context) (shared.Room, error) {
			return rm.StartGame(ctx, c.Param("roomId"), pid)
		})
		if err != nil {
			fail(c, err, "Failed to start game")
			return
		}
		respond(c, http.StatusOK, RoomResponse{Room: newRoomView(r)})
	}
}

// @Summary Get a room
// @Tags Room
// @Produce json
// @Param roomId path string true "Room ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/rooms/{roomId} [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := rm.Get(c.Request.Context(), c.Param("roomId"))
		if err != nil {
			fail(c, err, "Failed to load room")
			return
		}
		respond(c, http.StatusOK, RoomResponse{Room: newRoomView(r)})
	}
}
