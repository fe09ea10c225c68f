package http

import (
	"chain-reaction/internal/api/ws"
	"chain-reaction/internal/config"
	"chain-reaction/internal/room"

	"github.com/gin-gonic/gin"
)

func SetupRouter(rm *room.Manager, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// WebSocket for live room updates
	r.GET("/ws", hub.HandleWS)

	api := r.Group("/api")

	// --- ROOM ENDPOINTS ---
	api.POST("/rooms", CreateRoomHandler(rm))
	api.GET("/rooms/:roomId", GetRoomHandler(rm))
	api.POST("/rooms/:roomId/join", JoinRoomHandler(rm, cfg))
	api.POST("/rooms/:roomId/start", StartGameHandler(rm, cfg))

	// --- GAME ENDPOINTS ---
	api.POST("/game/move", MoveHandler(rm, cfg))
	api.POST("/game/undo", UndoHandler(rm, cfg))

	// --- CONFIG ENDPOINTS ---
	api.GET("/config/settings", GetSettingsHandler())

	return r
}
