package http

import (
	"net/http"

	"chain-reaction/internal/config"
	"chain-reaction/internal/game"
	"chain-reaction/internal/shared"

	"github.com/gin-gonic/gin"
)

// SettingsLimits bounds what a room may be created with.
type SettingsLimits struct {
	MinPlayers       int `json:"minPlayers"`
	MaxPlayers       int `json:"maxPlayers"`
	MinBoardSide     int `json:"minBoardSide"`
	MaxBoardSide     int `json:"maxBoardSide"`
	MinGameTimeLimit int `json:"minGameTimeLimit"`
	MinMoveTimeLimit int `json:"minMoveTimeLimit"`
}

// GetSettingsHandler returns the default room settings
// @Summary Get default room settings
// @Description Returns the settings used when a room is created without any, and their limits
// @Tags Config
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/config/settings [get]
func GetSettingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusOK, gin.H{
			"settings": config.DefaultSettings(),
			"colors":   config.DefaultPlayerColors,
			"limits": SettingsLimits{
				MinPlayers:       shared.MinPlayers,
				MaxPlayers:       shared.MaxPlayers,
				MinBoardSide:     game.MinBoardSide,
				MaxBoardSide:     game.MaxBoardSide,
				MinGameTimeLimit: shared.MinGameTimeLimit,
				MinMoveTimeLimit: shared.MinMoveTimeLimit,
			},
		})
	}
}
