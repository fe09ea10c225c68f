package http

import (
	apperrors "chain-reaction/internal/platform/errors"

	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// fail writes the error envelope. Internal failures show fallback only.
func fail(c *gin.Context, err error, fallback string) {
	code := apperrors.CodeOf(err)
	c.JSON(code.HTTPStatus(), gin.H{
		"success": false,
		"error":   apperrors.UserMessage(err, fallback),
		"code":    code,
	})
}

func badRequest(c *gin.Context, message string) {
	fail(c, apperrors.New(apperrors.CodeInvalidRequest, message), message)
}
