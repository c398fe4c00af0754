package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/dipulse/dipulse/internal/domain/dto"
	"github.com/dipulse/dipulse/internal/logger"
)

// ErrorHandler converts errors attached to the Gin context by handlers into a
// standardized JSON response. Handlers that already wrote a response are left
// alone; the last attached error wins otherwise.
var ErrorHandler gin.HandlerFunc = func(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled request error")

	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.JSON(status, dto.NewErrorResponse("request failed", err))
}
