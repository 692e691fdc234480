package health

import (
	"context"
	"net/http"
	"time"

	"codeberg.org/wexam/server/internal/logger"
	"github.com/gin-gonic/gin"
)

const (
	Version      = "1.0.0"
	checkTimeout = 2 * time.Second
)

// Handler godoc
// @Summary Health check
// @Description Returns the server health status; any failing dependency makes it 503
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get]
func Handler(deps map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := Response{
			Status:  "healthy",
			Service: "wexam",
			Version: Version,
		}
		status := http.StatusOK

		if len(deps) > 0 {
			resp.Checks = make(map[string]string, len(deps))
		}

		for name, dep := range deps {
			ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
			err := dep.Ping(ctx)
			cancel()

			if err != nil {
				logger.FromContext(c.Request.Context()).Warn("health check failed", "dependency", name, "error", err)
				resp.Checks[name] = "down"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}

			resp.Checks[name] = "up"
		}

		c.JSON(status, resp)
	}
}

// PingHandler godoc
// @Summary Ping
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /api/v1/ping [get]
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
