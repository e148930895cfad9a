package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Liveness plus reachability of the configured backing stores
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := gin.H{}

	deps["redis"] = pingStatus(ctx, h.redisPing)
	deps["postgres"] = pingStatus(ctx, h.postgresPing)
	if deps["redis"] == "down" || deps["postgres"] == "down" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"status": statusWord(status), "dependencies": deps})
}

func pingStatus(ctx context.Context, ping Pinger) string {
	if ping == nil {
		return "not configured"
	}
	if err := ping(ctx); err != nil {
		return "down"
	}
	return "up"
}

func statusWord(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
