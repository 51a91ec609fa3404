package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/welearn/internal/app/models/dto"
	"github.com/yigit/welearn/internal/pkg/logger"
)

// ServiceName is reported by the health check
const ServiceName = "We Learn API"

// Pinger checks the database connection
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports liveness and database state
type HealthController struct {
	db Pinger
}

// NewHealthController creates a new HealthController. A nil db means the
// in-memory driver is in use.
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	resp := dto.HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   ServiceName,
		Database:  "memory",
	}

	if c.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		resp.Database = "up"
		if err := c.db.Ping(pingCtx); err != nil {
			logger.Error().Err(err).Msg("Health check database ping failed")
			resp.Status = "DEGRADED"
			resp.Database = "down"
			ctx.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}

	ctx.JSON(http.StatusOK, resp)
}
