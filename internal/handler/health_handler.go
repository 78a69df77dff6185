package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"photorelay/internal/domain"
)

// HealthHandler handles the liveness probe.
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler creates a new HealthHandler. now may be nil.
func NewHealthHandler(now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now}
}

// Liveness handles GET /
// It never touches the storage backend.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Liveness{OK: true, Now: domain.FormatTimestamp(h.now())})
}
