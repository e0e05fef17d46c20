package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"board-archive/internal/store"
)

// HealthHandler reports service liveness and archive readability
type HealthHandler struct {
	store *store.BoardStore
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(boardStore *store.BoardStore) *HealthHandler {
	return &HealthHandler{store: boardStore}
}

// Health is the liveness probe
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the archive directory is readable
func (h *HealthHandler) Ready(c *gin.Context) {
	if _, err := os.Stat(h.store.BoardDir()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "archive directory not readable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
