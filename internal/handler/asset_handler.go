package handler

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"board-archive/internal/store"
)

// contentTypes maps the archive's known asset extensions. Anything else is
// served without an explicit content-type override.
var contentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
	".mp4":  "video/mp4",
	".svg":  "image/svg+xml",
}

// AssetHandler streams archived asset files
type AssetHandler struct {
	store  *store.BoardStore
	logger *zap.Logger
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(boardStore *store.BoardStore, logger *zap.Logger) *AssetHandler {
	return &AssetHandler{
		store:  boardStore,
		logger: logger,
	}
}

// GetAsset streams one asset file by board id and asset filename
func (h *AssetHandler) GetAsset(c *gin.Context) {
	boardID := c.Param("boardId")
	assetFile := filepath.Base(c.Param("assetFile"))

	if boardID == "" || assetFile == "" || assetFile == "." {
		handleNotFound(c, "Asset not found")
		return
	}

	path := filepath.Join(h.store.AssetDir(boardID), assetFile)
	if _, err := os.Stat(path); err != nil {
		handleNotFound(c, "Asset not found")
		return
	}

	if contentType, ok := contentTypes[strings.ToLower(filepath.Ext(assetFile))]; ok {
		c.Header("Content-Type", contentType)
	}
	c.File(path)
}
