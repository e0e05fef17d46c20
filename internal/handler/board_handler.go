package handler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"board-archive/internal/config"
	"board-archive/internal/domain"
	"board-archive/internal/store"
)

// OtherWorkspace buckets archived boards outside every configured mapping
const OtherWorkspace = "Other"

// BoardHandler serves archived board documents
type BoardHandler struct {
	store  *store.BoardStore
	cfg    *config.Config
	logger *zap.Logger
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardStore *store.BoardStore, cfg *config.Config, logger *zap.Logger) *BoardHandler {
	return &BoardHandler{
		store:  boardStore,
		cfg:    cfg,
		logger: logger,
	}
}

// GetBoard streams one archived board document verbatim
func (h *BoardHandler) GetBoard(c *gin.Context) {
	boardID := c.Param("boardId")

	if !h.store.BoardExists(boardID) {
		handleNotFound(c, "Board not found")
		return
	}

	c.Header("Content-Type", "application/json")
	c.File(h.store.BoardPath(boardID))
}

// ListBoards groups every archived board into its configured workspace,
// newest first within each workspace. Only board metadata is decoded from
// the stored documents.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	boardIDs, err := h.store.ListBoardIDs()
	if err != nil {
		h.logger.Error("Failed to list archived boards", zap.Error(err))
		handleInternalError(c, "Failed to list boards")
		return
	}

	buckets := make(map[string][]domain.BoardMeta)
	for _, boardID := range boardIDs {
		meta, err := h.store.ReadBoardMeta(boardID)
		if err != nil {
			h.logger.Warn("Skipping unreadable board document",
				zap.String("board_id", boardID),
				zap.Error(err),
			)
			continue
		}

		name := h.cfg.WorkspaceFor(boardID)
		if name == "" {
			name = OtherWorkspace
		}
		buckets[name] = append(buckets[name], *meta)
	}

	workspaces := make([]domain.Workspace, 0, len(buckets))
	appendBucket := func(name string) {
		boards, ok := buckets[name]
		if !ok {
			return
		}
		sort.Slice(boards, func(i, j int) bool {
			return boards[i].CreatedAt > boards[j].CreatedAt
		})
		workspaces = append(workspaces, domain.Workspace{Name: name, Boards: boards})
		delete(buckets, name)
	}

	// Configured workspace order first, the fallback bucket last
	for _, ws := range h.cfg.Workspaces {
		appendBucket(ws.Name)
	}
	appendBucket(OtherWorkspace)

	c.JSON(http.StatusOK, workspaces)
}
