package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"board-archive/internal/config"
	"board-archive/internal/handler"
	"board-archive/internal/metrics"
	"board-archive/internal/middleware"
	"board-archive/internal/store"
)

// Setup wires the read-only serving API over the archive directory
func Setup(cfg *config.Config, boardStore *store.BoardStore, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(m))

	boardHandler := handler.NewBoardHandler(boardStore, cfg, logger)
	assetHandler := handler.NewAssetHandler(boardStore, logger)
	healthHandler := handler.NewHealthHandler(boardStore)

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(cfg.Server.BasePath)
	{
		api.GET("/boards", boardHandler.ListBoards)
		api.GET("/boards/:boardId", boardHandler.GetBoard)
	}

	// Asset paths are baked into archived documents as /asset/{boardId}/{file}
	r.GET("/asset/:boardId/:assetFile", assetHandler.GetAsset)

	return r
}
