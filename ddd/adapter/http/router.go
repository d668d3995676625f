package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"videoflix-service/pkg/config"
	"videoflix-service/pkg/middleware"
)

// RegisterRoutes wires every endpoint onto the engine.
//
// The streaming routes sit under a CORS group of their own because the
// browser player fetches them cross-origin with credentials. OPTIONS
// routes are registered explicitly; group middleware only runs for
// matched routes, so preflights need a route of their own.
func RegisterRoutes(engine *gin.Engine, cfg *config.Config, stream *StreamController, videos *VideoController) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	preflight := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	streamGroup := engine.Group("/video")
	streamGroup.Use(middleware.CORSMiddleware(cfg.Media.AllowedOrigin))
	streamGroup.OPTIONS("/:id/:resolution/index.m3u8", preflight)
	streamGroup.OPTIONS("/:id/:resolution/:segment", preflight)
	streamGroup.Use(middleware.AuthMiddleware(cfg.JWT))
	streamGroup.GET("/:id/:resolution/index.m3u8", stream.ServePlaylist)
	streamGroup.GET("/:id/:resolution/:segment", stream.ServeSegment)

	api := engine.Group("/api/videos")
	api.Use(middleware.AuthMiddleware(cfg.JWT))
	api.POST("", videos.Create)
	api.GET("/categories", videos.Categories)
	api.GET("/:id", videos.Get)
}
