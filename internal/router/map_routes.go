package router

import (
	"ecodrip-server/internal/middleware"
	maphandler "ecodrip-server/internal/modules/maps/handler"
	sprinklerhandler "ecodrip-server/internal/modules/sprinkler/handler"

	"github.com/gin-gonic/gin"
)

func registerMapRoutes(api *gin.RouterGroup, h *maphandler.Handler, sh *sprinklerhandler.Handler) {
	mapGroup := api.Group("/maps")
	mapGroup.Use(middleware.JWTAuth())

	uploadLimiter := middleware.RateLimitMiddleware(middleware.RateScopeUpload)
	uploadBodyLimit := middleware.UploadBodyLimitMiddleware()

	mapGroup.POST("/upload", uploadBodyLimit, uploadLimiter, h.UploadMap)
	mapGroup.GET("", h.ListMaps)
	mapGroup.GET("/:mapId", h.GetMap)
	mapGroup.PUT("/:mapId", h.UpdateMap)
	mapGroup.DELETE("/:mapId", h.DeleteMap)

	// Sprinklers are addressed through their map for create, list and placement.
	mapGroup.POST("/:mapId/sprinklers", sh.AddSprinkler)
	mapGroup.GET("/:mapId/sprinklers", sh.ListSprinklers)
	mapGroup.POST("/:mapId/placements", sh.Place)
}
