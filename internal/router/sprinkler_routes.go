package router

import (
	"ecodrip-server/internal/middleware"
	sprinklerhandler "ecodrip-server/internal/modules/sprinkler/handler"

	"github.com/gin-gonic/gin"
)

func registerSprinklerRoutes(api *gin.RouterGroup, h *sprinklerhandler.Handler) {
	sprinklerGroup := api.Group("/sprinklers")
	sprinklerGroup.Use(middleware.JWTAuth())

	sprinklerGroup.PUT("/:id", h.UpdateSprinkler)
	sprinklerGroup.DELETE("/:id", h.DeleteSprinkler)
}
