package router

import (
	"ecodrip-server/internal/middleware"
	authhandler "ecodrip-server/internal/modules/auth/handler"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(api *gin.RouterGroup, authLimiter gin.HandlerFunc, h *authhandler.Handler) {
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authLimiter, h.Register)
	authGroup.POST("/login", authLimiter, h.Login)

	authGroup.GET("/users", middleware.JWTAuth(), middleware.AdminCheck(), h.ListUsers)
}
