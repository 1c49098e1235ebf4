package middleware

import (
	"ecodrip-server/internal/config"

	"github.com/gin-gonic/gin"
)

// StaticCacheMiddleware adds upload.cache_control to served map images.
func StaticCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cc := config.Get().Upload.CacheControl; cc != "" {
			c.Header("Cache-Control", cc)
		}
		c.Next()
	}
}
