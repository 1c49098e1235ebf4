package router

import (
	"net/http"

	"ecodrip-server/internal/config"
	"ecodrip-server/internal/observability/metrics"

	"github.com/gin-gonic/gin"
)

func registerSystemRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	metricsCfg := config.Get().Metrics
	if metricsCfg.Enabled {
		path := metricsCfg.Path
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, metrics.Handler())
	}
}
