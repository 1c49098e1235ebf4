package router

import (
	"net/http"
	"strings"

	"ecodrip-server/internal/config"
	"ecodrip-server/internal/middleware"
	"ecodrip-server/internal/modules"
	"ecodrip-server/internal/modules/common/httpx"
	"ecodrip-server/internal/observability/metrics"
	"ecodrip-server/internal/observability/tracing"

	"github.com/gin-gonic/gin"
)

type Router struct {
	modules *modules.AppModules
}

func NewRouter(appModules *modules.AppModules) *Router {
	return &Router{
		modules: appModules,
	}
}

func (rt *Router) Init(r *gin.Engine) {
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(metrics.GinMiddleware())
	r.Use(tracing.GinMiddleware())

	registerSystemRoutes(r)
	registerUploadRoutes(r)

	api := r.Group("/api")
	api.Use(middleware.BodyLimitMiddleware())

	authLimiter := middleware.RateLimitMiddleware(middleware.RateScopeAuth)

	registerAuthRoutes(api, authLimiter, rt.modules.Auth.Handler)
	registerMapRoutes(api, rt.modules.Maps.Handler, rt.modules.Sprinkler.Handler)
	registerSprinklerRoutes(api, rt.modules.Sprinkler.Handler)

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			httpx.Fail(c, http.StatusNotFound, "API not found")
			return
		}
		httpx.Fail(c, http.StatusNotFound, "Not found")
	})
}

// registerUploadRoutes serves stored map images read-only.
func registerUploadRoutes(r *gin.Engine) {
	uploadCfg := config.Get().Upload
	if uploadCfg.Path == "" || uploadCfg.URLPrefix == "" {
		return
	}
	r.Group(uploadCfg.URLPrefix, middleware.StaticCacheMiddleware()).
		StaticFS("", gin.Dir(uploadCfg.Path, false))
}
