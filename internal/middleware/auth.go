package middleware

import (
	"net/http"
	"strings"

	"ecodrip-server/internal/consts"
	"ecodrip-server/internal/modules/common/httpx"
	platformservice "ecodrip-server/internal/platform/service"
	"ecodrip-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuth turns a bearer token into the request principal.
// Handlers read it back with httpx.CurrentUserID; request bodies are never trusted for identity.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpx.AbortFail(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httpx.AbortFail(c, http.StatusUnauthorized, "Malformed authorization header")
			return
		}

		claims, err := utils.ParseLoginToken(strings.TrimSpace(parts[1]))
		if err != nil {
			httpx.AbortFail(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(consts.ContextUserID, claims.ID)
		c.Set(consts.ContextEmail, claims.Email)
		c.Set(consts.ContextAdmin, claims.Admin)
		c.Next()
	}
}

func AdminCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exist := c.Get(consts.ContextAdmin)
		isAdmin, ok := value.(bool)
		if !exist || !ok || !isAdmin {
			httpx.WriteServiceError(c, platformservice.NewForbiddenError("Administrator access required"), "Administrator access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
