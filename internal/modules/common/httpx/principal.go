package httpx

import (
	"net/http"

	"ecodrip-server/internal/consts"

	"github.com/gin-gonic/gin"
)

// CurrentUserID returns the principal set by the JWT middleware.
func CurrentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(consts.ContextUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// RequireUserID writes a 401 and returns false when no principal is present.
func RequireUserID(c *gin.Context) (string, bool) {
	id, ok := CurrentUserID(c)
	if !ok {
		Fail(c, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return id, true
}
