package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BindJSON decodes the request body into obj. On failure it writes 413 when
// the body hit the size cap and 400 otherwise, and reports false.
func BindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		Fail(c, http.StatusRequestEntityTooLarge, "Request body too large")
		return false
	}
	Fail(c, http.StatusBadRequest, "Invalid request body")
	return false
}
