package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"ecodrip-server/internal/config"
	"ecodrip-server/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
)

// multipartOverheadBytes leaves room for boundaries and text fields around the file.
const multipartOverheadBytes = 1 << 20

// BodyLimitMiddleware caps JSON request bodies. Upload routes are skipped and
// use UploadBodyLimitMiddleware instead.
func BodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasSuffix(c.Request.URL.Path, "/upload") {
			c.Next()
			return
		}

		maxSizeMB := config.Get().Server.MaxRequestBodySize
		if maxSizeMB <= 0 {
			maxSizeMB = 2
		}
		maxBytes := int64(maxSizeMB) * 1024 * 1024

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UploadBodyLimitMiddleware rejects uploads larger than upload.max_size.
func UploadBodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSizeMB := config.Get().Upload.MaxSize
		if maxSizeMB <= 0 {
			maxSizeMB = 10
		}
		maxBytes := int64(maxSizeMB)*1024*1024 + multipartOverheadBytes

		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			httpx.AbortFail(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("File size cannot exceed %dMB", maxSizeMB))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
