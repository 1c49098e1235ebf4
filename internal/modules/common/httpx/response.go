package httpx

import (
	"log"
	"net/http"

	"ecodrip-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}

// AbortFail writes a failure envelope and stops the handler chain.
func AbortFail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}

// WriteServiceError writes a standardized HTTP error response for service-layer errors.
// Unknown errors become a 500 with fallbackMessage; the detail is only echoed in debug mode.
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := service.AsServiceError(err); ok {
		status := serviceErrorStatus(serviceErr.Code)
		if status != http.StatusInternalServerError {
			Fail(c, status, serviceErr.Message)
			return
		}
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		writeInternal(c, serviceErr.Message, err)
		return
	}
	log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	writeInternal(c, fallbackMessage, err)
}

func writeInternal(c *gin.Context, message string, err error) {
	body := Envelope{Success: false, Message: message}
	if gin.Mode() == gin.DebugMode && err != nil {
		body.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

func serviceErrorStatus(code service.ErrorCode) int {
	switch code {
	case service.ErrorCodeValidation:
		return http.StatusBadRequest
	case service.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case service.ErrorCodeForbidden:
		return http.StatusForbidden
	case service.ErrorCodeConflict:
		return http.StatusConflict
	case service.ErrorCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
