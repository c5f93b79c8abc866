package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response represents a standard API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error sends an error response; err, when given, is reported as detail
func Error(c *gin.Context, code int, message string, err ...error) {
	resp := Response{
		Code:    code,
		Message: message,
	}
	if len(err) > 0 && err[0] != nil {
		resp.Error = err[0].Error()
		_ = c.Error(err[0])
	}
	c.JSON(code, resp)
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string, err ...error) {
	Error(c, http.StatusBadRequest, message, err...)
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, message string, err ...error) {
	Error(c, http.StatusNotFound, message, err...)
}

// InternalError sends a 500 internal server error response
func InternalError(c *gin.Context, message string, err ...error) {
	Error(c, http.StatusInternalServerError, message, err...)
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string, err ...error) {
	Error(c, http.StatusServiceUnavailable, message, err...)
}
