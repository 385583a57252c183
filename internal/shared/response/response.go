package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success responses
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, message, code string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, 400, message, "BAD_REQUEST")
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, 401, message, "UNAUTHORIZED")
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, 404, message, "NOT_FOUND")
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, 409, message, "CONFLICT")
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, 500, message, "INTERNAL_SERVER_ERROR")
}
