// internal/utils/response.go
package utils

import (
	"github.com/gin-gonic/gin"
)

// SuccessResponse writes the standard success envelope.
func SuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// ErrorResponse writes the standard error envelope.
func ErrorResponse(c *gin.Context, status int, message string, details interface{}) {
	body := gin.H{
		"success": false,
		"error":   message,
	}
	if details != nil {
		body["detalles"] = details
	}
	c.JSON(status, body)
}
