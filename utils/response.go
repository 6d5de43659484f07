package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StandardResponse is the envelope every endpoint answers with.
type StandardResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, StandardResponse{
		Success: false,
		Error:   message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// StoreFailure converts an underlying persistence error into a 500. The
// driver message rides along for operator diagnosis only.
func StoreFailure(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Database operation failed",
		"message": err.Error(),
	})
}
