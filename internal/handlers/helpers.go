// internal/handlers/helpers.go

package handlers

import (
	"github.com/gin-gonic/gin"
)

// respondError keeps error payloads uniform across all handlers.
func respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}
