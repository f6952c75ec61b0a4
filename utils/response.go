package utils

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondWithError aborts the request with a JSON error body.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// Logger returns the request-scoped logger, or the global one outside a request.
func Logger(c *gin.Context) *zap.Logger {
	if c != nil {
		if v, ok := c.Get("logger"); ok {
			if l, ok := v.(*zap.Logger); ok {
				return l
			}
		}
	}
	return zap.L()
}
