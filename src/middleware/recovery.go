package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khabaroff/admin-auth/src/logging"
)

// RecoveryMiddleware turns panics into the standard 500 error body
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		details := "Unknown"
		switch v := recovered.(type) {
		case error:
			details = v.Error()
		case string:
			details = v
		case nil:
		default:
			details = fmt.Sprint(v)
		}

		logger := logging.ComponentLogger("recovery", GetRequestID(c))
		logger.Error().Str("panic", details).Msg("recovered from panic")

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"details": details,
		})
	})
}
