package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seatlabs/library-layout-backend/internal/utils"
)

// InternalAPIKey guards service-to-service endpoints. The caller presents
// the plaintext key in X-API-Key; only its bcrypt hash is configured here.
func InternalAPIKey(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "not_configured",
				"message": "Internal API access is not configured",
				"code":    "INTERNAL_API_DISABLED",
			})
			c.Abort()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" || !utils.CheckAPIKey(key, keyHash) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid or missing API key",
				"code":    "INVALID_API_KEY",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
