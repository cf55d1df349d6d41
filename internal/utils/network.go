package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP extracts the real client IP address from the request, preferring
// proxy-set headers over the raw connection address. X-Real-IP wins, then the
// first public entry of X-Forwarded-For, then gin's ClientIP fallback.
func GetRealIP(c *gin.Context) string {
	realIP := strings.TrimSpace(c.Request.Header.Get("X-Real-IP"))
	if realIP != "" && isPublicIP(realIP) {
		return realIP
	}

	forwarded := c.Request.Header.Get("X-Forwarded-For")
	for _, part := range strings.Split(forwarded, ",") {
		candidate := strings.TrimSpace(part)
		if candidate != "" && isPublicIP(candidate) {
			return candidate
		}
	}

	return c.ClientIP()
}

func isPublicIP(s string) bool {
	ip := net.ParseIP(s)
	if ip == nil {
		return false
	}
	return !ip.IsPrivate() && !ip.IsLoopback() && !ip.IsUnspecified()
}
