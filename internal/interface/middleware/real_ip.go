package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP resolves the originating client address and stores it under
// "real_ip" for the rate limiter. Proxy headers win over the socket peer:
// CF-Connecting-IP first, then the left-most X-Forwarded-For entry.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := clientAddr(c)
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set("real_ip", ip)
		c.Next()
	}
}

func clientAddr(c *gin.Context) string {
	candidates := []string{
		c.GetHeader("CF-Connecting-IP"),
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		candidates = append(candidates, strings.SplitN(xff, ",", 2)[0])
	}
	for _, cand := range candidates {
		cand = strings.TrimSpace(cand)
		if parsed := net.ParseIP(cand); parsed != nil {
			return parsed.String()
		}
	}
	return ""
}
