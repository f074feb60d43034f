package middleware

import (
	"github.com/gin-gonic/gin"
)

// CORS sets permissive cross-origin headers so browser-side form builders
// can post directly to the webhook
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Next()
	}
}
