package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware attaches the fixed cross-origin headers the player needs.
// The player runs on a single known origin, fetches with credentials, and
// only ever issues GET requests against this service.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "*")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
