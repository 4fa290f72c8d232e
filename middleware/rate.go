package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var limiters sync.Map

// Limiter throttles per client IP. Applied to the auth endpoints to slow
// credential stuffing.
func Limiter(r rate.Limit, b int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		v, _ := limiters.LoadOrStore(ip, rate.NewLimiter(r, b))
		limiter := v.(*rate.Limiter)
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Trop de requêtes, réessayez plus tard"})
			return
		}
		c.Next()
	}
}
