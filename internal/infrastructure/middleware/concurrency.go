package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

// ConcurrencyLimit rejects requests with 429 while max requests are already running.
// Acquisitions hold hundreds of tile downloads open, so they are bounded per process.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	if max <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if !sem.TryAcquire(1) {
			c.Header("Retry-After", "30")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":       "TOO_MANY_ACQUISITIONS",
				"error":      "too many acquisitions in progress, please try again later",
				"request_id": c.GetString(RequestIDKey),
			})
			return
		}
		defer sem.Release(1)

		c.Next()
	}
}
