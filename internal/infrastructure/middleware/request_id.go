package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/pkg/httputil"
)

const (
	RequestIDKey    = httputil.RequestIDKey
	RequestIDHeader = "X-Request-ID"
)

// RequestID propagates the caller's request id or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
