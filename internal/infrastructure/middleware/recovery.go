package middleware

import (
	"errors"
	"net"
	"os"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/pkg/httputil"
)

func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			fields := []zap.Field{
				zap.Any("error", rec),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(RequestIDKey)),
			}

			// A client that hung up mid-response cannot receive an error body.
			if err, ok := rec.(error); ok && isBrokenPipe(err) {
				logger.Warn("client connection closed", fields...)
				c.Abort()
				return
			}

			logger.Error("panic recovered", append(fields, zap.String("stack", string(debug.Stack())))...)
			httputil.InternalError(c)
			c.Abort()
		}()
		c.Next()
	}
}

func isBrokenPipe(err error) bool {
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if errors.As(opErr.Err, &sysErr) {
		return errors.Is(sysErr.Err, syscall.EPIPE) || errors.Is(sysErr.Err, syscall.ECONNRESET)
	}
	return false
}
