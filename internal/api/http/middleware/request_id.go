package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderRequestID = "X-Request-Id"
	CtxRequestID    = "request_id"
)

// requestIDKey is the key used to store request ID in context
type requestIDKey struct{}

// RequestID ensures every request has a stable request ID.
// - Reads X-Request-Id header if present, otherwise generates one
// - Stores it in both the Gin context and the request context
// - Echoes it back in the X-Request-Id response header
// - Writes one access log line per request
func RequestID(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set(CtxRequestID, rid)
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), rid))
		c.Writer.Header().Set(HeaderRequestID, rid)

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if uid := c.GetString("user_id"); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}
		log.Info("request", fields...)
	}
}

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// GetRequestID extracts the request ID from a standard context
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}
