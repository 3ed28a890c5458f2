package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rmitchellscott/monodither/internal/logging"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request an ID, reusing a valid incoming one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs each request through the structured logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"ip", c.ClientIP(),
			"request_id", c.GetString("request_id"),
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			logging.ErrorWithComponent(logging.ComponentHTTP, "Request failed", append(args, "errors", c.Errors.String())...)
		case status >= 400:
			logging.WarnWithComponent(logging.ComponentHTTP, "Request rejected", args...)
		default:
			logging.DebugWithComponent(logging.ComponentHTTP, "Request served", args...)
		}
	}
}

// RequestSizeLimit rejects bodies larger than maxBytes with 413 and caps
// the reader for requests without a Content-Length.
func RequestSizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			logging.WarnWithComponent(logging.ComponentHTTP, "Request too large", "size", c.Request.ContentLength, "limit", maxBytes, "ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":     "Request payload too large",
				"max_size":  fmt.Sprintf("%dB", maxBytes),
				"your_size": fmt.Sprintf("%dB", c.Request.ContentLength),
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
