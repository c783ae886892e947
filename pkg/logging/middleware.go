package logging

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is read from incoming requests and echoed on responses.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID reuses the caller's X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id set by RequestID, if any.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Access logs every completed request. Level follows the status class.
// userID extracts the authenticated user, returning 0 when there is none.
func Access(l *slog.Logger, userID func(*gin.Context) uint) gin.HandlerFunc {
	l = l.With(FieldComponent, "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}
		attrs := []any{
			FieldMethod, c.Request.Method,
			FieldPath, c.Request.URL.Path,
			FieldQuery, c.Request.URL.RawQuery,
			FieldStatusCode, status,
			FieldDuration, time.Since(start).Milliseconds(),
			FieldClientIP, c.ClientIP(),
			FieldRequestID, GetRequestID(c),
		}
		if userID != nil {
			if id := userID(c); id != 0 {
				attrs = append(attrs, FieldUserID, id)
			}
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, FieldError, c.Errors.String())
		}
		l.Log(c.Request.Context(), level, "HTTP request completed", attrs...)
	}
}
