package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/argus-watch/argus/backend/internal/logger"
)

const (
	RequestIDKey    = "requestID"
	RequestIDHeader = "X-Request-ID"

	requestLoggerKey = "requestLogger"
)

// RequestID tags every request with an id and a request-scoped log entry.
// A valid inbound X-Request-ID is honoured so ids line up with whatever
// reverse proxy sits in front of the dashboard; anything else gets a fresh
// uuid.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(rid); err != nil {
			rid = uuid.New().String()
		}

		c.Set(RequestIDKey, rid)
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Set(requestLoggerKey, logger.WithFields(logrus.Fields{"request_id": rid}))
		c.Next()
	}
}

// GetRequestLogger returns the request-scoped log entry, falling back to
// the global logger outside a request.
func GetRequestLogger(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(requestLoggerKey); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logger.Log()
}
