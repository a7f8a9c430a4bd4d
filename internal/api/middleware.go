package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Constants for context keys
const (
	ContextRequestIDKey = "requestID"
	ContextLoggerKey    = "logger"

	RequestIDHeader = "X-Request-ID"
)

// RequestIDMiddleware tags every request with an id, reusing the caller's
// X-Request-ID when one is sent.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware stores a request-scoped logrus entry in the context and
// logs one line per completed request. Must run AFTER RequestIDMiddleware.
func LoggerMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		entry := logger.WithFields(logrus.Fields{
			"request_id": c.GetString(ContextRequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})
		c.Set(ContextLoggerKey, entry)

		c.Next()

		fields := logrus.Fields{
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		entry.WithFields(fields).Info("request completed")
	}
}

// RecoveryMiddleware turns panics into a 500 with the standard error body.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		requestLogger(c).WithField("panic", recovered).Error("recovered from panic")
		abortWithError(c, http.StatusInternalServerError, "Internal Server Error")
	})
}

// CORSMiddleware allows any origin, method and header.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// Helper to get the request-scoped logger (used by handlers)
func requestLogger(c *gin.Context) logrus.FieldLogger {
	if raw, ok := c.Get(ContextLoggerKey); ok {
		if entry, ok := raw.(logrus.FieldLogger); ok {
			return entry
		}
	}
	return logrus.StandardLogger()
}
