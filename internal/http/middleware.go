package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/logger"
	"github.com/mrlokans/bookhub/internal/metrics"
	"github.com/mrlokans/bookhub/internal/sessions"
)

// RequestLogger tags each request with an id and writes one access log line
// when it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), id))

		c.Next()

		entry := logger.For(c.Request.Context()).WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request served")
		}
	}
}

// Metrics records request counts and latencies by route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HttpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HttpRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}
}

// ClientMiddleware resolves the caller's client id and attaches its
// controller to the context. The session middleware must run first when sm
// is set.
func ClientMiddleware(registry *controller.Registry, sm *sessions.SessionManager, defaultClientID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		clientID := defaultClientID
		if sm != nil {
			clientID = sm.ClientID(ctx)
		}
		ctx = logger.ContextWithClient(ctx, clientID)
		c.Request = c.Request.WithContext(ctx)

		ctrl, err := registry.Get(ctx, clientID)
		if err != nil {
			respondInternalError(c, err, "resolve client")
			c.Abort()
			return
		}
		c.Set(ContextKeyController, ctrl)
		c.Next()
	}
}
