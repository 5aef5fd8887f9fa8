package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/observability"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDCtxKey = "request_id"

// RequestID propagates X-Request-ID, minting one when the client sent none.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDCtxKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

// AccessLog logs one line per request. Server errors are logged at error
// level with the cause recorded by abortWithError.
func AccessLog(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"request_id", c.GetString(requestIDCtxKey),
		}
		if id, ok := UserIDFromContext(c.Request.Context()); ok {
			args = append(args, "user_id", id)
		}

		if status >= http.StatusInternalServerError {
			if last := c.Errors.Last(); last != nil {
				args = append(args, logging.ErrorAttrs(last.Err)...)
			}
			logger.Error(c.Request.Context(), "http request", args...)
			return
		}
		logger.Info(c.Request.Context(), "http request", args...)
	}
}

// Metrics records request counts and latencies by route template.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(route, c.Request.Method, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// Timeout bounds the request context. Storage calls observe it.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Recovery turns a panic into a 500 envelope.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error(c.Request.Context(), "panic in handler", "panic", recovered, "request_id", c.GetString(requestIDCtxKey))
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorEnvelope{Error: ErrorBody{Code: CodeInternal, Message: internalErrorMessage}})
	})
}
