package httpapi

import (
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterConfig is everything the router mounts.
type RouterConfig struct {
	Handler        *Handler
	Tokens         TokenVerifier
	Metrics        *observability.Metrics
	Registry       *prometheus.Registry
	Logger         logging.Logger
	RequestTimeout time.Duration
}

// NewRouter builds the gin engine. Every todo route and /profile sit behind
// SessionGuard.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()

	r.Use(
		RequestID(),
		Recovery(cfg.Logger),
		AccessLog(cfg.Logger),
		Metrics(cfg.Metrics),
		Timeout(cfg.RequestTimeout),
	)

	h := cfg.Handler

	r.GET("/ping", h.Ping)
	r.GET("/status", h.Status)
	r.POST("/echo", h.Echo)
	r.GET("/healthz/liveness", h.Liveness)
	r.GET("/healthz/readiness", h.Readiness)
	if cfg.Registry != nil {
		r.GET("/metrics", gin.WrapH(observability.Handler(cfg.Registry)))
	}

	r.POST("/signup", h.Signup)
	r.POST("/signin", h.Signin)

	guarded := r.Group("/", SessionGuard(cfg.Tokens, cfg.Metrics))
	guarded.GET("/profile", h.Profile)

	todos := guarded.Group("/todos")
	todos.GET("", h.ListTodos)
	todos.POST("", h.CreateTodo)
	todos.GET("/:id", h.GetTodo)
	todos.PUT("/:id", h.ReplaceTodo)
	todos.PATCH("/:id", h.ToggleTodo)
	todos.DELETE("/:id", h.DeleteTodo)

	r.NoRoute(func(c *gin.Context) {
		abortWithError(c, notFound("Route", common.ErrorNotFound))
	})

	return r
}
