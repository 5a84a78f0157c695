package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/emr-records/internal/handler/health"
	"github.com/jwalitptl/emr-records/internal/handler/prometheus"
	"github.com/jwalitptl/emr-records/internal/middleware"
	"github.com/jwalitptl/emr-records/pkg/logger"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine   *gin.Engine
	health   *health.Handler
	metrics  *prometheus.Handler
	handlers []Handler
}

type RouterConfig struct {
	RateLimit   rate.Limit
	RateBurst   int
	Timeout     time.Duration
	MaxBodySize int64
	Logger      *logger.Logger
}

func NewRouter(
	healthH *health.Handler,
	metricsH *prometheus.Handler,
	handlers []Handler,
	config RouterConfig,
) *Router {
	log := config.Logger
	if log == nil {
		log = logger.Nop()
	}

	engine := gin.New()

	r := &Router{
		engine:   engine,
		health:   healthH,
		metrics:  metricsH,
		handlers: handlers,
	}

	// Add core middlewares
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.ErrorLogger(log),
		metricsH.Middleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
	)

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	sizeLimit := middleware.DefaultSizeLimitConfig()
	if config.MaxBodySize > 0 {
		sizeLimit.MaxBodySize = config.MaxBodySize
	}
	engine.Use(middleware.SizeLimit(sizeLimit))

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", r.metrics.Handler())

	api := r.engine.Group("/api/v1")
	r.health.RegisterRoutes(api)
	for _, h := range r.handlers {
		h.RegisterRoutes(api)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
