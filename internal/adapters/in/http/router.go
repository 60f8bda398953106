package http

import (
	"net/http"
	"time"

	"freight/internal/pkg/logging"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimit bounds planning requests per client IP.
type RateLimit struct {
	RequestsPerSecond float64
	Burst             int
}

// NewRouter registers the routes and middleware. The rate limiter and the
// contract validation apply to the /api/v1 group only; a non-positive
// RequestsPerSecond disables the limiter.
func NewRouter(s *Server, contract *Contract, limit RateLimit, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	if limit.RequestsPerSecond > 0 {
		api.Use(rateLimiter(limit))
	}
	api.Use(contract.validateRequests())
	api.POST("/transfers/:id/packing-plan", s.PlanTransferPacking)
	api.POST("/weights/resolve", s.ResolveWeights)

	return e
}

func rateLimiter(limit RateLimit) echo.MiddlewareFunc {
	burst := limit.Burst
	if burst < 1 {
		burst = 1
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(limit.RequestsPerSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(ctx echo.Context, _ error) error {
			return ctx.JSON(http.StatusForbidden, Error{
				Code:    http.StatusForbidden,
				Message: "Client could not be identified",
			})
		},
		DenyHandler: func(ctx echo.Context, _ string, _ error) error {
			return ctx.JSON(http.StatusTooManyRequests, Error{
				Code:    http.StatusTooManyRequests,
				Message: "Too many requests",
			})
		},
	})
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	logger = logging.Component(logger, "http")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
