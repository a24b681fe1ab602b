package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/lingotime/internal/profile"
	ratelimit "github.com/hrygo/lingotime/server/middleware"
	"github.com/hrygo/lingotime/server/service/temporal"
)

type APIV1Service struct {
	Profile         *profile.Profile
	TemporalService temporal.Service

	logger      *slog.Logger
	rateLimiter *ratelimit.RateLimiter
}

// NewAPIV1Service creates the HTTP API over svc. A nil logger uses the default.
func NewAPIV1Service(profile *profile.Profile, svc temporal.Service, logger *slog.Logger) *APIV1Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIV1Service{
		Profile:         profile,
		TemporalService: svc,
		logger:          logger,
		// 10 requests per second per client, with burst of 20
		rateLimiter: ratelimit.NewRateLimiter(10, 20),
	}
}

// RegisterRoutes registers the API routes with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(echoServer *echo.Echo) {
	echoServer.GET("/healthz", s.Healthz)

	api := echoServer.Group("/api/v1",
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		}),
		s.requestContextMiddleware(),
		s.rateLimiter.Middleware(),
	)
	// The colon is literal: POST /api/v1/temporal:parse.
	api.POST("/temporal\\:parse", s.ParseTemporal)
	api.POST("/temporal/parse", s.ParseTemporal)
	api.GET("/temporal/history", s.ListHistory)
	api.GET("/system/metrics/overview", s.GetMetricsOverview)
}
