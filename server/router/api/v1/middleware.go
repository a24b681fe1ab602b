package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/hrygo/lingotime/server/internal/observability"
)

// requestContextMiddleware attaches a RequestContext to every request and
// echoes its id back in X-Request-Id.
func (s *APIV1Service) requestContextMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rc := observability.NewRequestContextWithID(s.logger, req.Header.Get(echo.HeaderXRequestID), req.Method+" "+c.Path())
			c.Response().Header().Set(echo.HeaderXRequestID, rc.RequestID)
			c.SetRequest(req.WithContext(observability.WithRequestContext(req.Context(), rc)))
			return next(c)
		}
	}
}
