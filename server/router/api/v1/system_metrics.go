package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/lingotime/server/internal/observability"
)

// MetricsOverviewResponse represents the overview response of parse metrics
type MetricsOverviewResponse struct {
	TotalRequests int64   `json:"total_requests"`
	SuccessRate   float64 `json:"success_rate"`
	ErrorCount    int64   `json:"error_count"`
	P95LatencyMs  int64   `json:"p95_latency_ms"`
	// BySource counts successful parses per source: primary, fallback, none.
	BySource map[string]*observability.SourceMetricsSnapshot `json:"by_source"`
	// ByLanguage counts successful parses per detected language.
	ByLanguage map[string]int64 `json:"by_language"`
}

// GetMetricsOverview returns the parse counters since the server started.
// GET /api/v1/system/metrics/overview
func (s *APIV1Service) GetMetricsOverview(c echo.Context) error {
	snapshot := s.TemporalService.Stats()
	return c.JSON(http.StatusOK, MetricsOverviewResponse{
		TotalRequests: snapshot.RequestTotal,
		SuccessRate:   snapshot.SuccessRate(),
		ErrorCount:    snapshot.RequestFailed,
		P95LatencyMs:  snapshot.P95Duration,
		BySource:      snapshot.Sources,
		ByLanguage:    snapshot.Languages,
	})
}
