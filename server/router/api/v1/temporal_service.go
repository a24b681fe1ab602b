package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apierrors "github.com/hrygo/lingotime/server/internal/errors"
	"github.com/hrygo/lingotime/server/service/temporal"
)

// ParseTemporal parses one sentence.
// POST /api/v1/temporal:parse
func (s *APIV1Service) ParseTemporal(c echo.Context) error {
	var req temporal.ParseRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apierrors.InvalidArgument("request body must be a JSON object with a text field"))
	}

	resp, err := s.TemporalService.Parse(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// HistoryResponse wraps the audit rows.
type HistoryResponse struct {
	Entries []*temporal.HistoryEntry `json:"entries"`
}

// ListHistory lists recent parses.
// GET /api/v1/temporal/history?limit=N
func (s *APIV1Service) ListHistory(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return writeError(c, apierrors.InvalidArgument("limit must be an integer"))
		}
		limit = n
	}

	entries, err := s.TemporalService.History(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, HistoryResponse{Entries: entries})
}

// Healthz reports that the server is up.
func (s *APIV1Service) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": s.Profile.Version})
}
