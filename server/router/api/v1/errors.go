package v1

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"

	apierrors "github.com/hrygo/lingotime/server/internal/errors"
	"github.com/hrygo/lingotime/server/internal/observability"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Code    apierrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

// writeError renders err with the status of its code. Errors without a code
// are internal and their text is not shown to the client.
func writeError(c echo.Context, err error) error {
	code := apierrors.GetCodeFromError(err, apierrors.ErrCodeInternal)
	msg := "internal error"
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) && code != apierrors.ErrCodeInternal {
		msg = apiErr.Message
	}

	if rc, ok := observability.FromContext(c.Request().Context()); ok {
		if code == apierrors.ErrCodeInternal || code == apierrors.ErrCodeStoreUnavailable {
			rc.Error("request failed", err, slog.String(observability.LogFieldErrorCode, string(code)))
		} else {
			rc.Debug("request rejected", slog.String(observability.LogFieldErrorCode, string(code)))
		}
	}
	return c.JSON(code.HTTPStatus(), ErrorResponse{Code: code, Message: msg})
}
