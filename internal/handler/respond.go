package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ilumeo/timeclock/internal/apperrors"
)

type errorResponse struct {
	Message string `json:"message"`
}

// writeError maps an error's kind to an HTTP status and a {"message": ...}
// body. This is the only place status codes are decided; internal causes are
// logged, never returned.
func writeError(c echo.Context, logger *zap.Logger, err error) error {
	status := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindConflict:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.Error("Unhandled error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.JSON(status, errorResponse{Message: apperrors.Message(err)})
}
