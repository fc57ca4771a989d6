package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ilumeo/timeclock/internal/apperrors"
	"github.com/ilumeo/timeclock/internal/models"
	"github.com/ilumeo/timeclock/internal/service"
	"github.com/ilumeo/timeclock/internal/timeclock"
)

type TimeclockHandler struct {
	service *service.TimeclockService
	logger  *zap.Logger
}

func NewTimeclockHandler(service *service.TimeclockService, logger *zap.Logger) *TimeclockHandler {
	return &TimeclockHandler{
		service: service,
		logger:  logger,
	}
}

func (h *TimeclockHandler) ClockIn(c echo.Context) error {
	return h.punch(c, h.service.ClockIn)
}

func (h *TimeclockHandler) ClockOut(c echo.Context) error {
	return h.punch(c, h.service.ClockOut)
}

func (h *TimeclockHandler) punch(c echo.Context, record func(string) (*models.TimeEvent, error)) error {
	var req models.ClockRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, h.logger, apperrors.Validation("invalid request body"))
	}

	event, err := record(req.UserID)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, event)
}

func (h *TimeclockHandler) Status(c echo.Context) error {
	snap, err := h.service.Status(c.Param("userId"))
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, snap)
}

func (h *TimeclockHandler) Summaries(c echo.Context) error {
	var q timeclock.RangeQuery
	q.StartDate = c.QueryParam("startDate")
	q.EndDate = c.QueryParam("endDate")

	if raw := c.QueryParam("daysBack"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return writeError(c, h.logger, apperrors.Validation("daysBack must be an integer"))
		}
		q.DaysBack = &days
	}

	summaries, err := h.service.Summaries(c.Param("userId"), q)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, summaries)
}
