package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ilumeo/timeclock/internal/apperrors"
	"github.com/ilumeo/timeclock/internal/models"
	"github.com/ilumeo/timeclock/internal/service"
)

type UserHandler struct {
	service *service.UserService
	logger  *zap.Logger
}

func NewUserHandler(service *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, h.logger, apperrors.Validation("invalid request body"))
	}

	user, err := h.service.CreateUser(&req)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, h.logger, apperrors.Validation("invalid request body"))
	}

	resp, err := h.service.LoginByCode(req.UserCode)
	if err != nil {
		return writeError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, resp)
}
