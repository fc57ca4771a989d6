package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/ilumeo/timeclock/internal/handler"
)

// Server is the HTTP front of the timeclock API.
type Server struct {
	echo   *echo.Echo
	logger *zap.Logger
}

func New(users *handler.UserHandler, punches *handler.TimeclockHandler, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.POST("/users", users.CreateUser)
	api.POST("/auth", users.Login)

	clock := api.Group("/time")
	clock.POST("/clock-in", punches.ClockIn)
	clock.POST("/clock-out", punches.ClockOut)
	clock.GET("/status/:userId", punches.Status)
	clock.GET("/summary/:userId", punches.Summaries)

	return &Server{
		echo:   e,
		logger: logger,
	}
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("remote_addr", req.RemoteAddr),
				zap.Int("status", res.Status),
				zap.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}

// Router returns the HTTP handler, for tests.
func (s *Server) Router() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	s.logger.Info("HTTP server listening", zap.String("addr", addr))
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
