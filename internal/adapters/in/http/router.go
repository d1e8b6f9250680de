package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewEcho builds the echo instance with recovery, request logging, caller
// identity and every route registered.
func NewEcho(s *Server, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	e.Use(IdentityMiddleware())

	RegisterRoutes(e, s)
	return e
}

func RegisterRoutes(e *echo.Echo, s *Server) {
	e.GET("/health", s.Health)
	e.GET("/public/time", s.ServerTime)

	api := e.Group("/api/v1")

	api.POST("/tracking-ids/generate", s.GenerateTrackingIDs)
	api.POST("/tracking-ids/confirm", s.ConfirmTrackingIDs)
	api.GET("/tracking-ids/:trackingId", s.LookupTrackingID)

	api.GET("/parcels", s.ListActiveParcels)
	api.POST("/parcels/entry", s.EnterParcel)
	api.POST("/parcels/exit", s.ExitParcelByTrackingID)
	api.DELETE("/parcels/:id", s.ExitParcel)
	api.PUT("/parcels/:id/move", s.MoveParcel)

	api.GET("/dashboard/metrics", s.GetDashboardMetrics)

	api.GET("/audit-logs", s.ListAuditEntries)
	api.POST("/audit-logs", s.RecordAuditEntry)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				logger.LogAttrs(c.Request().Context(), slog.LevelError, "request", attrs...)
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	})
}
