package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-room-service/internal/handler"
)

// RegisterRoutes registers infrastructure routes that sit outside the
// box office.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCinema registers the box office endpoints.  cache wraps the
// seat listing only; limit wraps the purchase, return and stats
// endpoints.  Either may be a pass-through.
func RegisterCinema(e *echo.Echo, h *handler.CinemaHandler, limit, cache echo.MiddlewareFunc) {
	e.GET("/seats", h.GetSeats, cache)
	e.POST("/purchase", h.Purchase, limit)
	e.POST("/return", h.Return, limit)
	e.GET("/stats", h.Stats, limit)
}
