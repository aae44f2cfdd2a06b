package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one structured line per request with method, path,
// status, latency and client IP.  Server errors log at error level,
// client errors at warn, everything else at info.
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo write the response so the status is known
				c.Error(err)
			}
			res := c.Response()
			entry := log.WithFields(logrus.Fields{
				"method":   c.Request().Method,
				"path":     c.Request().URL.Path,
				"status":   res.Status,
				"duration": time.Since(start).String(),
				"ip":       c.RealIP(),
				"size":     res.Size,
			})
			switch {
			case res.Status >= 500:
				entry.Error("http request")
			case res.Status >= 400:
				entry.Warn("http request")
			default:
				entry.Info("http request")
			}
			return nil
		}
	}
}
