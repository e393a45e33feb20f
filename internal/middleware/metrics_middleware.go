package middleware

import (
	"strconv"
	"time"

	"eFurnitureMarket/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Metrics records the duration of every request, labelled by method, route
// template and status.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			metrics.HTTPRequestDuration.
				WithLabelValues(c.Request().Method, path, strconv.Itoa(c.Response().Status)).
				Observe(time.Since(started).Seconds())

			return err
		}
	}
}
