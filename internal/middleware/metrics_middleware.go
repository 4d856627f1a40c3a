package middleware

import (
	"errors"
	"time"

	"storefront/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records request count, error count and latency per route.
func Metrics(m *metrics.AppMetrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// The app error handler has not run yet, so a returned error decides the status.
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		route := "unknown"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}

		ctx := c.UserContext()
		attrs := metric.WithAttributes(
			attribute.String("http.method", c.Method()),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)

		m.HTTPRequestsTotal.Add(ctx, 1, attrs)
		if status >= fiber.StatusBadRequest {
			m.HTTPRequestsErrors.Add(ctx, 1, attrs)
		}
		m.HTTPRequestDuration.Record(ctx, float64(time.Since(start).Milliseconds()), attrs)

		return err
	}
}
