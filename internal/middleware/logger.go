package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"ops-dashboard/internal/metrics"
)

// RequestLogger logs each request through logrus and records its latency.
func RequestLogger(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Let the error handler write the response so the status is final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)

		route := c.Route().Path
		if m != nil {
			m.RequestDuration.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Observe(elapsed.Seconds())
		}

		entry := log.WithFields(log.Fields{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      status,
			"duration_ms": elapsed.Milliseconds(),
			"viewer":      GetViewer(c).ID,
		})
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Warn("request completed")
		default:
			entry.Debug("request completed")
		}

		return nil
	}
}
