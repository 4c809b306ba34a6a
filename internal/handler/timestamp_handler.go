package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"ops-dashboard/internal/feed"
	"ops-dashboard/internal/middleware"
)

// TimestampHandler exposes the normalizer so clients render timestamps the
// same way the feed does.
type TimestampHandler struct {
	location *time.Location
}

func NewTimestampHandler(location *time.Location) *TimestampHandler {
	return &TimestampHandler{location: location}
}

func (h *TimestampHandler) Normalize(c *fiber.Ctx) error {
	raw := c.Query("raw")
	if raw == "" {
		return middleware.BadRequest("raw is required")
	}

	loc := h.location
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return middleware.BadRequest("Invalid timezone")
		}
		loc = l
	}

	return c.Status(fiber.StatusOK).JSON(feed.Normalize(raw).View(loc))
}
