package handler

import (
	"github.com/gofiber/fiber/v2"

	"ops-dashboard/internal/middleware"
	"ops-dashboard/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.dashboardService.GetSummary(c.UserContext(), middleware.GetViewer(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
