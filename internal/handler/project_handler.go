package handler

import (
	"github.com/gofiber/fiber/v2"

	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/middleware"
	"ops-dashboard/internal/service/project"
)

type ProjectHandler struct {
	projectService project.Service
}

func NewProjectHandler(projectService project.Service) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	var q domain.ProjectQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}

	projects, err := h.projectService.List(c.UserContext(), middleware.GetViewer(c), q)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  projects,
		"count": len(projects),
	})
}

func (h *ProjectHandler) Team(c *fiber.Ctx) error {
	projectID := c.Params("projectId")
	if projectID == "" {
		return middleware.BadRequest("Invalid project ID")
	}

	members, err := h.projectService.Team(c.UserContext(), middleware.GetViewer(c), projectID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": members,
	})
}

func (h *ProjectHandler) ProfileProjects(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return middleware.BadRequest("Invalid user ID")
	}

	projects, err := h.projectService.ProfileProjects(c.UserContext(), middleware.GetViewer(c), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  projects,
		"count": len(projects),
	})
}
