package handler

import (
	"github.com/gofiber/fiber/v2"

	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/middleware"
	"ops-dashboard/internal/service/export"
	"ops-dashboard/internal/service/feed"
)

type FeedHandler struct {
	feedService   feed.Service
	exportService export.Service
}

func NewFeedHandler(feedService feed.Service, exportService export.Service) *FeedHandler {
	return &FeedHandler{feedService: feedService, exportService: exportService}
}

func (h *FeedHandler) query(c *fiber.Ctx) (domain.FeedQuery, error) {
	var q domain.FeedQuery
	if err := parseQuery(c, &q); err != nil {
		return q, err
	}
	if q.Lang == "" {
		q.Lang = c.Get("Accept-Language")
		if len(q.Lang) > 2 {
			q.Lang = q.Lang[:2]
		}
	}
	return q, nil
}

func (h *FeedHandler) Combined(c *fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return err
	}

	result, err := h.feedService.Combined(c.UserContext(), middleware.GetViewer(c), q)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *FeedHandler) Activities(c *fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return err
	}

	result, err := h.feedService.Activities(c.UserContext(), middleware.GetViewer(c), q)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *FeedHandler) Announcements(c *fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return err
	}

	result, err := h.feedService.Announcements(c.UserContext(), middleware.GetViewer(c), q)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *FeedHandler) AnnouncementCount(c *fiber.Ctx) error {
	count, err := h.feedService.AnnouncementCount(c.UserContext(), middleware.GetViewer(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}

func (h *FeedHandler) Export(c *fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return err
	}

	result, err := h.exportService.ExportFeed(c.UserContext(), middleware.GetViewer(c), q)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
