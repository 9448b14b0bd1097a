package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/imaaryan1108/consist/internal/middleware"
	"github.com/imaaryan1108/consist/internal/models"
	"github.com/imaaryan1108/consist/internal/services"
)

func (h *Handler) GetTarget(c *fiber.Ctx) error {
	t, err := h.svc.Targets.Get(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(t)
}

func (h *Handler) SetTarget(c *fiber.Ctx) error {
	var req models.SetTargetRequest
	if msg := bind(c, &req); msg != "" {
		return badRequest(c, msg)
	}

	t, err := h.svc.Targets.Set(c.UserContext(), middleware.GetUserID(c), req)
	if errors.Is(err, services.ErrNoProfileConfigured) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Please set up your body profile first",
		})
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(t)
}

func (h *Handler) DeleteTarget(c *fiber.Ctx) error {
	if err := h.svc.Targets.Delete(c.UserContext(), middleware.GetUserID(c)); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) GetTargetProgress(c *fiber.Ctx) error {
	p, err := h.svc.Targets.Progress(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) GetMilestones(c *fiber.Ctx) error {
	rows, err := h.svc.Milestones.List(c.UserContext(), middleware.GetUserID(c), c.QueryInt("limit", 20))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"milestones": rows})
}

func (h *Handler) EvaluateMilestones(c *fiber.Ctx) error {
	awarded, progress, err := h.svc.Milestones.Evaluate(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"awarded":  awarded,
		"progress": progress,
	})
}
