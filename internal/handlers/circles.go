package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/imaaryan1108/consist/internal/middleware"
	"github.com/imaaryan1108/consist/internal/models"
)

func (h *Handler) CreateCircle(c *fiber.Ctx) error {
	var req models.CreateCircleRequest
	if msg := bind(c, &req); msg != "" {
		return badRequest(c, msg)
	}

	circle, err := h.svc.Circles.Create(c.UserContext(), middleware.GetUserID(c), req.Name)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(circle)
}

func (h *Handler) JoinCircle(c *fiber.Ctx) error {
	var req models.JoinCircleRequest
	if msg := bind(c, &req); msg != "" {
		return badRequest(c, msg)
	}

	circle, err := h.svc.Circles.Join(c.UserContext(), middleware.GetUserID(c), req.Code)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(circle)
}

func (h *Handler) GetMembers(c *fiber.Ctx) error {
	members, err := h.svc.Circles.Members(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"members": members})
}

// GetCircleActivity returns the caller's circle feed, newest first.
func (h *Handler) GetCircleActivity(c *fiber.Ctx) error {
	page, limit := pagination(c)
	res, err := h.svc.Circles.Activity(c.UserContext(), middleware.GetUserID(c), page, limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}
