package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/imaaryan1108/consist/internal/middleware"
	"github.com/imaaryan1108/consist/internal/models"
)

func (h *Handler) GetBodyProfile(c *fiber.Ctx) error {
	p, err := h.svc.Body.Get(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) UpsertBodyProfile(c *fiber.Ctx) error {
	var req models.UpsertBodyProfileRequest
	if msg := bind(c, &req); msg != "" {
		return badRequest(c, msg)
	}

	p, err := h.svc.Body.Upsert(c.UserContext(), middleware.GetUserID(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) SubmitWeeklyCheckin(c *fiber.Ctx) error {
	var req models.SubmitWeeklyCheckinRequest
	if msg := bind(c, &req); msg != "" {
		return badRequest(c, msg)
	}

	res, err := h.svc.Weekly.Submit(c.UserContext(), middleware.GetUserID(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *Handler) GetWeeklyCheckins(c *fiber.Ctx) error {
	rows, err := h.svc.Weekly.History(c.UserContext(), middleware.GetUserID(c), c.QueryInt("limit", 12))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"checkins": rows})
}

func (h *Handler) GetWeeklyPrompt(c *fiber.Ctx) error {
	p, err := h.svc.Weekly.Prompt(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(p)
}
