package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/imaaryan1108/consist/internal/middleware"
	"github.com/imaaryan1108/consist/internal/models"
)

func (h *Handler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if msg := bind(c, &req); msg != "" {
		return badRequest(c, msg)
	}

	res, err := h.svc.Auth.Register(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if msg := bind(c, &req); msg != "" {
		return badRequest(c, msg)
	}

	res, err := h.svc.Auth.Login(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

func (h *Handler) GetMe(c *fiber.Ctx) error {
	user, err := h.svc.Auth.Me(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(meResponse(user))
}

func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if msg := bind(c, &req); msg != "" {
		return badRequest(c, msg)
	}

	user, err := h.svc.Auth.UpdateProfile(c.UserContext(), middleware.GetUserID(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(meResponse(user))
}

func meResponse(user *models.User) fiber.Map {
	return fiber.Map{
		"id":              user.ID,
		"email":           user.Email,
		"name":            user.Name,
		"circleId":        user.CircleID,
		"currentStreak":   user.CurrentStreak,
		"longestStreak":   user.LongestStreak,
		"totalDays":       user.TotalDays,
		"score":           user.Score,
		"lastCheckInDate": user.LastCheckInDate,
		"level":           user.Level(),
		"createdAt":       user.CreatedAt,
		"updatedAt":       user.UpdatedAt,
	}
}
