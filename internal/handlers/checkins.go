package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/imaaryan1108/consist/internal/middleware"
	"github.com/imaaryan1108/consist/internal/services"
)

// CheckIn records today's check-in. A repeat is not an error for the client:
// it gets success=false and nothing changes.
func (h *Handler) CheckIn(c *fiber.Ctx) error {
	res, err := h.svc.CheckIns.CheckIn(c.UserContext(), middleware.GetUserID(c))
	if errors.Is(err, services.ErrAlreadyCheckedInToday) {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "Already consisted today!",
		})
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result":  res,
	})
}

func (h *Handler) GetCheckInStatus(c *fiber.Ctx) error {
	status, err := h.svc.CheckIns.Status(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(status)
}

func (h *Handler) PushMember(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	res, err := h.svc.Pushes.Push(c.UserContext(), middleware.GetUserID(c), targetID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
