package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/imaaryan1108/consist/internal/middleware"
	"github.com/imaaryan1108/consist/internal/models"
)

func (h *Handler) LogMeal(c *fiber.Ctx) error {
	var req models.LogMealRequest
	if msg := bind(c, &req); msg != "" {
		return badRequest(c, msg)
	}
	m, err := h.svc.Meals.Log(c.UserContext(), middleware.GetUserID(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// GetMeals returns ?date= (default today) with totals against macro targets
func (h *Handler) GetMeals(c *fiber.Ctx) error {
	day, err := h.svc.Meals.ForDate(c.UserContext(), middleware.GetUserID(c), c.Query("date"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(day)
}

func (h *Handler) UpdateMeal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid meal ID")
	}
	var req models.UpdateMealRequest
	if msg := bind(c, &req); msg != "" {
		return badRequest(c, msg)
	}
	m, err := h.svc.Meals.Update(c.UserContext(), middleware.GetUserID(c), id, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(m)
}

func (h *Handler) DeleteMeal(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid meal ID")
	}
	if err := h.svc.Meals.Delete(c.UserContext(), middleware.GetUserID(c), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) LogWorkout(c *fiber.Ctx) error {
	var req models.LogWorkoutRequest
	if msg := bind(c, &req); msg != "" {
		return badRequest(c, msg)
	}
	w, err := h.svc.Workouts.Log(c.UserContext(), middleware.GetUserID(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(w)
}

func (h *Handler) GetWorkout(c *fiber.Ctx) error {
	w, err := h.svc.Workouts.ForDate(c.UserContext(), middleware.GetUserID(c), c.Query("date"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(w)
}

func (h *Handler) GetWorkoutHistory(c *fiber.Ctx) error {
	rows, err := h.svc.Workouts.History(c.UserContext(), middleware.GetUserID(c), c.QueryInt("limit", 30))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"workouts": rows})
}

func (h *Handler) DeleteWorkout(c *fiber.Ctx) error {
	if err := h.svc.Workouts.Delete(c.UserContext(), middleware.GetUserID(c), c.Params("date")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) AddExercise(c *fiber.Ctx) error {
	workoutID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid workout ID")
	}
	var req models.LogExerciseRequest
	if msg := bind(c, &req); msg != "" {
		return badRequest(c, msg)
	}
	e, err := h.svc.Workouts.AddExercise(c.UserContext(), middleware.GetUserID(c), workoutID, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

func (h *Handler) UpdateExercise(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid exercise ID")
	}
	var req models.UpdateExerciseRequest
	if msg := bind(c, &req); msg != "" {
		return badRequest(c, msg)
	}
	e, err := h.svc.Workouts.UpdateExercise(c.UserContext(), middleware.GetUserID(c), id, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(e)
}

func (h *Handler) DeleteExercise(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid exercise ID")
	}
	if err := h.svc.Workouts.DeleteExercise(c.UserContext(), middleware.GetUserID(c), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// GetExerciseHistory returns past sets for ?name=
func (h *Handler) GetExerciseHistory(c *fiber.Ctx) error {
	rows, err := h.svc.Workouts.ExerciseHistory(c.UserContext(), middleware.GetUserID(c), c.Query("name"), c.QueryInt("limit", 10))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"exercises": rows})
}

// GetWeeklySummary reads ?offset= in weeks; 0 is the current week
func (h *Handler) GetWeeklySummary(c *fiber.Ctx) error {
	sum, err := h.svc.History.Weekly(c.UserContext(), middleware.GetUserID(c), c.QueryInt("offset", 0))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(sum)
}
