package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/imaaryan1108/consist/internal/handlers"
	"github.com/imaaryan1108/consist/internal/middleware"
)

func Setup(app *fiber.App, h *handlers.Handler, hub *handlers.Hub, auth *middleware.JWT, pushLimit *middleware.RateLimiter) {
	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Register)
	authRoutes.Post("/login", h.Login)

	protected := api.Group("/", auth.Protected())

	protected.Get("/me", h.GetMe)
	protected.Put("/me", h.UpdateProfile)

	circles := protected.Group("/circles")
	circles.Post("/", h.CreateCircle)
	circles.Post("/join", h.JoinCircle)
	circles.Get("/members", h.GetMembers)
	circles.Get("/activity", h.GetCircleActivity)

	checkins := protected.Group("/checkins")
	checkins.Post("/", h.CheckIn)
	checkins.Get("/status", h.GetCheckInStatus)

	protected.Post("/pushes/:userId", pushLimit.Handler(), h.PushMember)

	protected.Get("/body-profile", h.GetBodyProfile)
	protected.Put("/body-profile", h.UpsertBodyProfile)

	weekly := protected.Group("/weekly-checkins")
	weekly.Post("/", h.SubmitWeeklyCheckin)
	weekly.Get("/", h.GetWeeklyCheckins)
	weekly.Get("/prompt", h.GetWeeklyPrompt)

	target := protected.Group("/target")
	target.Get("/", h.GetTarget)
	target.Put("/", h.SetTarget)
	target.Delete("/", h.DeleteTarget)
	target.Get("/progress", h.GetTargetProgress)

	milestones := protected.Group("/milestones")
	milestones.Get("/", h.GetMilestones)
	milestones.Post("/evaluate", h.EvaluateMilestones)

	meals := protected.Group("/meals")
	meals.Post("/", h.LogMeal)
	meals.Get("/", h.GetMeals)
	meals.Put("/:id", h.UpdateMeal)
	meals.Delete("/:id", h.DeleteMeal)

	workouts := protected.Group("/workouts")
	workouts.Put("/", h.LogWorkout)
	workouts.Get("/", h.GetWorkout)
	workouts.Get("/history", h.GetWorkoutHistory)
	workouts.Delete("/:date", h.DeleteWorkout)
	workouts.Post("/:id/exercises", h.AddExercise)

	exercises := protected.Group("/exercises")
	exercises.Get("/history", h.GetExerciseHistory)
	exercises.Put("/:id", h.UpdateExercise)
	exercises.Delete("/:id", h.DeleteExercise)

	protected.Get("/history/weekly", h.GetWeeklySummary)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.GetNotifications)
	notifications.Put("/:id/read", h.MarkNotificationRead)
	notifications.Post("/read-all", h.MarkAllRead)
	notifications.Delete("/:id", h.DeleteNotification)

	// Device token for FCM delivery
	protected.Post("/device-token", h.RegisterDeviceToken)

	// WebSocket for the live circle feed
	app.Use("/ws", handlers.WebSocketUpgrade(auth))
	app.Get("/ws/circles/:id", websocket.New(h.HandleWebSocket(hub)))
}
