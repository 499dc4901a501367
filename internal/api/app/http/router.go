// Package http собирает HTTP API сервиса на fiber.
package http

import (
	"github.com/gofiber/fiber/v3"

	"hdnotes/internal/api/app/http/auth"
	"hdnotes/internal/api/app/http/health"
	"hdnotes/internal/api/app/http/middleware"
	"hdnotes/internal/api/app/http/notes"
	"hdnotes/internal/api/app/http/response"
	"hdnotes/internal/api/ports/ratelimit"
	authapi "hdnotes/internal/auth/ports/api"
)

// Dependencies содержит все, что нужно маршрутам.
type Dependencies struct {
	Auth      *auth.Handler
	Notes     *notes.Handler
	Health    *health.Handler
	Users     authapi.UserUseCase
	Limiter   ratelimit.Limiter
	Origins   []string
	Responder *response.Responder
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewRecoveryMiddleware(deps.Responder))
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewPreflightMiddleware())
	app.Use(middleware.NewCORSMiddleware(deps.Origins))
	if deps.Limiter != nil {
		app.Use(middleware.NewRateLimitMiddleware(deps.Limiter, deps.Responder))
	}

	requireAuth := middleware.NewAuthMiddleware(deps.Users, deps.Responder)

	apiGroup := app.Group("/api")

	// Auth routes.
	authRoutes := apiGroup.Group("/auth")
	authRoutes.Post("/send-otp", deps.Auth.SendOTP)
	authRoutes.Post("/signup", deps.Auth.Signup)
	authRoutes.Post("/signin", deps.Auth.Signin)
	authRoutes.Get("/profile", requireAuth, deps.Auth.GetProfile)
	authRoutes.Get("/google", deps.Auth.GoogleRedirect)
	authRoutes.Get("/google/callback", deps.Auth.GoogleCallback)

	// Защищенные маршруты заметок.
	noteRoutes := apiGroup.Group("/notes", requireAuth)
	noteRoutes.Get("/", deps.Notes.ListNotes)
	noteRoutes.Post("/", deps.Notes.CreateNote)
	noteRoutes.Put("/:id", deps.Notes.UpdateNote)
	noteRoutes.Delete("/:id", deps.Notes.DeleteNote)

	apiGroup.Get("/health", deps.Health.Check)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return deps.Responder.Message(c, fiber.StatusNotFound, response.MsgRouteNotFound)
	})
}
