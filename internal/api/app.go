package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber application with all routes and middleware.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "campus-fund-tracker",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/login", h.HandleLogin)

	authed := app.Group("/api", h.RequireAuth)
	authed.Get("/students", h.HandleStudents)
	authed.Get("/students/:id", h.HandleStudentDetail)
	authed.Post("/refresh", h.HandleRefresh)
	authed.Get("/stats", h.HandleStats)
	authed.Get("/export", h.HandleExport)

	return app
}
