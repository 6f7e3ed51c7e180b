package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/suvarna009/resume-matcher/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, health *handlers.HealthHandler, jobs *handlers.JobHandler, resumes *handlers.ResumeHandler, matches *handlers.MatchHandler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	jg := v1.Group("/jobs")
	jg.Post("/", jobs.Create)
	jg.Get("/", jobs.List)
	jg.Get("/:id", jobs.Get)
	jg.Put("/:id", jobs.Update)
	jg.Delete("/:id", jobs.Delete)
	jg.Get("/:id/keywords", jobs.Keywords)
	jg.Get("/:id/matches", matches.ListByJob)

	rg := v1.Group("/resumes")
	rg.Post("/", resumes.Upload)
	rg.Get("/", resumes.List)
	rg.Get("/:id", resumes.Get)
	rg.Delete("/:id", resumes.Delete)
	rg.Get("/:id/matches", matches.ListByResume)

	mg := v1.Group("/matches")
	mg.Post("/preview", matches.Preview)
	mg.Post("/recompute", matches.Recompute)

	v1.Get("/stats", matches.Stats)
}
