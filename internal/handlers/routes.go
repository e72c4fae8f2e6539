package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API under /api/v1 plus an index at the root.
func RegisterRoutes(app *fiber.App, review *ReviewHandler, certificate *CertificateHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/review", review.HandleReview)
	api.Get("/certificate", certificate.HandleCertificate)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "LinkedIn Profile Reviewer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/review",
				"GET /api/v1/certificate?score=<0-100>&name=<name>",
				"GET /api/v1/health",
			},
		})
	})
}
