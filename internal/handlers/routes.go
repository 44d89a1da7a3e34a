package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"alfredoptarigan/resume-insights/internal/metrics"
)

type Routes struct {
	UI       *UIHandler
	Generate *GenerateHandler
	Prompt   *PromptHandler
}

func SetupRoutes(app *fiber.App, r Routes) {
	app.Get("/", r.UI.HandleIndex)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/prompts", r.Prompt.HandleListPrompts)
	api.Get("/schema", r.Prompt.HandleGetSchema)
	api.Post("/generate", r.Generate.HandleGenerate)
}

// BodyLimit is the fiber body limit for a given upload cap. It leaves room
// above the cap so oversized files reach HandleGenerate and get a JSON 400;
// bodies past the limit are cut off by fasthttp with a plain 413.
func BodyLimit(maxFileSize int64) int {
	limit := 4 * maxFileSize
	if floor := maxFileSize + 1<<20; limit < floor {
		limit = floor
	}
	return int(limit)
}

// ErrorHandler renders errors that escape a handler, such as an oversized
// body or an unknown route.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
