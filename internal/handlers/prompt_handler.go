package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-insights/internal/services"
)

type PromptHandler struct {
	schema *services.Schema
}

func NewPromptHandler(schema *services.Schema) *PromptHandler {
	return &PromptHandler{
		schema: schema,
	}
}

func (h *PromptHandler) HandleListPrompts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"default": services.DefaultPreset,
		"prompts": services.ListPresets(),
	})
}

func (h *PromptHandler) HandleGetSchema(c *fiber.Ctx) error {
	if h.schema == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No schema loaded",
		})
	}
	return c.JSON(h.schema.Value)
}
