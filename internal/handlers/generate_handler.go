package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/services"
)

type GenerateHandler struct {
	pipeline       services.PipelineService
	storageService services.StorageService
	maxFileSize    int64
	defaultMode    models.ResponseMode
}

func NewGenerateHandler(
	pipeline services.PipelineService,
	storageService services.StorageService,
	maxFileSize int64,
	defaultMode models.ResponseMode,
) *GenerateHandler {
	return &GenerateHandler{
		pipeline:       pipeline,
		storageService: storageService,
		maxFileSize:    maxFileSize,
		defaultMode:    defaultMode,
	}
}

// HandleGenerate runs one uploaded résumé through the pipeline. Form fields:
// file (required), prompt, preset, mode.
func (h *GenerateHandler) HandleGenerate(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "Please upload a PDF file before generating.")
	}

	if file.Size > h.maxFileSize {
		return badRequest(c, fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize))
	}

	template := c.FormValue("prompt")
	mode := h.defaultMode

	if name := c.FormValue("preset"); name != "" {
		preset, ok := services.GetPreset(name)
		if !ok {
			return badRequest(c, fmt.Sprintf("Unknown preset: %s", name))
		}
		if template == "" {
			template = preset.Template
		}
		mode = preset.Mode
	}

	if raw := c.FormValue("mode"); raw != "" {
		mode, err = models.ParseResponseMode(raw)
		if err != nil {
			return badRequest(c, err.Error())
		}
	}

	// Save file
	doc, err := h.storageService.SaveFile(file)
	if err != nil {
		log.Error().Err(err).Str("filename", file.Filename).Msg("upload.save_failed")
		return c.Status(fiber.StatusInternalServerError).JSON(models.GenerateResponse{
			StatusCode: fiber.StatusInternalServerError,
			Message:    "Failed to save uploaded file",
			Error:      err.Error(),
		})
	}
	defer h.storageService.Release(doc)

	result := h.pipeline.Run(c.UserContext(), services.RunInput{
		Filename: doc.OriginalFileName,
		Data:     doc.Data,
		Template: template,
		Mode:     mode,
	})

	return c.Status(result.StatusCode).JSON(result.Response())
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.GenerateResponse{
		StatusCode: fiber.StatusBadRequest,
		Message:    message,
	})
}
