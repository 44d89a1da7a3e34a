package handlers

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-insights/internal/models"
	"alfredoptarigan/resume-insights/internal/services"
)

//go:embed web/index.html
var webFS embed.FS

var indexTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

type indexPage struct {
	Title     string
	Presets   []models.PromptPreset
	Templates map[string]string
	Template  string
	Mode      models.ResponseMode
}

type UIHandler struct {
	page []byte
}

// NewUIHandler renders the form once; its content depends only on the
// presets and the configured default mode.
func NewUIHandler(defaultMode models.ResponseMode) (*UIHandler, error) {
	presets := services.ListPresets()
	templates := make(map[string]string, len(presets))
	for _, p := range presets {
		templates[p.Name] = p.Template
	}
	def, _ := services.GetPreset(services.DefaultPreset)

	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, indexPage{
		Title:     "Resume Insights and Career Recommendations",
		Presets:   presets,
		Templates: templates,
		Template:  def.Template,
		Mode:      defaultMode,
	})
	if err != nil {
		return nil, err
	}

	return &UIHandler{page: buf.Bytes()}, nil
}

func (h *UIHandler) HandleIndex(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(h.page)
}
