package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"alfredoptarigan/resume-insights/internal/models"
)

// Schema is the output shape handed to the model. It is read once at
// startup and never modified afterwards.
type Schema struct {
	Path  string
	Value any
	// Text is the 4-space indented rendering substituted into prompts.
	Text string
}

func LoadSchema(path string) (*Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.NewPipelineError(models.ErrConfigMissing, "Schema file not found.", err)
		}
		return nil, models.NewPipelineError(models.ErrConfigMissing, "Schema file could not be read.", err)
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, models.NewPipelineError(models.ErrJSONParse, "Error reading schema JSON", err)
	}

	text, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to render schema: %w", err)
	}

	return &Schema{
		Path:  path,
		Value: value,
		Text:  string(text),
	}, nil
}
