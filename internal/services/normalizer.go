package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"alfredoptarigan/resume-insights/internal/models"
)

const processingResponseMsg = "Error processing completion response"

// Normalizer turns a decoded completion body into a CompletionResult. It
// holds no state besides its options and is safe for concurrent use.
type Normalizer struct {
	stripCodeFences bool
}

func NewNormalizer(stripCodeFences bool) *Normalizer {
	return &Normalizer{stripCodeFences: stripCodeFences}
}

func (n *Normalizer) Normalize(body any, mode models.ResponseMode) models.CompletionResult {
	if isEmptyBody(body) {
		return models.Fail(models.NewPipelineError(models.ErrEmptyResponse, processingResponseMsg,
			errors.New("no response data")))
	}

	content, err := messageContent(body)
	if err != nil {
		return models.Fail(models.NewPipelineError(models.ErrMalformedResponse, processingResponseMsg, err))
	}

	switch mode {
	case models.ModeRaw:
		return models.Ok(content)
	case models.ModeStructured:
		text := content
		if n.stripCodeFences {
			text = StripCodeFences(text)
		}
		var data any
		if err := json.Unmarshal([]byte(text), &data); err != nil {
			return models.Fail(models.NewPipelineError(models.ErrJSONParse,
				"Error parsing generated text into JSON", err))
		}
		if data == nil {
			return models.Fail(models.NewPipelineError(models.ErrEmptyResponse, processingResponseMsg,
				errors.New("generated JSON is null")))
		}
		return models.Ok(data)
	default:
		return models.Fail(models.NewPipelineError(models.ErrProcessing, processingResponseMsg,
			fmt.Errorf("unknown response mode %q", mode)))
	}
}

// NormalizeBytes decodes a raw completion body before normalizing it.
func (n *Normalizer) NormalizeBytes(raw []byte, mode models.ResponseMode) models.CompletionResult {
	if len(bytes.TrimSpace(raw)) == 0 {
		return n.Normalize(nil, mode)
	}
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return models.Fail(models.NewPipelineError(models.ErrMalformedResponse, processingResponseMsg, err))
	}
	return n.Normalize(body, mode)
}

func isEmptyBody(body any) bool {
	switch v := body.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

// messageContent reads choices[0].message.content.
func messageContent(body any) (string, error) {
	root, ok := body.(map[string]any)
	if !ok {
		return "", fmt.Errorf("unexpected API response format: body is %T", body)
	}
	choices, ok := root["choices"].([]any)
	if !ok {
		return "", errors.New("unexpected API response format: missing choices")
	}
	if len(choices) == 0 {
		return "", errors.New("unexpected API response format: empty choices")
	}
	first, ok := choices[0].(map[string]any)
	if !ok {
		return "", errors.New("unexpected API response format: choices[0] is not an object")
	}
	message, ok := first["message"].(map[string]any)
	if !ok {
		return "", errors.New("unexpected API response format: missing message")
	}
	content, ok := message["content"].(string)
	if !ok {
		return "", errors.New("unexpected API response format: message.content is not a string")
	}
	return content, nil
}

// StripCodeFences removes a surrounding ```json ... ``` markdown fence.
func StripCodeFences(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	} else {
		return clean
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")

	return strings.TrimSpace(clean)
}
