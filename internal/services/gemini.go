package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"alfredoptarigan/resume-insights/internal/metrics"
	"alfredoptarigan/resume-insights/internal/models"
)

type geminiCompletionClient struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

type GeminiOptions struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// BaseURL and HTTPClient override the Gemini API host, mainly for tests.
	BaseURL    string
	HTTPClient *http.Client
}

// NewGeminiCompletionClient answers through the Gemini API and reshapes the
// generated text into a chat-completions body, so the Normalizer handles
// both backends the same way.
func NewGeminiCompletionClient(ctx context.Context, opts GeminiOptions) (CompletionClient, error) {
	if opts.APIKey == "" {
		return nil, models.NewPipelineError(models.ErrConfigMissing, "missing GEMINI_API_KEY", nil)
	}
	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiCompletionClient{
		client:    client,
		modelName: opts.Model,
		timeout:   opts.Timeout,
	}, nil
}

func (g *geminiCompletionClient) Name() string { return "gemini" }

func (g *geminiCompletionClient) Complete(ctx context.Context, prompt string) (any, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	reqID := uuid.New().String()
	start := time.Now()

	temperature := float32(Temperature)
	topP := float32(TopP)
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		Temperature:       &temperature,
		TopP:              &topP,
		MaxOutputTokens:   MaxTokens,
	}

	log.Info().
		Str("req_id", reqID).
		Str("provider", g.Name()).
		Str("model", g.modelName).
		Int("prompt_length", len(prompt)).
		Msg("completion.request")

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		log.Error().
			Err(err).
			Str("req_id", reqID).
			Int64("elapsed_ms", time.Since(start).Milliseconds()).
			Msg("completion.send_error")

		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			metrics.ObserveCompletion(g.Name(), "upstream_error", time.Since(start))
			return nil, models.NewUpstreamError(apiErr.Code, apiErr.Message)
		}
		metrics.ObserveCompletion(g.Name(), "transport_error", time.Since(start))
		return nil, models.NewPipelineError(models.ErrTransport, "Error calling completion API", err)
	}

	metrics.ObserveCompletion(g.Name(), "ok", time.Since(start))

	if resp == nil || len(resp.Candidates) == 0 {
		log.Warn().Str("req_id", reqID).Msg("completion.no_candidates")
		return nil, nil
	}

	text := resp.Text()
	log.Info().
		Str("req_id", reqID).
		Int("bytes", len(text)).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("completion.response")

	return map[string]any{
		"model": g.modelName,
		"choices": []any{
			map[string]any{
				"index": float64(0),
				"message": map[string]any{
					"role":    "assistant",
					"content": text,
				},
			},
		},
	}, nil
}
