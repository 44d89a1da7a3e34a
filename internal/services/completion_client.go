package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/resume-insights/internal/config"
	"alfredoptarigan/resume-insights/internal/metrics"
	"alfredoptarigan/resume-insights/internal/models"
)

// Sampling parameters are fixed for every request.
const (
	MaxTokens   = 16000
	Temperature = 1.0
	TopP        = 0.25
)

// CompletionClient sends one composed prompt and returns the decoded
// response body, untouched, for the Normalizer.
type CompletionClient interface {
	Name() string
	Complete(ctx context.Context, prompt string) (any, error)
}

func NewCompletionRequest(prompt string) models.CompletionRequest {
	return models.CompletionRequest{
		Messages: []models.ChatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
		TopP:        TopP,
	}
}

type azureCompletionClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	timeout    time.Duration
}

// NewAzureCompletionClient targets an Azure OpenAI chat-completions
// deployment URL. A nil httpClient uses one without a client-side timeout;
// the timeout argument (when > 0) is applied per call through the context.
func NewAzureCompletionClient(endpoint, apiKey string, timeout time.Duration, httpClient *http.Client) CompletionClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &azureCompletionClient{
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     apiKey,
		timeout:    timeout,
	}
}

func (c *azureCompletionClient) Name() string { return "azure" }

func (c *azureCompletionClient) Complete(ctx context.Context, prompt string) (any, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqID := uuid.New().String()
	start := time.Now()

	bs, err := json.Marshal(NewCompletionRequest(prompt))
	if err != nil {
		return nil, fmt.Errorf("encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bs))
	if err != nil {
		return nil, models.NewPipelineError(models.ErrTransport, "Error calling completion API", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	log.Info().
		Str("req_id", reqID).
		Str("provider", c.Name()).
		Int("content_length", len(bs)).
		Msg("completion.request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveCompletion(c.Name(), "transport_error", time.Since(start))
		log.Error().
			Err(err).
			Str("req_id", reqID).
			Int64("elapsed_ms", time.Since(start).Milliseconds()).
			Msg("completion.send_error")
		return nil, models.NewPipelineError(models.ErrTransport, "Error calling completion API", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Warn().Err(err).Str("req_id", reqID).Msg("completion.response_body_close_error")
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveCompletion(c.Name(), "transport_error", time.Since(start))
		return nil, models.NewPipelineError(models.ErrTransport, "Error reading completion response", err)
	}

	log.Info().
		Str("req_id", reqID).
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("completion.response")

	if resp.StatusCode/100 != 2 {
		metrics.ObserveCompletion(c.Name(), "upstream_error", time.Since(start))
		return nil, models.NewUpstreamError(resp.StatusCode, string(raw))
	}

	metrics.ObserveCompletion(c.Name(), "ok", time.Since(start))

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, models.NewPipelineError(models.ErrMalformedResponse, "Error processing completion response", err)
	}

	return body, nil
}

// NewCompletionClientFromConfig builds the backend selected by
// COMPLETION_PROVIDER.
func NewCompletionClientFromConfig(ctx context.Context, cfg config.CompletionConfig) (CompletionClient, error) {
	switch cfg.Provider {
	case config.ProviderAzure:
		if cfg.Endpoint == "" || cfg.APIKey == "" {
			return nil, models.NewPipelineError(models.ErrConfigMissing,
				"missing AZURE_OPENAI_ENDPOINT or AZURE_OPENAI_API_KEY", nil)
		}
		return NewAzureCompletionClient(cfg.Endpoint, cfg.APIKey, cfg.Timeout, nil), nil
	case config.ProviderGemini:
		return NewGeminiCompletionClient(ctx, GeminiOptions{
			APIKey:  cfg.GeminiKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.Timeout,
		})
	default:
		return nil, models.NewPipelineError(models.ErrConfigMissing,
			fmt.Sprintf("unknown COMPLETION_PROVIDER %q", cfg.Provider), nil)
	}
}
