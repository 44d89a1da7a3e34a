package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/resume-insights/internal/metrics"
	"alfredoptarigan/resume-insights/internal/models"
)

type PipelineService interface {
	Run(ctx context.Context, in RunInput) models.CompletionResult
}

// RunInput is one uploaded document plus the prompt it should be run with.
// An empty Template uses the default preset; an empty Mode means structured.
type RunInput struct {
	Filename string
	Data     []byte
	Template string
	Mode     models.ResponseMode
}

type PipelineOptions struct {
	// Schema may be nil, in which case {schema_string} is left untouched.
	Schema *Schema
	// AppendSchema adds the schema after the composed prompt when the
	// template has no {schema_string} token. Only structured runs get it.
	AppendSchema bool
	// Strict rejects templates without {extracted_text} before calling out.
	Strict bool
}

type pipelineService struct {
	pdfParser     PDFParserService
	client        CompletionClient
	normalizer    *Normalizer
	promptBuilder *PromptBuilder
	opts          PipelineOptions
}

func NewPipelineService(
	pdfParser PDFParserService,
	client CompletionClient,
	normalizer *Normalizer,
	opts PipelineOptions,
) PipelineService {
	return &pipelineService{
		pdfParser:     pdfParser,
		client:        client,
		normalizer:    normalizer,
		promptBuilder: NewPromptBuilder(),
		opts:          opts,
	}
}

func (p *pipelineService) Run(ctx context.Context, in RunInput) models.CompletionResult {
	if in.Mode == "" {
		in.Mode = models.ModeStructured
	}
	if in.Template == "" {
		preset, _ := GetPreset(DefaultPreset)
		in.Template = preset.Template
	}

	runID := uuid.New().String()
	start := time.Now()

	log.Info().
		Str("run_id", runID).
		Str("filename", in.Filename).
		Int("size", len(in.Data)).
		Str("mode", string(in.Mode)).
		Msg("pipeline.start")

	result := p.run(ctx, runID, in)

	outcome := "ok"
	if !result.IsOK() {
		outcome = string(result.Err.Kind)
		log.Warn().
			Str("run_id", runID).
			Str("kind", outcome).
			Int("status", result.StatusCode).
			Str("detail", result.Err.Detail).
			Int64("elapsed_ms", time.Since(start).Milliseconds()).
			Msg("pipeline.failed")
	} else {
		log.Info().
			Str("run_id", runID).
			Int64("elapsed_ms", time.Since(start).Milliseconds()).
			Msg("pipeline.done")
	}
	metrics.IncPipelineRun(string(in.Mode), outcome)

	return result
}

func (p *pipelineService) run(ctx context.Context, runID string, in RunInput) models.CompletionResult {
	// Step 1: type gate and text extraction
	if _, err := DetectDocumentType(in.Filename, in.Data); err != nil {
		return models.Fail(asPipelineError(err))
	}

	content, err := p.pdfParser.ExtractText(in.Data)
	if err != nil {
		return models.Fail(models.NewPipelineError(models.ErrProcessing, "Error processing PDF", err))
	}
	metrics.AddExtractedPages(len(content.Pages))

	if strings.TrimSpace(content.Text) == "" {
		return models.Fail(models.NewPipelineError(models.ErrEmptyExtraction,
			"No text could be extracted from the PDF.",
			errors.New("the document has no text layer")))
	}

	log.Debug().
		Str("run_id", runID).
		Int("pages", content.PageCount).
		Int("text_pages", len(content.Pages)).
		Int("chars", len(content.Text)).
		Msg("pipeline.extracted")

	// Step 2: prompt composition
	if p.opts.Strict {
		if err := p.promptBuilder.Validate(in.Template, []string{PlaceholderExtractedText}); err != nil {
			return models.Fail(asPipelineError(err))
		}
	}

	// Unresolved tokens are checked without the résumé text, which may
	// itself contain braces.
	if unresolved := p.promptBuilder.Unresolved(p.composePrompt(in, "")); len(unresolved) > 0 {
		log.Warn().Str("run_id", runID).Strs("tokens", unresolved).Msg("pipeline.prompt.unresolved_tokens")
	}
	prompt := p.composePrompt(in, content.Text)

	// Step 3: completion
	body, err := p.client.Complete(ctx, prompt)
	if err != nil {
		return models.Fail(asPipelineError(err))
	}

	// Step 4: normalization
	return p.normalizer.Normalize(body, in.Mode)
}

func (p *pipelineService) composePrompt(in RunInput, extractedText string) string {
	values := map[string]string{PlaceholderExtractedText: extractedText}
	schemaText := ""
	if p.opts.Schema != nil {
		schemaText = p.opts.Schema.Text
		values[PlaceholderSchema] = schemaText
	}

	prompt := p.promptBuilder.Compose(in.Template, values)

	hasToken := strings.Contains(in.Template, Token(PlaceholderSchema))
	if p.opts.AppendSchema && !hasToken && in.Mode == models.ModeStructured {
		prompt = p.promptBuilder.AppendSchema(prompt, schemaText)
	}
	return prompt
}

func asPipelineError(err error) *models.PipelineError {
	var pe *models.PipelineError
	if errors.As(err, &pe) {
		return pe
	}
	return models.NewPipelineError(models.ErrProcessing, "Error processing request", err)
}
