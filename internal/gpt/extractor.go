package gpt

import (
	"context"

	"github.com/hammamikhairi/cookclip/internal/domain"
	"github.com/hammamikhairi/cookclip/internal/logger"
)

const (
	// Transcripts longer than this are cut before prompting; a latency
	// and cost control, not a correctness requirement.
	defaultMaxPromptChars = 12000
	truncationMarker      = "\n[... transcript truncated ...]"

	defaultMaxRetries = 3
	extractMaxTokens  = 2048
	// Near-deterministic sampling for structured extraction.
	extractTemperature = 0.1
)

// ExtractorOption configures the Extractor.
type ExtractorOption func(*Extractor)

// WithMaxRetries sets the retry budget per extraction.
func WithMaxRetries(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.maxRetries = n
		}
	}
}

// WithMaxPromptChars sets the transcript character budget.
func WithMaxPromptChars(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.maxChars = n
		}
	}
}

// Extractor turns transcripts (or bare metadata) into validated recipes.
// One model handle is reused across every attempt.
type Extractor struct {
	model      domain.RecipeModel
	maxRetries int
	maxChars   int
	log        *logger.Logger
}

// NewExtractor creates a recipe extraction engine over the given model.
func NewExtractor(model domain.RecipeModel, log *logger.Logger, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		model:      model,
		maxRetries: defaultMaxRetries,
		maxChars:   defaultMaxPromptChars,
		log:        log,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Extract produces a validated recipe from a transcript. It retries up
// to the configured bound and fails with *domain.ExtractionError carrying
// the last underlying error.
func (e *Extractor) Extract(ctx context.Context, transcriptText, modelHint string) (*domain.Recipe, error) {
	prompt := buildExtractionPrompt(e.truncateTranscript(transcriptText))
	return e.run(ctx, prompt, modelHint)
}

// ExtractFromMetadata produces a recipe from only a video title and
// description: the no-transcript path. The prompt forces every
// ingredient to be inferred with zero ground-truth timestamps.
func (e *Extractor) ExtractFromMetadata(ctx context.Context, title, description string) (*domain.Recipe, error) {
	prompt := buildMetadataPrompt(title, description)
	return e.run(ctx, prompt, "")
}

func (e *Extractor) run(ctx context.Context, prompt, modelHint string) (*domain.Recipe, error) {
	cfg := domain.GenConfig{
		Model:       modelHint,
		Temperature: extractTemperature,
		MaxTokens:   extractMaxTokens,
		JSONMode:    true,
	}

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		attempts = attempt
		rec, err := e.attempt(ctx, prompt, cfg)
		if err == nil {
			e.log.Info("extract: succeeded on attempt %d/%d (%d ingredients, %d steps)",
				attempt, e.maxRetries, len(rec.Ingredients), len(rec.Steps))
			return rec, nil
		}
		lastErr = err
		e.log.Warn("extract: attempt %d/%d failed: %v", attempt, e.maxRetries, err)

		if ctx.Err() != nil {
			break
		}
	}
	return nil, &domain.ExtractionError{Attempts: attempts, LastErr: lastErr}
}

func (e *Extractor) attempt(ctx context.Context, prompt string, cfg domain.GenConfig) (*domain.Recipe, error) {
	raw, err := e.model.GenerateJSON(ctx, prompt, cfg)
	if err != nil {
		return nil, err
	}

	jsonText, err := Repair(raw)
	if err != nil {
		return nil, err
	}

	rec, err := decodeRecipe(jsonText)
	if err != nil {
		return nil, err
	}

	validateRecipe(rec)
	return rec, nil
}

func (e *Extractor) truncateTranscript(text string) string {
	if len(text) <= e.maxChars {
		return text
	}
	e.log.Info("extract: truncating transcript from %d to %d chars", len(text), e.maxChars)
	return cutAtRuneBoundary(text, e.maxChars) + truncationMarker
}
