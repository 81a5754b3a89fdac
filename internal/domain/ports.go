package domain

import "context"

// CaptionSource fetches platform-provided subtitles for a video.
// A (empty, nil, nil) return means "no captions" — not an error.
type CaptionSource interface {
	FetchCaptions(ctx context.Context, url string) (string, []Segment, error)
}

// MetadataSource fetches descriptive video metadata. A nil result with a
// nil error means the video has no usable metadata.
type MetadataSource interface {
	FetchMetadata(ctx context.Context, url string) (*VideoMetadata, error)
}

// AudioTranscriber downloads a video's audio and runs speech-to-text on it.
type AudioTranscriber interface {
	TranscribeVideo(ctx context.Context, url string) (string, error)
}

// RecipeModel is the single capability the extraction and ask-AI engines
// need from an LLM backend: prompt in, raw text out. Implementations must
// be assumed to occasionally return malformed JSON, wrong field names, or
// truncated output.
type RecipeModel interface {
	GenerateJSON(ctx context.Context, prompt string, cfg GenConfig) (string, error)
}

// GenConfig holds per-call generation parameters.
type GenConfig struct {
	Model       string  // optional model hint, backend default if empty
	Temperature float64
	MaxTokens   int
	JSONMode    bool // request structured output where supported
}

// RecipeStore persists extracted recipes. The pipeline only produces
// validated SavedRecipe values for it; storage design lives elsewhere.
type RecipeStore interface {
	Save(ctx context.Context, rec *SavedRecipe) error
	List(ctx context.Context, owner string) ([]*SavedRecipe, error)
	Get(ctx context.Context, id string) (*SavedRecipe, error)
	Delete(ctx context.Context, id string) error
	FindByURL(ctx context.Context, owner, url string) (*SavedRecipe, error)
}
