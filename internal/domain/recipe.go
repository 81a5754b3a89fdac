// Package domain defines the core types and interfaces for the recipe
// extraction pipeline. All other packages depend on domain; domain depends
// on nothing.
package domain

import "time"

// TranscriptSource tags which acquisition path produced a transcript.
type TranscriptSource string

const (
	// SourceCaptions means platform-provided subtitles.
	SourceCaptions TranscriptSource = "captions"
	// SourceAudio means speech-to-text over downloaded audio.
	SourceAudio TranscriptSource = "audio"
	// SourceMetadata means a title/description pseudo-transcript.
	SourceMetadata TranscriptSource = "metadata"
)

// Segment is a single timed caption chunk.
type Segment struct {
	Text     string  `json:"text"`
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
}

// Transcript is the result of transcript acquisition. Immutable once
// produced; cached by canonical video id.
type Transcript struct {
	VideoID  string           `json:"video_id"`
	Text     string           `json:"text"`
	Segments []Segment        `json:"segments,omitempty"`
	Source   TranscriptSource `json:"source"`
}

// VideoMetadata holds the descriptive fields yt-dlp reports for a video.
// A metadata result with an empty Title is useless downstream: a recipe
// cannot be generated from no information.
type VideoMetadata struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	Uploader     string `json:"uploader"`
	UploadDate   string `json:"upload_date,omitempty"`
	DurationSec  int    `json:"duration_sec,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Ingredient source values.
const (
	IngredientExplicit = "explicit"
	IngredientInferred = "inferred"
)

// Evidence is a timestamped transcript excerpt backing an extracted fact.
type Evidence struct {
	StartSec float64 `json:"start_sec"`
	EndSec   float64 `json:"end_sec"`
	Quote    string  `json:"quote"`
}

// Ingredient is a single recipe ingredient. Amount/Unit are only set when
// the creator explicitly stated them; model guesses live in the
// Suggested* fields instead.
type Ingredient struct {
	Name            string   `json:"name"`
	Amount          *float64 `json:"amount"`
	Unit            *string  `json:"unit"`
	Prep            *string  `json:"prep,omitempty"`
	Source          string   `json:"source"`
	Evidence        Evidence `json:"evidence"`
	SuggestedAmount *float64 `json:"suggested_amount,omitempty"`
	SuggestedUnit   *string  `json:"suggested_unit,omitempty"`
}

// Step is a single instruction in the extracted recipe.
type Step struct {
	StepNumber    int     `json:"step_number"`
	Text          string  `json:"text"`
	StartSec      float64 `json:"start_sec"`
	EndSec        float64 `json:"end_sec"`
	EvidenceQuote string  `json:"evidence_quote"`
	SuggestedText *string `json:"suggested_text,omitempty"`
}

// Recipe is the validated structured output of the extraction engine.
type Recipe struct {
	Title       string       `json:"title"`
	Servings    *int         `json:"servings"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	MissingInfo []string     `json:"missing_info"`
	Notes       []string     `json:"notes"`
}

// SavedRecipe is a persisted recipe with its provenance, as handed to the
// persistence port.
type SavedRecipe struct {
	ID             string      `json:"id"`
	Owner          string      `json:"owner"`
	SourceURL      string      `json:"source_url"`
	SourcePlatform string      `json:"source_platform"`
	Recipe         Recipe      `json:"recipe"`
	Transcript     *Transcript `json:"transcript,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}
