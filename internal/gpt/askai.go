package gpt

import (
	"context"
	"fmt"
	"strings"

	"github.com/hammamikhairi/cookclip/internal/domain"
	"github.com/hammamikhairi/cookclip/internal/logger"
)

const (
	// Transcript excerpt cap for the grounding context. Usually plenty
	// for answering questions about a single recipe.
	askTranscriptCap = 4000

	askTemperature = 0.3
	askMaxTokens   = 500

	// Fixed soft-failure reply when the model returns nothing.
	noAnswerMessage = "I couldn't generate an answer. Please try rephrasing your question."
)

// Answerer answers free-form questions about an extracted recipe,
// grounding answers in the recipe data plus a transcript excerpt.
type Answerer struct {
	model domain.RecipeModel
	log   *logger.Logger
}

// NewAnswerer creates an ask-AI engine over the given model.
func NewAnswerer(model domain.RecipeModel, log *logger.Logger) *Answerer {
	return &Answerer{model: model, log: log}
}

// Answer responds to a question about the recipe. An empty model reply is
// a soft failure: a fixed fallback message is returned, not an error.
func (a *Answerer) Answer(ctx context.Context, question string, rec *domain.Recipe, transcriptText string) (string, error) {
	prompt := askSystemPrompt + "\n\n" + a.buildContext(rec, transcriptText) + "\n\nQuestion: " + question

	reply, err := a.model.GenerateJSON(ctx, prompt, domain.GenConfig{
		Temperature: askTemperature,
		MaxTokens:   askMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("ask-ai: %w", err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		a.log.Warn("ask-ai: model returned empty answer for %q", question)
		return noAnswerMessage, nil
	}
	return reply, nil
}

// buildContext serializes the recipe's ingredient/step summary plus a
// length-capped transcript excerpt into the grounding block.
func (a *Answerer) buildContext(rec *domain.Recipe, transcriptText string) string {
	var b strings.Builder
	b.WriteString("Context:\n[Recipe]\n")
	fmt.Fprintf(&b, "Title: %s\n", rec.Title)
	if rec.Servings != nil {
		fmt.Fprintf(&b, "Servings: %d\n", *rec.Servings)
	} else {
		b.WriteString("Servings: Not specified\n")
	}

	b.WriteString("\nIngredients:\n")
	for _, ing := range rec.Ingredients {
		b.WriteString(formatIngredient(ing))
		b.WriteByte('\n')
	}

	b.WriteString("\nSteps:\n")
	for _, step := range rec.Steps {
		fmt.Fprintf(&b, "%d. %s\n", step.StepNumber, step.Text)
	}

	if transcriptText != "" {
		if len(transcriptText) > askTranscriptCap {
			a.log.Debug("ask-ai: truncating transcript from %d to %d chars", len(transcriptText), askTranscriptCap)
			transcriptText = cutAtRuneBoundary(transcriptText, askTranscriptCap) + "\n[... transcript truncated ...]"
		}
		b.WriteString("\n[Transcript]\n")
		b.WriteString(transcriptText)
		b.WriteByte('\n')
	}
	return b.String()
}

func formatIngredient(ing domain.Ingredient) string {
	var line string
	switch {
	case ing.Amount != nil && ing.Unit != nil:
		line = fmt.Sprintf("- %s: %g %s", ing.Name, *ing.Amount, *ing.Unit)
	case ing.SuggestedAmount != nil && ing.SuggestedUnit != nil:
		line = fmt.Sprintf("- %s: ~%g %s (AI-suggested)", ing.Name, *ing.SuggestedAmount, *ing.SuggestedUnit)
	default:
		line = fmt.Sprintf("- %s: (amount not specified)", ing.Name)
	}
	if ing.Prep != nil && *ing.Prep != "" {
		line += ", " + *ing.Prep
	}
	return line
}
