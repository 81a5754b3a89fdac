// Package display renders extracted recipes for the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/cookclip/internal/domain"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#fde68a"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#a5b4fc"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	inferredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	noteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#a1a1aa"))
)

// RenderRecipe renders a recipe (plus optional video metadata and
// transcript provenance) as styled terminal text.
func RenderRecipe(rec *domain.Recipe, meta *domain.VideoMetadata, source domain.TranscriptSource) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(rec.Title))
	b.WriteByte('\n')

	if meta != nil {
		line := meta.Uploader
		if meta.UploadDate != "" {
			line += " · " + meta.UploadDate
		}
		b.WriteString(metaStyle.Render(line))
		b.WriteByte('\n')
	}
	b.WriteString(metaStyle.Render(fmt.Sprintf("transcript source: %s", source)))
	b.WriteString("\n\n")

	if rec.Servings != nil {
		fmt.Fprintf(&b, "Servings: %d\n\n", *rec.Servings)
	}

	b.WriteString(sectionStyle.Render("Ingredients"))
	b.WriteByte('\n')
	for _, ing := range rec.Ingredients {
		b.WriteString(renderIngredient(ing))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(sectionStyle.Render("Steps"))
	b.WriteByte('\n')
	for _, step := range rec.Steps {
		fmt.Fprintf(&b, "%2d. %s\n", step.StepNumber, step.Text)
	}

	if len(rec.MissingInfo) > 0 {
		b.WriteByte('\n')
		b.WriteString(sectionStyle.Render("Missing info"))
		b.WriteByte('\n')
		for _, m := range rec.MissingInfo {
			b.WriteString(noteStyle.Render("- " + m))
			b.WriteByte('\n')
		}
	}
	if len(rec.Notes) > 0 {
		b.WriteByte('\n')
		b.WriteString(sectionStyle.Render("Notes"))
		b.WriteByte('\n')
		for _, n := range rec.Notes {
			b.WriteString(noteStyle.Render("- " + n))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderIngredient(ing domain.Ingredient) string {
	var line string
	switch {
	case ing.Amount != nil && ing.Unit != nil:
		line = fmt.Sprintf("  - %g %s %s", *ing.Amount, *ing.Unit, ing.Name)
	case ing.SuggestedAmount != nil && ing.SuggestedUnit != nil:
		line = fmt.Sprintf("  - %s %s", ing.Name,
			inferredStyle.Render(fmt.Sprintf("(~%g %s, suggested)", *ing.SuggestedAmount, *ing.SuggestedUnit)))
	default:
		line = fmt.Sprintf("  - %s %s", ing.Name, inferredStyle.Render("(amount not specified)"))
	}
	if ing.Prep != nil && *ing.Prep != "" {
		line += ", " + *ing.Prep
	}
	return line
}
