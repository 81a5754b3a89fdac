package gpt

import (
	"strings"
	"unicode/utf8"

	"github.com/hammamikhairi/cookclip/internal/domain"
)

const maxQuoteLen = 200

// validateRecipe enforces the recipe invariants in place. Violations are
// corrected, never silently dropped and never treated as hard failures:
//
//   - an inferred ingredient never keeps a concrete amount/unit; the
//     values are demoted to the suggested fields and cleared
//   - an explicit ingredient with neither amount nor unit is downgraded
//     to inferred
//   - end_sec is clamped to be >= start_sec on evidence and steps
//   - evidence quotes are capped at 200 chars
//   - step numbers are forced positive and sequential when broken
func validateRecipe(rec *domain.Recipe) {
	for i := range rec.Ingredients {
		validateIngredient(&rec.Ingredients[i])
	}

	renumber := false
	for i := range rec.Steps {
		step := &rec.Steps[i]
		if step.EndSec < step.StartSec {
			step.EndSec = step.StartSec
		}
		step.EvidenceQuote = capQuote(step.EvidenceQuote)
		if step.StepNumber <= 0 {
			renumber = true
		}
	}
	if renumber {
		for i := range rec.Steps {
			rec.Steps[i].StepNumber = i + 1
		}
	}

	if rec.MissingInfo == nil {
		rec.MissingInfo = []string{}
	}
	if rec.Notes == nil {
		rec.Notes = []string{}
	}
}

func validateIngredient(ing *domain.Ingredient) {
	// Anything that is not explicitly "explicit" is treated as inferred.
	if strings.ToLower(strings.TrimSpace(ing.Source)) == domain.IngredientExplicit {
		ing.Source = domain.IngredientExplicit
	} else {
		ing.Source = domain.IngredientInferred
	}

	// Confidence downgrade: explicit with no amount and no unit carries
	// no evidence-backed quantity at all.
	if ing.Source == domain.IngredientExplicit && ing.Amount == nil && ing.Unit == nil {
		ing.Source = domain.IngredientInferred
	}

	// An inferred ingredient must never carry a concrete amount/unit as
	// if it came from the video. Demote to suggested, then clear.
	if ing.Source == domain.IngredientInferred {
		if ing.Amount != nil {
			if ing.SuggestedAmount == nil {
				ing.SuggestedAmount = ing.Amount
			}
			ing.Amount = nil
		}
		if ing.Unit != nil {
			if ing.SuggestedUnit == nil {
				ing.SuggestedUnit = ing.Unit
			}
			ing.Unit = nil
		}
	}

	if ing.Evidence.EndSec < ing.Evidence.StartSec {
		ing.Evidence.EndSec = ing.Evidence.StartSec
	}
	ing.Evidence.Quote = capQuote(ing.Evidence.Quote)
}

func capQuote(q string) string {
	return cutAtRuneBoundary(q, maxQuoteLen)
}

// cutAtRuneBoundary truncates s to at most n bytes without splitting a
// multi-byte rune at the cut.
func cutAtRuneBoundary(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
