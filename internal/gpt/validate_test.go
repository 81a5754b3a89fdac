package gpt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/hammamikhairi/cookclip/internal/domain"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func TestValidateInferredNeverKeepsAmounts(t *testing.T) {
	rec := &domain.Recipe{
		Title: "x",
		Ingredients: []domain.Ingredient{
			{Name: "salt", Source: domain.IngredientInferred, Amount: fptr(1), Unit: sptr("tsp")},
			{Name: "pepper", Source: domain.IngredientInferred},
		},
	}
	validateRecipe(rec)

	for _, ing := range rec.Ingredients {
		if ing.Source != domain.IngredientInferred {
			t.Errorf("%s: source = %q", ing.Name, ing.Source)
		}
		if ing.Amount != nil || ing.Unit != nil {
			t.Errorf("%s: inferred ingredient kept amount/unit: %+v", ing.Name, ing)
		}
	}

	// The concrete values are demoted to suggestions, not dropped.
	salt := rec.Ingredients[0]
	if salt.SuggestedAmount == nil || *salt.SuggestedAmount != 1 {
		t.Errorf("salt amount not demoted to suggested: %+v", salt)
	}
	if salt.SuggestedUnit == nil || *salt.SuggestedUnit != "tsp" {
		t.Errorf("salt unit not demoted to suggested: %+v", salt)
	}
}

func TestValidateDemotionKeepsExistingSuggestions(t *testing.T) {
	rec := &domain.Recipe{
		Title: "x",
		Ingredients: []domain.Ingredient{
			{Name: "salt", Source: domain.IngredientInferred, Amount: fptr(9), SuggestedAmount: fptr(1)},
		},
	}
	validateRecipe(rec)
	if *rec.Ingredients[0].SuggestedAmount != 1 {
		t.Errorf("existing suggestion overwritten: %+v", rec.Ingredients[0])
	}
}

func TestValidateExplicitWithoutQuantitiesDowngraded(t *testing.T) {
	rec := &domain.Recipe{
		Title: "x",
		Ingredients: []domain.Ingredient{
			{Name: "salt", Source: domain.IngredientExplicit},
			{Name: "flour", Source: domain.IngredientExplicit, Amount: fptr(2), Unit: sptr("cups")},
			{Name: "oil", Source: domain.IngredientExplicit, Unit: sptr("splash")},
		},
	}
	validateRecipe(rec)

	if rec.Ingredients[0].Source != domain.IngredientInferred {
		t.Errorf("explicit with no amount and no unit must become inferred: %+v", rec.Ingredients[0])
	}
	if rec.Ingredients[1].Source != domain.IngredientExplicit {
		t.Errorf("explicit with amount+unit must stay explicit: %+v", rec.Ingredients[1])
	}
	if rec.Ingredients[2].Source != domain.IngredientExplicit {
		t.Errorf("explicit with a unit alone must stay explicit: %+v", rec.Ingredients[2])
	}
}

func TestValidateUnknownSourceTreatedAsInferred(t *testing.T) {
	rec := &domain.Recipe{
		Title:       "x",
		Ingredients: []domain.Ingredient{{Name: "salt", Source: "EXPLICIT "}, {Name: "x", Source: "guessed"}},
	}
	rec.Ingredients[0].Amount = fptr(1)
	validateRecipe(rec)
	if rec.Ingredients[0].Source != domain.IngredientExplicit {
		t.Errorf("case/space variant of explicit not recognized: %q", rec.Ingredients[0].Source)
	}
	if rec.Ingredients[1].Source != domain.IngredientInferred {
		t.Errorf("unknown source = %q, want inferred", rec.Ingredients[1].Source)
	}
}

func TestValidateClampsTimestamps(t *testing.T) {
	rec := &domain.Recipe{
		Title: "x",
		Ingredients: []domain.Ingredient{
			{Name: "a", Source: domain.IngredientInferred, Evidence: domain.Evidence{StartSec: 10, EndSec: 5}},
		},
		Steps: []domain.Step{
			{StepNumber: 1, Text: "s", StartSec: 30, EndSec: 20},
			{StepNumber: 2, Text: "t", StartSec: 5, EndSec: 50},
		},
	}
	validateRecipe(rec)

	if ev := rec.Ingredients[0].Evidence; ev.EndSec < ev.StartSec {
		t.Errorf("evidence not clamped: %+v", ev)
	}
	if rec.Steps[0].EndSec != 30 {
		t.Errorf("step end not clamped to start: %+v", rec.Steps[0])
	}
	if rec.Steps[1].EndSec != 50 {
		t.Errorf("valid step mutated: %+v", rec.Steps[1])
	}
}

func TestValidateCapsQuotes(t *testing.T) {
	long := strings.Repeat("q", 500)
	rec := &domain.Recipe{
		Title: "x",
		Ingredients: []domain.Ingredient{
			{Name: "a", Source: domain.IngredientInferred, Evidence: domain.Evidence{Quote: long}},
		},
		Steps: []domain.Step{{StepNumber: 1, Text: "s", EvidenceQuote: long}},
	}
	validateRecipe(rec)
	if len(rec.Ingredients[0].Evidence.Quote) != 200 {
		t.Errorf("evidence quote len = %d", len(rec.Ingredients[0].Evidence.Quote))
	}
	if len(rec.Steps[0].EvidenceQuote) != 200 {
		t.Errorf("step quote len = %d", len(rec.Steps[0].EvidenceQuote))
	}
}

func TestValidateQuoteCapKeepsValidUTF8(t *testing.T) {
	// 3-byte runes, so a naive byte slice at 200 would split one.
	long := strings.Repeat("日", 100)
	rec := &domain.Recipe{
		Title: "x",
		Ingredients: []domain.Ingredient{
			{Name: "a", Source: domain.IngredientInferred, Evidence: domain.Evidence{Quote: long}},
		},
	}
	validateRecipe(rec)

	got := rec.Ingredients[0].Evidence.Quote
	if len(got) > maxQuoteLen {
		t.Errorf("quote len = %d, want <= %d", len(got), maxQuoteLen)
	}
	if !utf8.ValidString(got) {
		t.Errorf("quote cap produced invalid UTF-8: %q", got)
	}
	if len(got) != 198 {
		t.Errorf("quote len = %d, want 198 (backed off to a rune boundary)", len(got))
	}
}

func TestValidateRenumbersBrokenSteps(t *testing.T) {
	rec := &domain.Recipe{
		Title: "x",
		Steps: []domain.Step{
			{StepNumber: 0, Text: "a"},
			{StepNumber: -3, Text: "b"},
			{StepNumber: 7, Text: "c"},
		},
	}
	validateRecipe(rec)
	for i, step := range rec.Steps {
		if step.StepNumber != i+1 {
			t.Errorf("step %d number = %d, want %d", i, step.StepNumber, i+1)
		}
	}
}
