package gpt

import "testing"

func TestDecodeRecipeCanonical(t *testing.T) {
	rec, err := decodeRecipe(`{
		"title": "Garlic Butter Pasta",
		"servings": 2,
		"ingredients": [
			{"name": "flour", "amount": 2, "unit": "cups", "source": "explicit",
			 "evidence": {"start_sec": 1, "end_sec": 3, "quote": "two cups of flour"}}
		],
		"steps": [
			{"step_number": 1, "text": "Boil the pasta.", "start_sec": 0, "end_sec": 10, "evidence_quote": "boil it"}
		],
		"missing_info": [],
		"notes": []
	}`)
	if err != nil {
		t.Fatalf("decodeRecipe: %v", err)
	}
	if rec.Title != "Garlic Butter Pasta" {
		t.Errorf("title = %q", rec.Title)
	}
	if rec.Servings == nil || *rec.Servings != 2 {
		t.Errorf("servings = %v", rec.Servings)
	}
	if len(rec.Ingredients) != 1 || rec.Ingredients[0].Name != "flour" {
		t.Errorf("ingredients = %+v", rec.Ingredients)
	}
}

func TestDecodeRecipeFieldDrift(t *testing.T) {
	rec, err := decodeRecipe(`{
		"recipe_title": "Drifted Soup",
		"serves": 4,
		"ingredients": [
			{"ingredient": "onion", "quantity": 1, "measurement": "piece", "source": "explicit", "evidence": "chop one onion"}
		],
		"steps": [
			{"number": 1, "instruction": "Chop the onion.", "start_sec": 0, "end_sec": 5, "quote": "chop it"}
		]
	}`)
	if err != nil {
		t.Fatalf("decodeRecipe: %v", err)
	}
	if rec.Title != "Drifted Soup" {
		t.Errorf("title alias not normalized: %q", rec.Title)
	}
	if rec.Servings == nil || *rec.Servings != 4 {
		t.Errorf("serves alias not normalized: %v", rec.Servings)
	}

	ing := rec.Ingredients[0]
	if ing.Name != "onion" {
		t.Errorf("ingredient name alias not normalized: %q", ing.Name)
	}
	if ing.Amount == nil || *ing.Amount != 1 {
		t.Errorf("quantity alias not normalized: %v", ing.Amount)
	}
	if ing.Unit == nil || *ing.Unit != "piece" {
		t.Errorf("measurement alias not normalized: %v", ing.Unit)
	}
	if ing.Evidence.Quote != "chop one onion" {
		t.Errorf("string evidence not wrapped: %+v", ing.Evidence)
	}

	step := rec.Steps[0]
	if step.StepNumber != 1 {
		t.Errorf("step number alias not normalized: %d", step.StepNumber)
	}
	if step.Text != "Chop the onion." {
		t.Errorf("instruction alias not normalized: %q", step.Text)
	}
	if step.EvidenceQuote != "chop it" {
		t.Errorf("quote alias not normalized: %q", step.EvidenceQuote)
	}
}

func TestDecodeRecipeDefaultsOmittedLists(t *testing.T) {
	rec, err := decodeRecipe(`{"title": "Bare Minimum"}`)
	if err != nil {
		t.Fatalf("decodeRecipe: %v", err)
	}
	if rec.Ingredients == nil || rec.Steps == nil || rec.MissingInfo == nil || rec.Notes == nil {
		t.Errorf("omitted lists not defaulted: %+v", rec)
	}
	if len(rec.Ingredients)+len(rec.Steps)+len(rec.MissingInfo)+len(rec.Notes) != 0 {
		t.Errorf("defaults should be empty: %+v", rec)
	}
}

func TestDecodeRecipeStepEvidenceObject(t *testing.T) {
	rec, err := decodeRecipe(`{
		"title": "Evidence Object",
		"steps": [
			{"step_number": 1, "text": "Stir.", "start_sec": 0, "end_sec": 1,
			 "evidence": {"start_sec": 0, "end_sec": 1, "quote": "keep stirring"}}
		]
	}`)
	if err != nil {
		t.Fatalf("decodeRecipe: %v", err)
	}
	if rec.Steps[0].EvidenceQuote != "keep stirring" {
		t.Errorf("step evidence object not flattened: %+v", rec.Steps[0])
	}
}

func TestDecodeRecipeNoTitle(t *testing.T) {
	if _, err := decodeRecipe(`{"ingredients": []}`); err == nil {
		t.Fatal("expected error for recipe without title")
	}
}
