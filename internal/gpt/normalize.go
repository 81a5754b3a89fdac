package gpt

import (
	"encoding/json"
	"fmt"

	"github.com/hammamikhairi/cookclip/internal/domain"
)

// Models drift on field names between runs: "recipe_title" instead of
// "title", "ingredient" instead of "name", "instruction" instead of
// "text". normalizeFields maps the drift back onto the canonical schema
// and fills in any top-level list the model omitted, all before the
// typed unmarshal.

var (
	titleAliases    = []string{"recipe_title", "recipe_name", "name"}
	servingsAliases = []string{"serves", "servings_count", "number_of_servings"}

	ingredientNameAliases = []string{"ingredient", "ingredient_name", "item"}
	amountAliases         = []string{"quantity", "qty"}
	unitAliases           = []string{"measurement", "measure", "units"}
	prepAliases           = []string{"preparation"}

	stepTextAliases   = []string{"instruction", "description", "step_text"}
	stepNumberAliases = []string{"number", "step", "index"}
	stepQuoteAliases  = []string{"quote"}

	missingInfoAliases = []string{"missing", "missing_information"}
)

// decodeRecipe parses repaired JSON text into a Recipe, normalizing
// field-name drift and defaulting omitted lists on the way.
func decodeRecipe(jsonText string) (*domain.Recipe, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(jsonText), &m); err != nil {
		return nil, fmt.Errorf("parse recipe JSON: %w", err)
	}

	normalizeFields(m)

	canonical, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("re-marshal normalized recipe: %w", err)
	}

	var rec domain.Recipe
	if err := json.Unmarshal(canonical, &rec); err != nil {
		return nil, fmt.Errorf("decode recipe: %w", err)
	}
	if rec.Title == "" {
		return nil, fmt.Errorf("recipe has no title")
	}
	return &rec, nil
}

func normalizeFields(m map[string]any) {
	renameKey(m, "title", titleAliases)
	renameKey(m, "servings", servingsAliases)

	defaultList(m, "ingredients")
	defaultList(m, "steps")
	renameKey(m, "missing_info", missingInfoAliases)
	defaultList(m, "missing_info")
	defaultList(m, "notes")

	for _, item := range asList(m["ingredients"]) {
		ing, ok := item.(map[string]any)
		if !ok {
			continue
		}
		renameKey(ing, "name", ingredientNameAliases)
		renameKey(ing, "amount", amountAliases)
		renameKey(ing, "unit", unitAliases)
		renameKey(ing, "prep", prepAliases)
		normalizeEvidence(ing)
	}

	for _, item := range asList(m["steps"]) {
		step, ok := item.(map[string]any)
		if !ok {
			continue
		}
		renameKey(step, "text", stepTextAliases)
		renameKey(step, "step_number", stepNumberAliases)
		renameKey(step, "evidence_quote", stepQuoteAliases)
		// Some runs put a full evidence object on steps instead of a
		// bare quote.
		if _, ok := step["evidence_quote"]; !ok {
			if ev, ok := step["evidence"].(map[string]any); ok {
				if q, ok := ev["quote"].(string); ok {
					step["evidence_quote"] = q
				}
			}
		}
	}
}

// normalizeEvidence guarantees every ingredient carries an evidence
// object. A bare string becomes a zero-timestamp quote.
func normalizeEvidence(ing map[string]any) {
	switch ev := ing["evidence"].(type) {
	case map[string]any:
		if _, ok := ev["quote"]; !ok {
			ev["quote"] = ""
		}
	case string:
		ing["evidence"] = map[string]any{"start_sec": 0.0, "end_sec": 0.0, "quote": ev}
	default:
		ing["evidence"] = map[string]any{"start_sec": 0.0, "end_sec": 0.0, "quote": ""}
	}
}

// renameKey moves the first present alias onto the canonical key, unless
// the canonical key is already set.
func renameKey(m map[string]any, canonical string, aliases []string) {
	if v, ok := m[canonical]; ok && v != nil {
		return
	}
	for _, alias := range aliases {
		if v, ok := m[alias]; ok && v != nil {
			m[canonical] = v
			delete(m, alias)
			return
		}
	}
}

// defaultList replaces a missing or null list field with an empty list.
func defaultList(m map[string]any, key string) {
	if v, ok := m[key]; !ok || v == nil {
		m[key] = []any{}
	}
}

func asList(v any) []any {
	list, _ := v.([]any)
	return list
}
