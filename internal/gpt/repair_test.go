package gpt

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRepairValidJSONUnchanged(t *testing.T) {
	inputs := []string{
		`{"title":"Pasta","servings":2}`,
		`{"a":{"b":[1,2,3]},"c":"braces } in { strings"}`,
		`{"nested":{"deeper":{"deepest":[{"x":1}]}}}`,
	}
	for _, in := range inputs {
		got, err := Repair(in)
		if err != nil {
			t.Fatalf("Repair(%q): %v", in, err)
		}
		if got != in {
			t.Errorf("Repair changed already-valid JSON:\n in: %s\nout: %s", in, got)
		}
	}
}

func TestRepairIdempotent(t *testing.T) {
	in := "```json\n" + `{"title":"Soup","steps":[{"text":"boil"}` + "\n```"
	once, err := Repair(in)
	if err != nil {
		t.Fatalf("first Repair: %v", err)
	}
	twice, err := Repair(once)
	if err != nil {
		t.Fatalf("second Repair: %v", err)
	}
	if once != twice {
		t.Errorf("Repair not idempotent:\nonce:  %s\ntwice: %s", once, twice)
	}
}

func TestRepairMissingClosers(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		missing string // exact closers expected, in order
	}{
		{"one object", `{"title":"Cake"`, "}"},
		{"array then object", `{"steps":[{"text":"mix"`, "}]}"},
		{"three deep", `{"a":{"b":{"c":1`, "}}}"},
		{"array of arrays", `{"m":[[1,2`, "]]}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Repair(tt.in)
			if err != nil {
				t.Fatalf("Repair: %v", err)
			}
			if !json.Valid([]byte(got)) {
				t.Fatalf("result not valid JSON: %s", got)
			}
			if !strings.HasSuffix(got, tt.missing) {
				t.Errorf("expected closers %q appended in reverse-nesting order, got %s", tt.missing, got)
			}
			if got[:len(tt.in)] != tt.in {
				t.Errorf("prefix changed: %s", got)
			}
		})
	}
}

func TestRepairStripsCodeFence(t *testing.T) {
	in := "```json\n{\"title\":\"Tacos\"}\n```"
	got, err := Repair(in)
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if got != `{"title":"Tacos"}` {
		t.Errorf("got %s", got)
	}
}

func TestRepairIgnoresSurroundingProse(t *testing.T) {
	in := `Sure! Here is your recipe:
{"title":"Curry","notes":[]}
Hope that helps!`
	got, err := Repair(in)
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if got != `{"title":"Curry","notes":[]}` {
		t.Errorf("got %s", got)
	}
}

func TestRepairTrailingCommas(t *testing.T) {
	in := `{"title":"Stew","notes":["a","b",],}`
	got, err := Repair(in)
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if !json.Valid([]byte(got)) {
		t.Fatalf("result not valid JSON: %s", got)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(got), &m); err != nil {
		t.Fatal(err)
	}
	if m["title"] != "Stew" {
		t.Errorf("title lost: %v", m)
	}
}

func TestRepairCommaInsideStringSurvives(t *testing.T) {
	in := `{"note":"add salt, then stir, }"}`
	got, err := Repair(in)
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if got != in {
		t.Errorf("string content mangled: %s", got)
	}
}

func TestRepairTruncatedString(t *testing.T) {
	in := `{"title":"Bread","notes":["knead the dou`
	got, err := Repair(in)
	if err != nil {
		t.Fatalf("Repair: %v", err)
	}
	if !json.Valid([]byte(got)) {
		t.Fatalf("result not valid JSON: %s", got)
	}
}

func TestRepairHopeless(t *testing.T) {
	if _, err := Repair("no json here at all"); err == nil {
		t.Fatal("expected error for input with no object")
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := StripCodeFence(tt.in); got != tt.want {
			t.Errorf("StripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
