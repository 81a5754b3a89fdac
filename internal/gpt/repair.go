package gpt

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSON repair is deliberately heuristic, so it lives behind pure
// functions (text in, text or error out) with no knowledge of prompts or
// networks. Repair order: fence stripping, balanced-object extraction,
// missing-closer repair, trailing-comma removal. Already-valid input
// passes through unchanged.

// Repair turns raw model output into parseable JSON text, or fails with
// a description of what could not be fixed.
func Repair(raw string) (string, error) {
	s := StripCodeFence(raw)
	if obj, ok := extractJSONObject(s); ok {
		s = obj
	}
	if json.Valid([]byte(s)) {
		return s, nil
	}

	// Truncated output: more opens than closes. Append the exact missing
	// closing tokens in reverse nesting order.
	if closed := closeUnbalanced(s); json.Valid([]byte(closed)) {
		return closed, nil
	}

	// Last resort: drop trailing commas before closers, then re-close.
	stripped := stripTrailingCommas(s)
	if json.Valid([]byte(stripped)) {
		return stripped, nil
	}
	if closed := closeUnbalanced(stripped); json.Valid([]byte(closed)) {
		return closed, nil
	}

	return "", fmt.Errorf("unrepairable JSON (%d chars)", len(s))
}

// StripCodeFence removes ```json ... ``` wrappers that LLMs love to add.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// extractJSONObject locates the outermost balanced {...} object by
// brace-counting, tolerating leading/trailing prose. String literals are
// respected so braces inside quotes do not count. When the object never
// closes (truncated output), everything from the first brace onward is
// returned so the closer repair can finish the job.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	// Unbalanced: hand back the truncated tail.
	return s[start:], true
}

// closeUnbalanced appends the closing tokens a truncated JSON document is
// missing, in reverse nesting order. An unterminated string literal is
// closed first.
func closeUnbalanced(s string) string {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(s, " \t\n\r,"))
	if inString {
		b.WriteByte('"')
	}
	for i := len(stack) - 1; i >= 0; i-- {
		b.WriteByte(stack[i])
	}
	return b.String()
}

// stripTrailingCommas removes commas that directly precede a closing
// brace or bracket. String-aware, so commas inside quotes survive.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if c == ',' {
			// Look past whitespace; drop the comma when a closer follows.
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
