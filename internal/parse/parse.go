// Package parse normalizes provider replies that were asked to be
// JSON-shaped. Providers are not required to honor structured-output
// instructions, so decoding failure is a recovery path here, never an
// error surfaced to callers.
package parse

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Kind identifies the generation task whose response is being parsed.
// It selects which keys are required and what their fallbacks are.
type Kind string

const (
	KindContent      Kind = "content"
	KindOutline      Kind = "outline"
	KindOptimization Kind = "optimization"
	KindAnalysis     Kind = "analysis"
)

// Content is a parsed structured response. Every key recognized for the
// task kind is guaranteed present, holding either the provider-supplied
// value or a deterministic fallback.
type Content map[string]any

// Structured decodes raw as JSON after stripping any markdown code fence.
// On decode failure it returns the per-kind fallback with the raw text
// preserved in the content-equivalent field. It never returns an error.
func Structured(raw string, kind Kind) Content {
	stripped := StripCodeFence(raw)

	var decoded map[string]any
	if err := json.Unmarshal([]byte(stripped), &decoded); err != nil || decoded == nil {
		slog.Debug("structured decode failed, using fallback", "kind", kind)
		return fallback(raw, kind)
	}

	// Fill any required key the provider omitted so callers never see a
	// missing key.
	out := Content(decoded)
	for key, val := range fallback(raw, kind) {
		if _, ok := out[key]; !ok {
			out[key] = val
		}
	}
	return out
}

// StripCodeFence removes a surrounding markdown code fence, with or
// without a language tag. Providers add these around JSON routinely.
func StripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		first := strings.TrimSpace(trimmed[:idx])
		if first == "" || isFenceTag(first) {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func isFenceTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func fallback(raw string, kind Kind) Content {
	switch kind {
	case KindOutline:
		return Content{
			"structure": []any{
				map[string]any{"title": "Main content", "description": "Outline body", "subsections": []any{}},
			},
			"estimated_length": "2000 words",
			"key_points":       []any{},
			"resources":        []any{},
		}
	case KindOptimization:
		return Content{
			"content":           raw,
			"improvements":      []any{},
			"seo_score":         float64(8),
			"readability_score": float64(8),
		}
	case KindAnalysis:
		return Content{
			"seo_score":            float64(7),
			"readability_score":    float64(7),
			"engagement_potential": float64(7),
			"suggestions":          []any{},
		}
	default:
		return Content{
			"title":   "Generated post",
			"summary": "",
			"content": raw,
		}
	}
}

// String returns the string value at key, or the empty string.
func (c Content) String(key string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return ""
}

// Strings returns the list of strings at key, skipping non-string items.
func (c Content) Strings(key string) []string {
	list, ok := c[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Int returns the numeric value at key rounded down, or fallback when the
// key holds no number. JSON numbers decode as float64.
func (c Content) Int(key string, fallback int) int {
	switch v := c[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}
