// Package pipeline composes prompt building, provider dispatch, and
// response parsing for each supported generation task, then enriches the
// result with locally computed metrics.
package pipeline

import (
	"context"
	"log/slog"

	"blogsmith/internal/ai"
	"blogsmith/internal/parse"
	"blogsmith/internal/prompt"
)

const (
	defaultMaxTokens   = 4000
	defaultTemperature = 0.7
	lowTemperature     = 0.3
)

// TextGenerator is the slice of the orchestrator the pipeline needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt, providerName string, maxTokens int, temperature float64) (ai.TextResult, error)
}

// Pipeline drives the generation tasks against a text generator. Provider
// failures propagate unchanged; only parse failures are recovered, inside
// the parser.
type Pipeline struct {
	gen TextGenerator
}

func New(gen TextGenerator) *Pipeline {
	return &Pipeline{gen: gen}
}

// DraftRequest carries the inputs for draft generation.
type DraftRequest struct {
	Topic       string
	Outline     string
	Style       string
	Length      string
	IncludeCode bool
	Provider    string
}

// Draft is a generated post with derived metrics attached.
type Draft struct {
	Title            string            `json:"title"`
	Summary          string            `json:"summary"`
	Content          string            `json:"content"`
	WordCount        int               `json:"word_count"`
	ReadingTime      int               `json:"reading_time"`
	ImageSuggestions []ImageSuggestion `json:"image_suggestions"`
}

// GenerateDraft produces a full post draft for a topic.
func (p *Pipeline) GenerateDraft(ctx context.Context, req DraftRequest) (Draft, error) {
	rendered := prompt.Content(prompt.ContentParams{
		Topic:       req.Topic,
		Outline:     req.Outline,
		Style:       req.Style,
		Length:      req.Length,
		IncludeCode: req.IncludeCode,
	})
	res, err := p.gen.GenerateText(ctx, rendered, req.Provider, defaultMaxTokens, defaultTemperature)
	if err != nil {
		return Draft{}, err
	}
	data := parse.Structured(res.Content, parse.KindContent)
	content := data.String("content")
	draft := Draft{
		Title:            data.String("title"),
		Summary:          data.String("summary"),
		Content:          content,
		WordCount:        WordCount(content),
		ReadingTime:      EstimateReadingTime(content),
		ImageSuggestions: SuggestImagePositions(content),
	}
	slog.Info("draft generated", "title", draft.Title, "words", draft.WordCount, "readingTime", draft.ReadingTime)
	return draft, nil
}

// Outline is a generated post outline.
type Outline struct {
	Structure       []Section `json:"structure"`
	EstimatedLength string    `json:"estimated_length"`
	KeyPoints       []string  `json:"key_points"`
	Resources       []string  `json:"resources"`
}

// Section is one top-level outline entry.
type Section struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Subsections []string `json:"subsections"`
}

// GenerateOutline produces an outline for a topic at the requested depth.
func (p *Pipeline) GenerateOutline(ctx context.Context, topic, depth, providerName string) (Outline, error) {
	res, err := p.gen.GenerateText(ctx, prompt.Outline(topic, depth), providerName, defaultMaxTokens, defaultTemperature)
	if err != nil {
		return Outline{}, err
	}
	data := parse.Structured(res.Content, parse.KindOutline)
	out := Outline{
		EstimatedLength: data.String("estimated_length"),
		KeyPoints:       data.Strings("key_points"),
		Resources:       data.Strings("resources"),
	}
	if raw, ok := data["structure"].([]any); ok {
		for _, item := range raw {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			sec := Section{}
			if v, ok := entry["title"].(string); ok {
				sec.Title = v
			}
			if v, ok := entry["description"].(string); ok {
				sec.Description = v
			}
			sec.Subsections = parse.Content(entry).Strings("subsections")
			out.Structure = append(out.Structure, sec)
		}
	}
	return out, nil
}

// Optimization is the result of a content optimization pass.
type Optimization struct {
	Content          string   `json:"content"`
	Improvements     []string `json:"improvements"`
	SEOScore         int      `json:"seo_score"`
	ReadabilityScore int      `json:"readability_score"`
}

// Optimize rewrites content toward an optimization goal.
func (p *Pipeline) Optimize(ctx context.Context, content, optimizationType string, keywords []string, providerName string) (Optimization, error) {
	res, err := p.gen.GenerateText(ctx, prompt.Optimize(content, optimizationType, keywords), providerName, defaultMaxTokens, defaultTemperature)
	if err != nil {
		return Optimization{}, err
	}
	data := parse.Structured(res.Content, parse.KindOptimization)
	return Optimization{
		Content:          data.String("content"),
		Improvements:     data.Strings("improvements"),
		SEOScore:         data.Int("seo_score", neutralScore),
		ReadabilityScore: data.Int("readability_score", neutralScore),
	}, nil
}

// neutralScore is the default when a provider omits a numeric score.
const neutralScore = 7

// Performance reports locally computed statistics merged with
// provider-supplied scores.
type Performance struct {
	WordCount           int      `json:"word_count"`
	ReadingTime         int      `json:"reading_time"`
	SEOScore            int      `json:"seo_score"`
	ReadabilityScore    int      `json:"readability_score"`
	EngagementPotential int      `json:"engagement_potential"`
	Suggestions         []string `json:"suggestions"`
}

// AnalyzePerformance scores existing content. Word count and reading time
// are computed locally and never depend on the provider call.
func (p *Pipeline) AnalyzePerformance(ctx context.Context, content, providerName string) (Performance, error) {
	res, err := p.gen.GenerateText(ctx, prompt.Analysis(content), providerName, defaultMaxTokens, defaultTemperature)
	if err != nil {
		return Performance{}, err
	}
	data := parse.Structured(res.Content, parse.KindAnalysis)
	return Performance{
		WordCount:           WordCount(content),
		ReadingTime:         EstimateReadingTime(content),
		SEOScore:            data.Int("seo_score", neutralScore),
		ReadabilityScore:    data.Int("readability_score", neutralScore),
		EngagementPotential: data.Int("engagement_potential", neutralScore),
		Suggestions:         data.Strings("suggestions"),
	}, nil
}

// Translate renders text into the target language at low temperature.
func (p *Pipeline) Translate(ctx context.Context, text, targetLanguage, providerName string) (string, error) {
	res, err := p.gen.GenerateText(ctx, prompt.Translate(text, targetLanguage), providerName, defaultMaxTokens, lowTemperature)
	if err != nil {
		return "", err
	}
	return res.Content, nil
}

// Summarize produces a bounded-length summary at low temperature.
func (p *Pipeline) Summarize(ctx context.Context, text string, maxLength int, providerName string) (string, error) {
	res, err := p.gen.GenerateText(ctx, prompt.Summarize(text, maxLength), providerName, defaultMaxTokens, lowTemperature)
	if err != nil {
		return "", err
	}
	return res.Content, nil
}

// EnhanceImagePrompt asks a text provider to improve an image prompt, then
// appends the fixed style suffix. Provider failure falls back to the
// original prompt so image generation can still proceed.
func (p *Pipeline) EnhanceImagePrompt(ctx context.Context, basePrompt, style, blogContext, providerName string) string {
	suffix := prompt.StyleSuffix(style)
	if blogContext == "" {
		return basePrompt + ", " + suffix
	}
	res, err := p.gen.GenerateText(ctx, prompt.EnhanceImage(basePrompt, style, blogContext), providerName, defaultMaxTokens, 0.5)
	if err != nil {
		slog.Warn("prompt enhancement failed, using original prompt", "err", err)
		return basePrompt + ", " + suffix
	}
	return res.Content + ", " + suffix
}
