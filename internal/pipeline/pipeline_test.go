package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blogsmith/internal/ai"
)

type fakeGenerator struct {
	reply    string
	err      error
	prompts  []string
	maxTok   []int
	temps    []float64
	provider []string
}

func (f *fakeGenerator) GenerateText(_ context.Context, prompt, providerName string, maxTokens int, temperature float64) (ai.TextResult, error) {
	f.prompts = append(f.prompts, prompt)
	f.provider = append(f.provider, providerName)
	f.maxTok = append(f.maxTok, maxTokens)
	f.temps = append(f.temps, temperature)
	if f.err != nil {
		return ai.TextResult{}, f.err
	}
	return ai.TextResult{Content: f.reply}, nil
}

func TestGenerateDraftParsesAndEnriches(t *testing.T) {
	gen := &fakeGenerator{reply: `{"title": "Go Profiling", "summary": "A tour of pprof.", "content": "Intro words here.\n\n## Flame Graphs\n\nMore words."}`}
	p := New(gen)

	draft, err := p.GenerateDraft(context.Background(), DraftRequest{Topic: "profiling", Provider: "deepseek"})
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	if draft.Title != "Go Profiling" {
		t.Fatalf("title = %q", draft.Title)
	}
	if draft.WordCount == 0 || draft.ReadingTime < 1 {
		t.Fatalf("metrics not computed: %+v", draft)
	}
	if len(draft.ImageSuggestions) != 2 {
		t.Fatalf("expected cover + 1 section suggestion, got %d", len(draft.ImageSuggestions))
	}
	if gen.provider[0] != "deepseek" {
		t.Fatalf("provider name not forwarded: %q", gen.provider[0])
	}
	if gen.maxTok[0] != 4000 || gen.temps[0] != 0.7 {
		t.Fatalf("unexpected generation parameters: %d / %v", gen.maxTok[0], gen.temps[0])
	}
}

func TestGenerateDraftSurvivesUnstructuredReply(t *testing.T) {
	gen := &fakeGenerator{reply: "Just plain prose, no JSON anywhere."}
	draft, err := New(gen).GenerateDraft(context.Background(), DraftRequest{Topic: "t"})
	if err != nil {
		t.Fatalf("GenerateDraft: %v", err)
	}
	if draft.Title == "" {
		t.Fatalf("fallback title missing")
	}
	if !strings.Contains(draft.Content, "plain prose") {
		t.Fatalf("raw reply not preserved as content: %q", draft.Content)
	}
}

func TestProviderErrorsPropagateUnchanged(t *testing.T) {
	want := &ai.ProviderError{Provider: "deepseek", StatusCode: 429, Detail: "rate limited"}
	gen := &fakeGenerator{err: want}
	p := New(gen)

	if _, err := p.GenerateDraft(context.Background(), DraftRequest{Topic: "t"}); !errors.Is(err, want) {
		var pe *ai.ProviderError
		if !errors.As(err, &pe) || pe.StatusCode != 429 {
			t.Fatalf("draft error not propagated: %v", err)
		}
	}
	if _, err := p.GenerateOutline(context.Background(), "t", "medium", ""); err == nil {
		t.Fatalf("outline error swallowed")
	}
	if _, err := p.Optimize(context.Background(), "text", "seo", nil, ""); err == nil {
		t.Fatalf("optimize error swallowed")
	}
	if _, err := p.AnalyzePerformance(context.Background(), "text", ""); err == nil {
		t.Fatalf("analyze error swallowed")
	}
}

func TestGenerateOutlineStructure(t *testing.T) {
	gen := &fakeGenerator{reply: `{"structure": [{"title": "Intro", "description": "why", "subsections": ["a", "b"]}], "estimated_length": "2000 words", "key_points": ["kp"], "resources": ["r"]}`}
	out, err := New(gen).GenerateOutline(context.Background(), "topic", "deep", "")
	if err != nil {
		t.Fatalf("GenerateOutline: %v", err)
	}
	if len(out.Structure) != 1 || out.Structure[0].Title != "Intro" {
		t.Fatalf("structure not decoded: %+v", out)
	}
	if len(out.Structure[0].Subsections) != 2 {
		t.Fatalf("subsections not decoded: %+v", out.Structure[0])
	}
	if out.EstimatedLength != "2000 words" {
		t.Fatalf("estimated length = %q", out.EstimatedLength)
	}
}

func TestOptimizeScoresDefaultWhenMissing(t *testing.T) {
	gen := &fakeGenerator{reply: `{"content": "better text", "improvements": ["tightened intro"]}`}
	opt, err := New(gen).Optimize(context.Background(), "text", "readability", nil, "")
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if opt.Content != "better text" {
		t.Fatalf("content = %q", opt.Content)
	}
	if opt.SEOScore == 0 || opt.ReadabilityScore == 0 {
		t.Fatalf("missing scores must default, got %+v", opt)
	}
}

func TestAnalyzePerformanceMergesLocalMetrics(t *testing.T) {
	gen := &fakeGenerator{reply: `{"seo_score": 9, "readability_score": 4, "engagement_potential": 6, "suggestions": ["shorter paragraphs"]}`}
	content := strings.Repeat("word ", 450)
	perf, err := New(gen).AnalyzePerformance(context.Background(), content, "")
	if err != nil {
		t.Fatalf("AnalyzePerformance: %v", err)
	}
	if perf.WordCount != 450 {
		t.Fatalf("word count = %d, want 450", perf.WordCount)
	}
	if perf.ReadingTime != 3 {
		t.Fatalf("reading time = %d, want 3", perf.ReadingTime)
	}
	if perf.SEOScore != 9 || perf.ReadabilityScore != 4 || perf.EngagementPotential != 6 {
		t.Fatalf("scores not taken from reply: %+v", perf)
	}
}

func TestTranslateAndSummarizeUseLowTemperature(t *testing.T) {
	gen := &fakeGenerator{reply: "translated"}
	p := New(gen)

	got, err := p.Translate(context.Background(), "hello", "French", "")
	if err != nil || got != "translated" {
		t.Fatalf("Translate = %q, %v", got, err)
	}
	if _, err := p.Summarize(context.Background(), "long text", 100, ""); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	for _, temp := range gen.temps {
		if temp != 0.3 {
			t.Fatalf("expected low temperature, got %v", temp)
		}
	}
	if !strings.Contains(gen.prompts[0], "French") {
		t.Fatalf("target language missing from prompt")
	}
	if !strings.Contains(gen.prompts[1], "100") {
		t.Fatalf("length cap missing from prompt")
	}
}

func TestEnhanceImagePromptFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("provider down")}
	got := New(gen).EnhanceImagePrompt(context.Background(), "a gopher", "realistic", "post about Go", "")
	if !strings.HasPrefix(got, "a gopher, ") {
		t.Fatalf("fallback should keep the base prompt: %q", got)
	}
	if !strings.Contains(got, "photorealistic") {
		t.Fatalf("style suffix missing: %q", got)
	}

	// Without context no provider call is made at all.
	calls := len(gen.prompts)
	_ = New(gen).EnhanceImagePrompt(context.Background(), "a gopher", "realistic", "", "")
	if len(gen.prompts) != calls {
		t.Fatalf("empty context should skip the provider call")
	}
}
