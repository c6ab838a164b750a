// Package prompt renders request parameters into provider-ready prompt
// strings. Everything here is pure: no I/O, no clock, no network.
package prompt

import (
	"fmt"
	"strings"
)

var lengthMap = map[string]string{
	"short":  "800-1200 words",
	"medium": "1500-2500 words",
	"long":   "3000-5000 words",
}

var styleMap = map[string]string{
	"professional": "professional technical style with appropriate terminology",
	"casual":       "relaxed, friendly style that is easy to follow",
	"academic":     "rigorous academic style with references to relevant work",
}

var depthMap = map[string]string{
	"shallow": "a brief outline with 3-5 main points",
	"medium":  "a medium-depth outline with 5-8 main points, each with 2-3 sub-points",
	"deep":    "a detailed outline with 8-12 main points and a multi-level structure",
}

var optimizationMap = map[string]string{
	"seo":         "search engine optimization: improve keyword density and structure",
	"readability": "readability: improve sentence structure and expression",
	"engagement":  "engagement: add interactive elements and make it more compelling",
}

// lookup resolves an enum value through its table, passing unknown values
// through verbatim so new values degrade instead of failing.
func lookup(table map[string]string, key string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return key
}

// ContentParams carries the inputs for a draft generation prompt.
type ContentParams struct {
	Topic       string
	Outline     string
	Style       string
	Length      string
	IncludeCode bool
}

// Content renders the draft generation prompt. The reply is requested as a
// JSON object with title, summary, and content fields.
func Content(p ContentParams) string {
	var b strings.Builder
	b.WriteString("You are a blog writing assistant. Write a high-quality technical blog post.\n\n")
	fmt.Fprintf(&b, "Topic: %s\n\n", p.Topic)
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "- Style: %s\n", lookup(styleMap, p.Style))
	fmt.Fprintf(&b, "- Length: %s\n", lookup(lengthMap, p.Length))
	b.WriteString("- First-person narration, professional but approachable tone\n")
	if p.Outline != "" {
		fmt.Fprintf(&b, "\nReference outline:\n%s\n", p.Outline)
	}
	if p.IncludeCode {
		b.WriteString("- Include relevant code examples and technical detail\n")
	}
	b.WriteString("\nReply with a JSON object only, shaped as:\n")
	b.WriteString(`{"title": "post title", "summary": "short summary (100-150 words)", "content": "full post in Markdown"}`)
	b.WriteString("\n\nThe post should open strongly, use a clear section structure, offer practical insight, and close with a summary and outlook.")
	return b.String()
}

// Outline renders the outline generation prompt for a topic.
func Outline(topic, depth string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Produce a detailed outline for a technical blog post on %q.\n\n", topic)
	fmt.Fprintf(&b, "Requested depth: %s\n\n", lookup(depthMap, depth))
	b.WriteString("Reply with a JSON object only, shaped as:\n")
	b.WriteString(`{"structure": [{"title": "section title", "description": "section description", "subsections": ["sub 1", "sub 2"]}], "estimated_length": "word estimate", "key_points": ["point 1"], "resources": ["suggested reference"]}`)
	return b.String()
}

// Optimize renders the content optimization prompt. Content is truncated
// to keep the request within provider limits.
func Optimize(content, optimizationType string, keywords []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Optimize the following blog post. Optimization goal: %s\n\n", lookup(optimizationMap, optimizationType))
	fmt.Fprintf(&b, "Original content:\n%s\n\n", clip(content, 3000))
	if len(keywords) > 0 {
		fmt.Fprintf(&b, "Target keywords: %s\n\n", strings.Join(keywords, ", "))
	}
	b.WriteString("Reply with a JSON object only, shaped as:\n")
	b.WriteString(`{"content": "optimized content", "improvements": ["change 1", "change 2"], "seo_score": 1-10, "readability_score": 1-10}`)
	return b.String()
}

// Analysis renders the performance analysis prompt for existing content.
func Analysis(content string) string {
	var b strings.Builder
	b.WriteString("Analyze the following blog post and score it from 1 to 10 on each axis, with improvement suggestions.\n\n")
	fmt.Fprintf(&b, "Content:\n%s\n\n", clip(content, 2000))
	b.WriteString("Consider SEO, readability, and engagement potential.\n\n")
	b.WriteString("Reply with a JSON object only, shaped as:\n")
	b.WriteString(`{"seo_score": 1-10, "readability_score": 1-10, "engagement_potential": 1-10, "suggestions": ["suggestion 1"]}`)
	return b.String()
}

// Translate renders a translation prompt preserving tone and meaning.
func Translate(text, targetLanguage string) string {
	return fmt.Sprintf("Translate the following text into %s, preserving its meaning and style:\n\n%s", targetLanguage, text)
}

// Summarize renders a summarization prompt with a length cap.
func Summarize(text string, maxLength int) string {
	return fmt.Sprintf("Summarize the following text in no more than %d words:\n\n%s", maxLength, text)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
