package prompt

import (
	"fmt"
	"strings"
)

var styleKeywords = map[string]string{
	"realistic":    "photorealistic, high quality, detailed",
	"illustration": "digital illustration, artistic, stylized",
	"artistic":     "artistic, creative, expressive",
	"technical":    "technical diagram, clean, professional",
}

var moodKeywords = map[string]string{
	"professional": "professional, clean, modern",
	"casual":       "friendly, approachable, warm",
	"inspiring":    "inspiring, motivational, uplifting",
	"technical":    "technical, precise, detailed",
}

// StyleSuffix returns the fixed enhancement keywords for an image style.
// Unknown styles get a generic quality suffix.
func StyleSuffix(style string) string {
	if v, ok := styleKeywords[style]; ok {
		return v
	}
	return "high quality"
}

// EnhanceImage renders a text prompt asking a provider to rewrite an image
// prompt for blog use within the given style and context.
func EnhanceImage(basePrompt, style, blogContext string) string {
	var b strings.Builder
	b.WriteString("Improve the following image generation prompt for use in a technical blog.\n\n")
	fmt.Fprintf(&b, "Original prompt: %s\n", basePrompt)
	fmt.Fprintf(&b, "Image style: %s\n", style)
	if blogContext != "" {
		fmt.Fprintf(&b, "Post context: %s\n", clip(blogContext, 200))
	}
	b.WriteString("\nReply with the improved English prompt only: describe the image clearly, match the style, and suit a technical blog.")
	return b.String()
}

// BlogImageParams carries the inputs for a post-specific image prompt.
type BlogImageParams struct {
	Title          string
	ImageType      string
	SectionContext string
	Mood           string
	Keywords       []string
}

// BlogImage renders the image prompt for a specific post and image type.
func BlogImage(p BlogImageParams) string {
	var base string
	switch p.ImageType {
	case "cover":
		base = fmt.Sprintf("Blog cover image for '%s', professional and engaging", p.Title)
	case "illustration":
		base = fmt.Sprintf("Technical illustration for blog post about %s", p.Title)
	case "diagram":
		base = fmt.Sprintf("Technical diagram or flowchart related to %s", p.Title)
	case "screenshot":
		base = fmt.Sprintf("Clean interface screenshot or mockup for %s", p.Title)
	default:
		base = fmt.Sprintf("Image for %s", p.Title)
	}
	if len(p.Keywords) > 0 {
		kws := p.Keywords
		if len(kws) > 3 {
			kws = kws[:3]
		}
		base += ", featuring " + strings.Join(kws, ", ")
	}
	if p.SectionContext != "" {
		base += ", specifically about " + p.SectionContext
	}
	mood := p.Mood
	if v, ok := moodKeywords[mood]; ok {
		mood = v
	} else if mood == "" {
		mood = moodKeywords["professional"]
	}
	return base + ", " + mood
}
