// Package media handles generated image bookkeeping: filenames, alt
// text, usage hints, and downloading image URLs into the static tree.
package media

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// styleForType picks the prompt style best suited to each image type.
var styleForType = map[string]string{
	"cover":        "artistic",
	"illustration": "illustration",
	"diagram":      "technical",
	"screenshot":   "realistic",
}

// StyleForImageType returns the default prompt style for an image type.
func StyleForImageType(imageType string) string {
	if v, ok := styleForType[imageType]; ok {
		return v
	}
	return "illustration"
}

// UsageSuggestion describes where a generated image belongs in a post.
func UsageSuggestion(imageType string) string {
	switch imageType {
	case "cover":
		return "Use as the post cover, referenced from the frontmatter extra section"
	case "diagram":
		return "Place next to the section that explains the depicted flow"
	case "screenshot":
		return "Place directly under the step it demonstrates"
	default:
		return "Place after the section heading it illustrates"
	}
}

// AltText derives accessible alt text from the generation prompt.
func AltText(prompt string) string {
	alt := strings.TrimSpace(prompt)
	if i := strings.IndexAny(alt, ",."); i > 0 {
		alt = alt[:i]
	}
	if len(alt) > 120 {
		alt = alt[:120]
	}
	return alt
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9\-]+`)

// SafeFilename builds a collision-resistant PNG filename from the
// generation timestamp, a prompt fragment, and the style.
func SafeFilename(prompt, style string, now time.Time) string {
	frag := strings.ToLower(prompt)
	frag = strings.Join(strings.Fields(frag), "-")
	frag = unsafeFilename.ReplaceAllString(frag, "")
	frag = strings.Trim(frag, "-")
	if len(frag) > 40 {
		frag = frag[:40]
		frag = strings.TrimRight(frag, "-")
	}
	if frag == "" {
		frag = "image"
	}
	return fmt.Sprintf("%s_%s_%s.png", now.Format("20060102-150405"), frag, style)
}
