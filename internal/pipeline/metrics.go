package pipeline

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const wordsPerMinute = 200

// ImageSuggestion proposes one image insertion point in a post.
type ImageSuggestion struct {
	Position   string `json:"position"`
	Title      string `json:"title"`
	Suggestion string `json:"suggestion"`
	ImageType  string `json:"image_type"`
	Priority   string `json:"priority"`
}

// EstimateReadingTime strips formatting markers, counts whitespace-delimited
// tokens, and divides by the fixed reading rate. Result is at least 1.
func EstimateReadingTime(content string) int {
	plain := strings.Map(func(r rune) rune {
		switch r {
		case '#', '*', '`', '[', ']', '(', ')':
			return -1
		}
		return r
	}, content)
	words := len(strings.Fields(plain))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// SuggestImagePositions scans content for second-level section headers and
// proposes one image per header, preceded by a mandatory cover suggestion.
// Cover first, then headers in document order.
func SuggestImagePositions(content string) []ImageSuggestion {
	suggestions := []ImageSuggestion{{
		Position:   "cover",
		Title:      "Cover image",
		Suggestion: "Insert an eye-catching cover image at the top of the post",
		ImageType:  "cover",
		Priority:   "high",
	}}

	src := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	i := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 2 {
			return ast.WalkContinue, nil
		}
		title := headingText(heading, src)
		suggestions = append(suggestions, ImageSuggestion{
			Position:   fmt.Sprintf("after_header_%d", i),
			Title:      title,
			Suggestion: fmt.Sprintf("Insert a supporting image after the %q section", title),
			ImageType:  "illustration",
			Priority:   "medium",
		})
		i++
		return ast.WalkSkipChildren, nil
	})
	return suggestions
}

func headingText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(headingText(c, src))
		}
	}
	return strings.TrimSpace(b.String())
}

// WordCount returns a basic whitespace-delimited word count.
func WordCount(content string) int {
	return len(strings.Fields(content))
}
