package post

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultTemplate is the Zola template assigned to generated posts.
	DefaultTemplate = "blog.html"
	// DefaultAuthor is stamped into the extra section when none is set.
	DefaultAuthor = "Polly"
)

// Frontmatter holds the Zola frontmatter fields for one post. Rendering
// order is fixed and matches what the site templates expect.
type Frontmatter struct {
	Title    string
	Date     string
	Template string
	Slug     string
	Path     string
	Archive  []string
	Category string
	Tags     []string
	Author   string
	Summary  string
}

// NewFrontmatter builds frontmatter for a generated post, deriving the
// slug from the title and filling date, template, archive year, and
// author defaults from the clock.
func NewFrontmatter(title, category string, tags []string, summary string) Frontmatter {
	return newFrontmatterAt(title, category, tags, summary, time.Now())
}

func newFrontmatterAt(title, category string, tags []string, summary string, now time.Time) Frontmatter {
	slug := slugifyAt(title, DefaultTable(), now)
	return Frontmatter{
		Title:    title,
		Date:     now.Format("2006-01-02"),
		Template: DefaultTemplate,
		Slug:     slug,
		Path:     slug,
		Archive:  []string{strconv.Itoa(now.Year())},
		Category: category,
		Tags:     tags,
		Author:   DefaultAuthor,
		Summary:  summary,
	}
}

// Render produces the +++-delimited TOML frontmatter block. String values
// are quoted with inner quotes escaped; list values render as quoted,
// comma-joined arrays; sections indent their keys by two spaces.
func (f Frontmatter) Render() string {
	var b strings.Builder
	b.WriteString("+++\n")
	writeKV(&b, "", "title", f.Title)
	writeKV(&b, "", "date", f.Date)
	writeKV(&b, "", "template", f.Template)
	writeKV(&b, "", "slug", f.Slug)
	writeKV(&b, "", "path", f.Path)
	writeList(&b, "", "archive", f.Archive)
	b.WriteString("\n[taxonomies]\n")
	writeList(&b, "  ", "category", []string{f.Category})
	writeList(&b, "  ", "tags", f.Tags)
	b.WriteString("\n[extra]\n")
	writeKV(&b, "  ", "author", f.Author)
	writeKV(&b, "  ", "summary", f.Summary)
	b.WriteString("+++")
	return b.String()
}

// Document joins rendered frontmatter with the post body.
func (f Frontmatter) Document(content string) string {
	return f.Render() + "\n\n" + strings.TrimSpace(content) + "\n"
}

func writeKV(b *strings.Builder, indent, key, value string) {
	fmt.Fprintf(b, "%s%s = %s\n", indent, key, quote(value))
}

func writeList(b *strings.Builder, indent, key string, values []string) {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	fmt.Fprintf(b, "%s%s = [%s]\n", indent, key, strings.Join(quoted, ", "))
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
