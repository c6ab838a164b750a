// Package post turns generated drafts into Zola-ready content files:
// slugs, frontmatter, and the content directory listing.
package post

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\-]+`)
	slugHyphenRuns = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug from a post title using the built-in keyword
// table. Titles containing CJK characters go through the table; everything
// else is normalized ASCII. The result is stable: slugifying a slug
// returns it unchanged.
func Slugify(title string) string {
	return slugifyAt(title, DefaultTable(), time.Now())
}

// SlugifyWith is Slugify with a caller-supplied keyword table.
func SlugifyWith(title string, table []Entry) string {
	return slugifyAt(title, table, time.Now())
}

func slugifyAt(title string, table []Entry, now time.Time) string {
	if containsCJK(title) {
		if s := tableSlug(title, table); s != "" {
			return s
		}
	}
	if s := asciiSlug(title); s != "" {
		return s
	}
	return "post-" + now.Format("20060102")
}

// tableSlug joins the slugs of matched keywords in table order, capped at
// three fragments.
func tableSlug(title string, table []Entry) string {
	var parts []string
	for _, e := range table {
		if strings.Contains(title, e.Term) {
			parts = append(parts, e.Slug)
			if len(parts) == 3 {
				break
			}
		}
	}
	return strings.Join(parts, "-")
}

// asciiSlug lowercases, replaces whitespace with hyphens, strips anything
// outside [a-z0-9-], and collapses hyphen runs.
func asciiSlug(title string) string {
	s := strings.ToLower(title)
	s = strings.Join(strings.Fields(s), "-")
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
