package post

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Info summarizes one content file for listing.
type Info struct {
	Filename string   `json:"filename"`
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Slug     string   `json:"slug"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// List scans a content directory for Markdown posts and returns their
// frontmatter summaries, newest first. Files without a parseable
// frontmatter block are listed with the filename only.
func List(contentDir string) ([]Info, error) {
	entries, err := os.ReadDir(contentDir)
	if err != nil {
		return nil, fmt.Errorf("reading content dir: %w", err)
	}
	var posts []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		if entry.Name() == "_index.md" {
			continue
		}
		info := Info{Filename: entry.Name()}
		raw, err := os.ReadFile(filepath.Join(contentDir, entry.Name()))
		if err == nil {
			parseFrontmatter(string(raw), &info)
		}
		posts = append(posts, info)
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Filename < posts[j].Filename
	})
	return posts, nil
}

// Categories returns the distinct categories across posts, sorted.
func Categories(posts []Info) []string {
	return distinct(posts, func(p Info) []string {
		if p.Category == "" {
			return nil
		}
		return []string{p.Category}
	})
}

// Tags returns the distinct tags across posts, sorted.
func Tags(posts []Info) []string {
	return distinct(posts, func(p Info) []string { return p.Tags })
}

func distinct(posts []Info, pick func(Info) []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range posts {
		for _, v := range pick(p) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out
}

// parseFrontmatter extracts the listing fields from a +++-delimited block.
// It tolerates missing fields and unknown keys.
func parseFrontmatter(doc string, info *Info) {
	doc = strings.TrimPrefix(doc, "\uFEFF")
	if !strings.HasPrefix(doc, "+++") {
		return
	}
	rest := doc[3:]
	end := strings.Index(rest, "+++")
	if end < 0 {
		return
	}
	section := ""
	for _, line := range strings.Split(rest[:end], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch {
		case section == "" && key == "title":
			info.Title = unquote(value)
		case section == "" && key == "date":
			info.Date = unquote(value)
		case section == "" && key == "slug":
			info.Slug = unquote(value)
		case section == "taxonomies" && key == "category":
			if vals := unquoteList(value); len(vals) > 0 {
				info.Category = vals[0]
			}
		case section == "taxonomies" && key == "tags":
			info.Tags = unquoteList(value)
		}
	}
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}

func unquoteList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, unquote(p))
	}
	return out
}
