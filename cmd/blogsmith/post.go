package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	cfgpkg "blogsmith/internal/config"
	"blogsmith/internal/pipeline"
	"blogsmith/internal/post"
)

// blogsmith post
func cmdPost(args []string) error {
	var cf commonFlags
	var topic, style, length, category, tags, providerName stringFlag
	var includeCode, overwrite, dryRun boolFlag
	var outlineFile stringFlag

	fs := flag.NewFlagSet("post", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&topic, "topic", "Post topic (required)")
	fs.Var(&outlineFile, "outline", "Path to an outline file to follow")
	fs.Var(&style, "style", "Writing style: professional, casual, academic")
	fs.Var(&length, "length", "Target length: short, medium, long")
	fs.Var(&category, "category", "Post category for the taxonomy")
	fs.Var(&tags, "tags", "Comma-separated tag list")
	fs.Var(&providerName, "provider", "Provider to use: deepseek, openai")
	fs.Var(&includeCode, "code", "Include code examples")
	fs.Var(&overwrite, "overwrite", "Allow overwriting an existing post")
	fs.Var(&dryRun, "dry-run", "Print the draft without writing it")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)
	if topic.v == "" {
		return fmt.Errorf("--topic is required")
	}

	var flagOv cfgpkg.Overrides
	if providerName.set {
		flagOv.DefaultProvider = &providerName.v
	}
	if overwrite.set {
		flagOv.Overwrite = &overwrite.v
	}
	cfg, err := loadConfig(cf, flagOv)
	if err != nil {
		return err
	}
	if err := cfgpkg.ValidateForGenerate(cfg); err != nil {
		return err
	}

	orch, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()

	outline := ""
	if outlineFile.v != "" {
		raw, err := os.ReadFile(outlineFile.v)
		if err != nil {
			return fmt.Errorf("reading outline: %w", err)
		}
		outline = string(raw)
	}

	slog.Info("post start", "topic", topic.v, "provider", cfg.DefaultProvider)
	draft, err := pipeline.New(orch).GenerateDraft(ctx, pipeline.DraftRequest{
		Topic:       topic.v,
		Outline:     outline,
		Style:       style.v,
		Length:      length.v,
		IncludeCode: includeCode.v,
		Provider:    cfg.DefaultProvider,
	})
	if err != nil {
		return err
	}

	if dryRun.v {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(draft)
	}

	fm := post.NewFrontmatter(draft.Title, category.v, splitTags(tags.v), draft.Summary)
	if cfg.Author != "" {
		fm.Author = cfg.Author
	}
	if cfg.KeywordTable != "" {
		table, err := post.LoadTable(cfg.KeywordTable)
		if err != nil {
			return err
		}
		fm.Slug = post.SlugifyWith(draft.Title, table)
		fm.Path = fm.Slug
	}
	path, err := post.Save(contentDir(cfg), fm.Slug, fm.Document(draft.Content), cfg.Overwrite)
	if err != nil {
		return err
	}

	slog.Info(
		"post saved",
		"path", path,
		"slug", fm.Slug,
		"wordCount", draft.WordCount,
		"readingTime", draft.ReadingTime,
		"imageSuggestions", len(draft.ImageSuggestions),
	)
	return nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
