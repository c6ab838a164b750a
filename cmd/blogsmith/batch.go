package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"blogsmith/internal/batch"
	cfgpkg "blogsmith/internal/config"
	"blogsmith/internal/pipeline"
	"blogsmith/internal/post"
)

// blogsmith batch
func cmdBatch(args []string) error {
	var cf commonFlags
	var topicsFile, style, length, category, providerName stringFlag
	var delay intFlag
	var overwrite boolFlag

	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&topicsFile, "topics", "Path to a file with one topic per line (required)")
	fs.Var(&style, "style", "Writing style: professional, casual, academic")
	fs.Var(&length, "length", "Target length: short, medium, long")
	fs.Var(&category, "category", "Post category for the taxonomy")
	fs.Var(&providerName, "provider", "Provider to use: deepseek, openai")
	fs.Var(&delay, "delay", "Seconds to wait between topics")
	fs.Var(&overwrite, "overwrite", "Allow overwriting existing posts")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)
	if topicsFile.v == "" {
		return fmt.Errorf("--topics is required")
	}

	var flagOv cfgpkg.Overrides
	if providerName.set {
		flagOv.DefaultProvider = &providerName.v
	}
	if delay.set {
		flagOv.APIDelaySeconds = &delay.v
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

	topics, err := readTopics(topicsFile.v)
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		return fmt.Errorf("no topics in %s", topicsFile.v)
	}

	var table []post.Entry
	if cfg.KeywordTable != "" {
		if table, err = post.LoadTable(cfg.KeywordTable); err != nil {
			return err
		}
	}

	orch, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}
	pipe := pipeline.New(orch)
	ctx := context.Background()

	slog.Info("batch start", "topics", len(topics), "delaySeconds", cfg.APIDelaySeconds)
	runner := batch.Runner{Delay: time.Duration(cfg.APIDelaySeconds) * time.Second}
	outcome, err := runner.Run(ctx, len(topics), func(ctx context.Context, i int) (any, error) {
		draft, err := pipe.GenerateDraft(ctx, pipeline.DraftRequest{
			Topic:    topics[i],
			Style:    style.v,
			Length:   length.v,
			Provider: cfg.DefaultProvider,
		})
		if err != nil {
			return nil, err
		}
		fm := post.NewFrontmatter(draft.Title, category.v, nil, draft.Summary)
		if cfg.Author != "" {
			fm.Author = cfg.Author
		}
		if table != nil {
			fm.Slug = post.SlugifyWith(draft.Title, table)
			fm.Path = fm.Slug
		}
		path, err := post.Save(contentDir(cfg), fm.Slug, fm.Document(draft.Content), cfg.Overwrite)
		if err != nil {
			return nil, err
		}
		return map[string]any{"topic": topics[i], "path": path, "slug": fm.Slug}, nil
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(outcome)
}

func readTopics(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading topics: %w", err)
	}
	defer f.Close()

	var topics []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		topics = append(topics, line)
	}
	return topics, scanner.Err()
}
