package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	cfgpkg "blogsmith/internal/config"
	"blogsmith/internal/pipeline"
)

// blogsmith optimize
func cmdOptimize(args []string) error {
	var cf commonFlags
	var file, optType, keywords, providerName, output stringFlag

	fs := flag.NewFlagSet("optimize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&file, "file", "Path to the Markdown file to optimize (required)")
	fs.Var(&optType, "type", "Optimization goal: seo, readability, engagement")
	fs.Var(&keywords, "keywords", "Comma-separated target keywords")
	fs.Var(&providerName, "provider", "Provider to use: deepseek, openai")
	fs.Var(&output, "out", "Write optimized content to this path instead of stdout")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)
	if file.v == "" {
		return fmt.Errorf("--file is required")
	}

	var flagOv cfgpkg.Overrides
	if providerName.set {
		flagOv.DefaultProvider = &providerName.v
	}
	cfg, err := loadConfig(cf, flagOv)
	if err != nil {
		return err
	}
	if err := cfgpkg.ValidateForGenerate(cfg); err != nil {
		return err
	}

	raw, err := os.ReadFile(file.v)
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}

	orch, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}

	goal := optType.v
	if goal == "" {
		goal = "seo"
	}
	slog.Info("optimize start", "file", file.v, "type", goal)
	opt, err := pipeline.New(orch).Optimize(context.Background(), string(raw), goal, splitTags(keywords.v), cfg.DefaultProvider)
	if err != nil {
		return err
	}

	if output.v != "" {
		if err := os.WriteFile(output.v, []byte(opt.Content), 0o644); err != nil {
			return fmt.Errorf("writing optimized content: %w", err)
		}
		slog.Info("optimized content written", "path", output.v, "seoScore", opt.SEOScore, "readabilityScore", opt.ReadabilityScore)
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(opt)
}
