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

// blogsmith analyze
func cmdAnalyze(args []string) error {
	var cf commonFlags
	var file, providerName stringFlag

	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&file, "file", "Path to the Markdown file to analyze (required)")
	fs.Var(&providerName, "provider", "Provider to use: deepseek, openai")

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

	slog.Info("analyze start", "file", file.v)
	perf, err := pipeline.New(orch).AnalyzePerformance(context.Background(), string(raw), cfg.DefaultProvider)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(perf)
}
