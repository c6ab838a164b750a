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

// blogsmith outline
func cmdOutline(args []string) error {
	var cf commonFlags
	var topic, depth, providerName stringFlag

	fs := flag.NewFlagSet("outline", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&topic, "topic", "Post topic (required)")
	fs.Var(&depth, "depth", "Outline depth: shallow, medium, deep")
	fs.Var(&providerName, "provider", "Provider to use: deepseek, openai")

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

	slog.Info("outline start", "topic", topic.v, "depth", depth.v)
	outline, err := pipeline.New(orch).GenerateOutline(context.Background(), topic.v, depth.v, cfg.DefaultProvider)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(outline)
}
