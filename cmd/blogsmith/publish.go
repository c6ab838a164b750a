package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	cfgpkg "blogsmith/internal/config"
	"blogsmith/internal/site"
)

// blogsmith publish
func cmdPublish(args []string) error {
	var cf commonFlags
	var message stringFlag
	var skipBuild, skipDeploy, skipValidate boolFlag

	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&message, "message", "Commit message for the deploy")
	fs.Var(&skipBuild, "skip-build", "Skip the Zola build")
	fs.Var(&skipDeploy, "skip-deploy", "Build only, do not commit or push")
	fs.Var(&skipValidate, "skip-validate", "Skip content validation")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)

	cfg, err := loadConfig(cf, cfgpkg.Overrides{})
	if err != nil {
		return err
	}
	if err := cfgpkg.ValidateForPublish(cfg); err != nil {
		return err
	}

	runner := site.Runner{Root: cfg.BlogRoot}
	ctx := context.Background()

	if !skipValidate.v {
		if err := validateContentDir(contentDir(cfg)); err != nil {
			return err
		}
	}
	if !skipBuild.v {
		if _, err := runner.Build(ctx); err != nil {
			return err
		}
	}
	if skipDeploy.v {
		slog.Info("deploy skipped by flag")
		return nil
	}
	if _, err := runner.Deploy(ctx, message.v); err != nil {
		return err
	}
	return nil
}

// validateContentDir checks every Markdown post before the site is built
// so a broken file fails fast instead of mid-deploy.
func validateContentDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	bad := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") || entry.Name() == "_index.md" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		for _, problem := range site.ValidateContent(string(raw)) {
			slog.Error("invalid content", "file", entry.Name(), "problem", problem)
			bad++
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d content problems found", bad)
	}
	return nil
}
