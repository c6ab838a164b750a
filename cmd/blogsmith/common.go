package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"blogsmith/internal/ai"
	cfgpkg "blogsmith/internal/config"
	"blogsmith/internal/provider"
)

// set up slog logger according to level; defaults to info.
func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// Common flags for config/log-level across subcommands
type commonFlags struct {
	config   string
	logLevel string
}

func addCommonFlags(fs *flag.FlagSet, cf *commonFlags) {
	fs.StringVar(&cf.config, "config", "config.json", "Path to config file")
	fs.StringVar(&cf.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

// stringFlag tracks whether a flag was set so unset flags don't override
// file or env configuration.
type stringFlag struct {
	v   string
	set bool
}

func (f *stringFlag) String() string { return f.v }
func (f *stringFlag) Set(s string) error {
	f.v = s
	f.set = true
	return nil
}

type boolFlag struct {
	v   bool
	set bool
}

func (f *boolFlag) String() string { return strconv.FormatBool(f.v) }
func (f *boolFlag) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	f.v = b
	f.set = true
	return nil
}
func (f *boolFlag) IsBoolFlag() bool { return true }

type intFlag struct {
	v   int
	set bool
}

func (f *intFlag) String() string { return strconv.Itoa(f.v) }
func (f *intFlag) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	f.v = n
	f.set = true
	return nil
}

// loadConfig merges file, env, and flag configuration for a subcommand.
func loadConfig(cf commonFlags, flagOv cfgpkg.Overrides) (cfgpkg.Config, error) {
	fileCfg, err := cfgpkg.LoadFile(cf.config)
	if err != nil {
		return cfgpkg.Config{}, err
	}
	envOv, keys := cfgpkg.FromEnv()
	return cfgpkg.Merge(fileCfg, envOv, flagOv, keys), nil
}

// newOrchestrator assembles the provider set from credentials. Swappable
// in tests.
var newOrchestrator = func(cfg cfgpkg.Config) (*ai.Orchestrator, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	var providers []ai.Provider
	if cfg.DeepSeekAPIKey != "" {
		textModel := ""
		if cfg.DefaultProvider == "" || cfg.DefaultProvider == "deepseek" {
			textModel = cfg.TextModel
		}
		providers = append(providers, provider.NewDeepSeek(cfg.DeepSeekAPIKey, "", textModel, timeout))
	}
	if cfg.OpenAIAPIKey != "" {
		models := provider.Models{
			Image:  cfg.ImageModel,
			Vision: cfg.VisionModel,
		}
		if cfg.DefaultProvider == "openai" {
			models.Text = cfg.TextModel
		}
		providers = append(providers, provider.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, models, timeout))
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no provider credentials configured")
	}
	return ai.New(providers...), nil
}

// contentDir resolves the content directory under the blog root.
func contentDir(cfg cfgpkg.Config) string {
	return joinRoot(cfg.BlogRoot, cfg.ContentDir)
}

// staticDir resolves the generated image directory under the blog root.
func staticDir(cfg cfgpkg.Config) string {
	return joinRoot(cfg.BlogRoot, cfg.StaticDir)
}

func joinRoot(root, dir string) string {
	if root == "" || strings.HasPrefix(dir, "/") {
		return dir
	}
	return strings.TrimSuffix(root, "/") + "/" + dir
}
