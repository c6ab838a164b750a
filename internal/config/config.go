package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds resolved configuration values after merging file, env, and flags.
type Config struct {
	DefaultProvider string `json:"defaultProvider,omitempty"`
	OpenAIBaseURL   string `json:"openaiBaseUrl,omitempty"`
	TextModel       string `json:"textModel,omitempty"`
	ImageModel      string `json:"imageModel,omitempty"`
	VisionModel     string `json:"visionModel,omitempty"`
	BlogRoot        string `json:"blogRoot,omitempty"`
	ContentDir      string `json:"contentDir,omitempty"`
	StaticDir       string `json:"staticDir,omitempty"`
	ImageSize       string `json:"imageSize,omitempty"`
	ImageQuality    string `json:"imageQuality,omitempty"`
	Author          string `json:"author,omitempty"`
	KeywordTable    string `json:"keywordTable,omitempty"`
	APIDelaySeconds int    `json:"apiDelaySeconds,omitempty"`
	TimeoutSeconds  int    `json:"timeoutSeconds,omitempty"`
	S3Bucket        string `json:"s3Bucket,omitempty"`
	S3Prefix        string `json:"s3Prefix,omitempty"`
	Region          string `json:"region,omitempty"`
	Debug           bool   `json:"debug,omitempty"`
	Overwrite       bool   `json:"overwrite,omitempty"`

	// Not persisted to file; sourced from env only.
	DeepSeekAPIKey string `json:"-"`
	OpenAIAPIKey   string `json:"-"`
}

// Overrides represents optional overrides from env or flags.
// Only non-nil pointers are applied during merge.
type Overrides struct {
	DefaultProvider *string
	OpenAIBaseURL   *string
	TextModel       *string
	ImageModel      *string
	VisionModel     *string
	BlogRoot        *string
	ContentDir      *string
	StaticDir       *string
	ImageSize       *string
	ImageQuality    *string
	Author          *string
	KeywordTable    *string
	APIDelaySeconds *int
	TimeoutSeconds  *int
	S3Bucket        *string
	S3Prefix        *string
	Region          *string
	Debug           *bool
	Overwrite       *bool
}

func Default() Config {
	return Config{
		DefaultProvider: "deepseek",
		TextModel:       "deepseek-chat",
		ImageModel:      "dall-e-3",
		VisionModel:     "gpt-4o",
		ContentDir:      "content/blog",
		StaticDir:       "static/images",
		ImageSize:       "1792x1024",
		ImageQuality:    "standard",
		Author:          "Polly",
		APIDelaySeconds: 2,
		TimeoutSeconds:  60,
		S3Prefix:        "blog",
	}
}

// LoadFile reads a JSON config. If file not found, returns defaults and no error.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Keys carries API credentials, which never come from the config file.
type Keys struct {
	DeepSeek string
	OpenAI   string
}

// FromEnv reads env vars and returns overrides and the provider keys.
func FromEnv() (Overrides, Keys) {
	var ov Overrides

	strVars := map[string]**string{
		"BLOGSMITH_PROVIDER":       &ov.DefaultProvider,
		"BLOGSMITH_OPENAI_BASEURL": &ov.OpenAIBaseURL,
		"BLOGSMITH_TEXT_MODEL":     &ov.TextModel,
		"BLOGSMITH_IMAGE_MODEL":    &ov.ImageModel,
		"BLOGSMITH_VISION_MODEL":   &ov.VisionModel,
		"BLOGSMITH_BLOG_ROOT":      &ov.BlogRoot,
		"BLOGSMITH_CONTENT_DIR":    &ov.ContentDir,
		"BLOGSMITH_STATIC_DIR":     &ov.StaticDir,
		"BLOGSMITH_IMAGE_SIZE":     &ov.ImageSize,
		"BLOGSMITH_IMAGE_QUALITY":  &ov.ImageQuality,
		"BLOGSMITH_AUTHOR":         &ov.Author,
		"BLOGSMITH_KEYWORD_TABLE":  &ov.KeywordTable,
		"AWS_S3_BUCKET":            &ov.S3Bucket,
		"AWS_S3_PREFIX":            &ov.S3Prefix,
		"AWS_REGION":               &ov.Region,
	}
	for name, target := range strVars {
		if v, ok := os.LookupEnv(name); ok {
			val := v
			*target = &val
		}
	}
	if v, ok := os.LookupEnv("BLOGSMITH_API_DELAY"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			ov.APIDelaySeconds = &n
		}
	}
	if v, ok := os.LookupEnv("BLOGSMITH_TIMEOUT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			ov.TimeoutSeconds = &n
		}
	}
	if v, ok := os.LookupEnv("BLOGSMITH_DEBUG"); ok {
		if b, err := parseBool(v); err == nil {
			ov.Debug = &b
		}
	}
	if v, ok := os.LookupEnv("BLOGSMITH_OVERWRITE"); ok {
		if b, err := parseBool(v); err == nil {
			ov.Overwrite = &b
		}
	}

	keys := Keys{
		DeepSeek: os.Getenv("DEEPSEEK_API_KEY"),
		OpenAI:   os.Getenv("OPENAI_API_KEY"),
	}
	return ov, keys
}

func parseBool(s string) (bool, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return false, fmt.Errorf("empty bool")
	}
	if s == "1" || s == "t" || s == "true" || s == "y" || s == "yes" || s == "on" {
		return true, nil
	}
	if s == "0" || s == "f" || s == "false" || s == "n" || s == "no" || s == "off" {
		return false, nil
	}
	// try strconv
	return strconv.ParseBool(s)
}

// Merge applies overrides in order: file -> env -> flags.
func Merge(fileCfg Config, env Overrides, flags Overrides, keys Keys) Config {
	cfg := fileCfg

	apply := func(ov Overrides) {
		if ov.DefaultProvider != nil {
			cfg.DefaultProvider = *ov.DefaultProvider
		}
		if ov.OpenAIBaseURL != nil {
			cfg.OpenAIBaseURL = *ov.OpenAIBaseURL
		}
		if ov.TextModel != nil {
			cfg.TextModel = *ov.TextModel
		}
		if ov.ImageModel != nil {
			cfg.ImageModel = *ov.ImageModel
		}
		if ov.VisionModel != nil {
			cfg.VisionModel = *ov.VisionModel
		}
		if ov.BlogRoot != nil {
			cfg.BlogRoot = *ov.BlogRoot
		}
		if ov.ContentDir != nil {
			cfg.ContentDir = *ov.ContentDir
		}
		if ov.StaticDir != nil {
			cfg.StaticDir = *ov.StaticDir
		}
		if ov.ImageSize != nil {
			cfg.ImageSize = *ov.ImageSize
		}
		if ov.ImageQuality != nil {
			cfg.ImageQuality = *ov.ImageQuality
		}
		if ov.Author != nil {
			cfg.Author = *ov.Author
		}
		if ov.KeywordTable != nil {
			cfg.KeywordTable = *ov.KeywordTable
		}
		if ov.APIDelaySeconds != nil {
			cfg.APIDelaySeconds = *ov.APIDelaySeconds
		}
		if ov.TimeoutSeconds != nil {
			cfg.TimeoutSeconds = *ov.TimeoutSeconds
		}
		if ov.S3Bucket != nil {
			cfg.S3Bucket = *ov.S3Bucket
		}
		if ov.S3Prefix != nil {
			cfg.S3Prefix = *ov.S3Prefix
		}
		if ov.Region != nil {
			cfg.Region = *ov.Region
		}
		if ov.Debug != nil {
			cfg.Debug = *ov.Debug
		}
		if ov.Overwrite != nil {
			cfg.Overwrite = *ov.Overwrite
		}
	}

	apply(env)
	apply(flags)

	cfg.DeepSeekAPIKey = keys.DeepSeek
	cfg.OpenAIAPIKey = keys.OpenAI
	return cfg
}

// Validation helpers
func ValidateForGenerate(cfg Config) error {
	if cfg.DeepSeekAPIKey == "" && cfg.OpenAIAPIKey == "" {
		return errors.New("DEEPSEEK_API_KEY or OPENAI_API_KEY is required for generation")
	}
	if cfg.TextModel == "" {
		return errors.New("text model is required")
	}
	return nil
}

func ValidateForImage(cfg Config) error {
	if cfg.OpenAIAPIKey == "" {
		return errors.New("OPENAI_API_KEY is required for image generation")
	}
	if cfg.ImageModel == "" {
		return errors.New("image model is required")
	}
	return nil
}

func ValidateForPublish(cfg Config) error {
	if cfg.BlogRoot == "" {
		return errors.New("blog root is required for publish")
	}
	return nil
}

func ValidateForBackup(cfg Config) error {
	if cfg.BlogRoot == "" {
		return errors.New("blog root is required for backup")
	}
	if cfg.S3Bucket == "" {
		return errors.New("S3 bucket is required for backup")
	}
	if cfg.Region == "" {
		return errors.New("AWS region is required for backup")
	}
	return nil
}
