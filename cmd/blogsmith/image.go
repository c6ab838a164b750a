package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	cfgpkg "blogsmith/internal/config"
	"blogsmith/internal/media"
	"blogsmith/internal/pipeline"
	"blogsmith/internal/prompt"
)

// imageCodec post-processes downloaded images when set. Nil keeps images
// as the provider produced them.
var imageCodec media.ImageCodec

type imageResult struct {
	Prompt        string `json:"prompt"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
	URL           string `json:"url"`
	Path          string `json:"path,omitempty"`
	AltText       string `json:"alt_text"`
	Usage         string `json:"usage"`
}

// blogsmith image
func cmdImage(args []string) error {
	var cf commonFlags
	var imgPrompt, title, imageType, style, blogContext, keywords stringFlag
	var noDownload, noEnhance boolFlag

	fs := flag.NewFlagSet("image", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&imgPrompt, "prompt", "Image prompt (or use --title to derive one)")
	fs.Var(&title, "title", "Post title to derive the prompt from")
	fs.Var(&imageType, "type", "Image type: cover, illustration, diagram, screenshot")
	fs.Var(&style, "style", "Image style: realistic, illustration, artistic, technical")
	fs.Var(&blogContext, "context", "Post context used to enhance the prompt")
	fs.Var(&keywords, "keywords", "Comma-separated keywords to feature")
	fs.Var(&noDownload, "no-download", "Print the image URL without downloading")
	fs.Var(&noEnhance, "no-enhance", "Skip prompt enhancement")
	var describe boolFlag
	fs.Var(&describe, "describe", "Derive alt text from the generated image via a vision provider")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)
	if imgPrompt.v == "" && title.v == "" {
		return fmt.Errorf("--prompt or --title is required")
	}

	cfg, err := loadConfig(cf, cfgpkg.Overrides{})
	if err != nil {
		return err
	}
	if err := cfgpkg.ValidateForImage(cfg); err != nil {
		return err
	}

	orch, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()

	imgType := imageType.v
	if imgType == "" {
		imgType = "illustration"
	}
	imgStyle := style.v
	if imgStyle == "" {
		imgStyle = media.StyleForImageType(imgType)
	}

	base := imgPrompt.v
	if base == "" {
		base = prompt.BlogImage(prompt.BlogImageParams{
			Title:     title.v,
			ImageType: imgType,
			Keywords:  splitTags(keywords.v),
		})
	}
	finalPrompt := base + ", " + prompt.StyleSuffix(imgStyle)
	if !noEnhance.v && blogContext.v != "" {
		finalPrompt = pipeline.New(orch).EnhanceImagePrompt(ctx, base, imgStyle, blogContext.v, cfg.DefaultProvider)
	}

	slog.Info("image start", "type", imgType, "style", imgStyle)
	img, err := orch.GenerateImage(ctx, finalPrompt, cfg.ImageSize, cfg.ImageQuality, "openai")
	if err != nil {
		return err
	}

	result := imageResult{
		Prompt:        finalPrompt,
		RevisedPrompt: img.RevisedPrompt,
		URL:           img.URL,
		AltText:       media.AltText(base),
		Usage:         media.UsageSuggestion(imgType),
	}

	if describe.v {
		desc, err := orch.AnalyzeImage(ctx, img.URL, "Describe this image in one sentence suitable for alt text.")
		if err != nil {
			slog.Warn("image description failed, keeping derived alt text", "err", err)
		} else {
			result.AltText = media.AltText(desc.Content)
		}
	}

	if !noDownload.v {
		filename := media.SafeFilename(base, imgStyle, time.Now())
		timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
		path, err := media.NewDownloader(timeout).Download(ctx, img.URL, staticDir(cfg), filename)
		if err != nil {
			return err
		}
		if err := media.OptimizeIfConfigured(ctx, imageCodec, path); err != nil {
			return err
		}
		result.Path = path
		slog.Info("image downloaded", "path", path)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
