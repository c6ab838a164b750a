package main

import (
	"fmt"
	"log/slog"
	"os"
)

var version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		printUsage()
		return 0
	}

	sub := args[0]
	switch sub {
	case "post":
		if err := cmdPost(args[1:]); err != nil {
			slog.Error("post failed", "err", err)
			return 1
		}
		return 0
	case "outline":
		if err := cmdOutline(args[1:]); err != nil {
			slog.Error("outline failed", "err", err)
			return 1
		}
		return 0
	case "optimize":
		if err := cmdOptimize(args[1:]); err != nil {
			slog.Error("optimize failed", "err", err)
			return 1
		}
		return 0
	case "analyze":
		if err := cmdAnalyze(args[1:]); err != nil {
			slog.Error("analyze failed", "err", err)
			return 1
		}
		return 0
	case "image":
		if err := cmdImage(args[1:]); err != nil {
			slog.Error("image failed", "err", err)
			return 1
		}
		return 0
	case "batch":
		if err := cmdBatch(args[1:]); err != nil {
			slog.Error("batch failed", "err", err)
			return 1
		}
		return 0
	case "publish":
		if err := cmdPublish(args[1:]); err != nil {
			slog.Error("publish failed", "err", err)
			return 1
		}
		return 0
	case "backup":
		if err := cmdBackup(args[1:]); err != nil {
			slog.Error("backup failed", "err", err)
			return 1
		}
		return 0
	case "posts":
		if err := cmdPosts(args[1:]); err != nil {
			slog.Error("posts failed", "err", err)
			return 1
		}
		return 0
	case "version":
		fmt.Println(version)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n\n", sub)
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `blogsmith %s

Usage:
  blogsmith <subcommand> [flags]

Subcommands:
  post      Generate a blog post and save it to the content directory
  outline   Generate a post outline for a topic
  optimize  Optimize an existing post for SEO, readability, or engagement
  analyze   Score an existing post and suggest improvements
  image     Generate a blog image and download it to the static directory
  batch     Generate posts for a list of topics
  publish   Build the site with Zola and push via git
  backup    Upload a content snapshot to S3
  posts     List posts in the content directory
  version   Print version

Run "blogsmith <subcommand> -h" for flags.
`, version)
}
