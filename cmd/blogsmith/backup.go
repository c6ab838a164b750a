package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	cfgpkg "blogsmith/internal/config"
	"blogsmith/internal/storage"
)

// newUploader builds the S3 uploader. Swappable in tests.
var newUploader = func(ctx context.Context, cfg cfgpkg.Config) (*storage.Uploader, error) {
	return storage.New(ctx, cfg.S3Bucket, cfg.S3Prefix, cfg.Region)
}

// blogsmith backup
func cmdBackup(args []string) error {
	var cf commonFlags
	var bucket, prefix, region stringFlag

	fs := flag.NewFlagSet("backup", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	addCommonFlags(fs, &cf)
	fs.Var(&bucket, "bucket", "S3 bucket for the snapshot")
	fs.Var(&prefix, "prefix", "Key prefix inside the bucket")
	fs.Var(&region, "region", "AWS region")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	setupLogger(cf.logLevel)

	var flagOv cfgpkg.Overrides
	if bucket.set {
		flagOv.S3Bucket = &bucket.v
	}
	if prefix.set {
		flagOv.S3Prefix = &prefix.v
	}
	if region.set {
		flagOv.Region = &region.v
	}
	cfg, err := loadConfig(cf, flagOv)
	if err != nil {
		return err
	}
	if err := cfgpkg.ValidateForBackup(cfg); err != nil {
		return err
	}

	ctx := context.Background()
	uploader, err := newUploader(ctx, cfg)
	if err != nil {
		return err
	}

	root := contentDir(cfg)
	slog.Info("backup start", "root", root, "bucket", cfg.S3Bucket)
	n, err := uploader.BackupTree(ctx, root, time.Now())
	if err != nil {
		return err
	}
	posts, err := uploader.MirrorPosts(ctx, root)
	if err != nil {
		return err
	}
	images, err := uploader.MirrorImages(ctx, staticDir(cfg))
	if err != nil {
		return err
	}
	slog.Info("backup complete", "files", n, "posts", posts, "images", images)
	return nil
}
