package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
)

// Downloader fetches generated image URLs into the local static tree.
// Provider image URLs expire quickly, so downloads happen right after
// generation.
type Downloader struct {
	client *resty.Client
}

// NewDownloader builds a downloader with a per-request timeout.
func NewDownloader(timeout time.Duration) *Downloader {
	return &Downloader{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", "blogsmith/1.0"),
	}
}

// Download fetches url and writes it to destDir/filename, creating the
// directory as needed. It returns the written path.
func (d *Downloader) Download(ctx context.Context, url, destDir, filename string) (string, error) {
	resp, err := d.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("downloading image: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("downloading image: status %d", resp.StatusCode())
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("creating image dir: %w", err)
	}
	path := filepath.Join(destDir, filename)
	if err := os.WriteFile(path, resp.Body(), 0o644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}
	return path, nil
}
