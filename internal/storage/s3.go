// Package storage backs up blog content and mirrors generated images to
// S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
}

// Uploader stores blog artifacts in an S3 bucket under a fixed prefix.
type Uploader struct {
	client s3API
	bucket string
	prefix string
}

func New(ctx context.Context, bucket, prefix, region string) (*Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}
	if region == "" {
		region = "us-west-2"
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg)
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: normalizePrefix(prefix),
	}, nil
}

func NewWithClient(bucket, prefix string, client s3API) *Uploader {
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: normalizePrefix(prefix),
	}
}

func (u *Uploader) Bucket() string { return u.bucket }
func (u *Uploader) Prefix() string { return u.prefix }

// KeyForBackup places a content snapshot under a date-partitioned path.
func (u *Uploader) KeyForBackup(t time.Time, relPath string) string {
	y, m, d := t.UTC().Date()
	return joinKey(u.prefix, "backup", fmt.Sprintf("%04d", y), fmt.Sprintf("%02d", int(m)), fmt.Sprintf("%02d", d), relPath)
}

// KeyForPost addresses a single post file inside the latest snapshot.
func (u *Uploader) KeyForPost(slug string) string {
	return joinKey(u.prefix, "posts", slug+".md")
}

// KeyForImage addresses a generated image mirror.
func (u *Uploader) KeyForImage(filename string) string {
	return joinKey(u.prefix, "images", filename)
}

// UploadFile uploads a local file to the given key.
func (u *Uploader) UploadFile(ctx context.Context, key, localPath, contentType, cacheControl string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	input := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if cacheControl != "" {
		input.CacheControl = aws.String(cacheControl)
	}
	_, err = u.client.PutObject(ctx, input)
	return err
}

// BackupTree uploads every regular file under root to the backup path for
// the given timestamp, preserving relative paths, and promotes each file
// to the stable latest snapshot. It returns the number of files uploaded.
func (u *Uploader) BackupTree(ctx context.Context, root string, t time.Time) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		key := u.KeyForBackup(t, rel)
		if err := u.UploadFile(ctx, key, p, contentTypeFor(p), ""); err != nil {
			return fmt.Errorf("uploading %s: %w", rel, err)
		}
		if err := u.PromoteLatest(ctx, key, rel); err != nil {
			return fmt.Errorf("promoting %s: %w", rel, err)
		}
		count++
		return nil
	})
	if err != nil {
		return count, err
	}
	slog.Info("content backed up", "root", root, "files", count)
	return count, nil
}

// MirrorPosts uploads the Markdown posts in dir to the flat posts area,
// keyed by slug. Section index files are skipped.
func (u *Uploader) MirrorPosts(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") || name == "_index.md" {
			continue
		}
		key := u.KeyForPost(strings.TrimSuffix(name, ".md"))
		if err := u.UploadFile(ctx, key, filepath.Join(dir, name), contentTypeFor(name), ""); err != nil {
			return count, fmt.Errorf("mirroring %s: %w", name, err)
		}
		count++
	}
	return count, nil
}

// MirrorImages uploads the generated images in dir to the images area.
// A missing dir is not an error; no images have been generated yet.
func (u *Uploader) MirrorImages(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		key := u.KeyForImage(name)
		if err := u.UploadFile(ctx, key, filepath.Join(dir, name), contentTypeFor(name), ""); err != nil {
			return count, fmt.Errorf("mirroring %s: %w", name, err)
		}
		count++
	}
	return count, nil
}

// PromoteLatest copies an existing backup object to the stable latest key
// so the newest snapshot is addressable without a date.
func (u *Uploader) PromoteLatest(ctx context.Context, srcKey, relPath string) error {
	latestKey := joinKey(u.prefix, "backup", "latest", relPath)
	input := &s3.CopyObjectInput{
		Bucket:     aws.String(u.bucket),
		Key:        aws.String(latestKey),
		CopySource: aws.String(encodeCopySource(u.bucket, srcKey)),
	}
	_, err := u.client.CopyObject(ctx, input)
	return err
}

func contentTypeFor(p string) string {
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".md":
		return "text/markdown; charset=utf-8"
	default:
		return mime.TypeByExtension(ext)
	}
}

func normalizePrefix(prefix string) string {
	return strings.Trim(prefix, "/")
}

func joinKey(prefix string, parts ...string) string {
	all := []string{}
	if prefix != "" {
		all = append(all, prefix)
	}
	all = append(all, parts...)
	key := path.Join(all...)
	return strings.TrimPrefix(key, "/")
}

func encodeCopySource(bucket, key string) string {
	parts := strings.Split(key, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return bucket + "/" + strings.Join(parts, "/")
}

// IsNotFound returns true when the error indicates the object does not exist.
func IsNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}
