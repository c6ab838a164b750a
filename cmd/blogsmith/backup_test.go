package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	cfgpkg "blogsmith/internal/config"
	"blogsmith/internal/storage"
)

type recordingS3 struct {
	putKeys  []string
	copyKeys []string
}

func (r *recordingS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	r.putKeys = append(r.putKeys, *params.Key)
	if params.Body != nil {
		_, _ = io.ReadAll(params.Body)
	}
	return &s3.PutObjectOutput{}, nil
}

func (r *recordingS3) CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	r.copyKeys = append(r.copyKeys, *params.Key)
	return &s3.CopyObjectOutput{}, nil
}

func TestBackupMirrorsPostsAndImages(t *testing.T) {
	fake := &recordingS3{}
	orig := newUploader
	newUploader = func(ctx context.Context, cfg cfgpkg.Config) (*storage.Uploader, error) {
		return storage.NewWithClient(cfg.S3Bucket, cfg.S3Prefix, fake), nil
	}
	t.Cleanup(func() { newUploader = orig })

	blogRoot := t.TempDir()
	content := filepath.Join(blogRoot, "content", "blog")
	static := filepath.Join(blogRoot, "static", "images")
	for _, dir := range []string{content, static} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(content, "my-post.md"), []byte("doc"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(static, "cover.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BLOGSMITH_BLOG_ROOT", blogRoot)
	t.Setenv("AWS_S3_BUCKET", "bucket")
	t.Setenv("AWS_S3_PREFIX", "blog")
	t.Setenv("AWS_REGION", "us-west-2")

	if code := run([]string{"backup", "--log-level=error"}); code != 0 {
		t.Fatalf("backup returned non-zero: %d", code)
	}

	keys := map[string]bool{}
	for _, k := range fake.putKeys {
		keys[k] = true
	}
	if !keys["blog/posts/my-post.md"] {
		t.Fatalf("post not mirrored: %v", fake.putKeys)
	}
	if !keys["blog/images/cover.png"] {
		t.Fatalf("image not mirrored: %v", fake.putKeys)
	}
	copies := map[string]bool{}
	for _, k := range fake.copyKeys {
		copies[k] = true
	}
	if !copies["blog/backup/latest/my-post.md"] {
		t.Fatalf("snapshot not promoted to latest: %v", fake.copyKeys)
	}
}
