package post

import (
	"fmt"
	"os"
	"path/filepath"
)

// Save writes a post document into the content directory as <slug>.md.
// An existing file is only replaced when overwrite is set.
func Save(contentDir, slug, document string, overwrite bool) (string, error) {
	if err := os.MkdirAll(contentDir, 0o755); err != nil {
		return "", fmt.Errorf("creating content dir: %w", err)
	}
	path := filepath.Join(contentDir, slug+".md")
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("post already exists: %s", path)
		}
	}
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		return "", fmt.Errorf("writing post: %w", err)
	}
	return path, nil
}
