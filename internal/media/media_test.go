package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testClock = time.Date(2026, 9, 1, 15, 4, 5, 0, time.UTC)

func TestStyleForImageType(t *testing.T) {
	if StyleForImageType("cover") != "artistic" {
		t.Fatalf("cover style wrong")
	}
	if StyleForImageType("made-up") != "illustration" {
		t.Fatalf("unknown type should default to illustration")
	}
}

func TestAltTextTruncatesAtClause(t *testing.T) {
	if got := AltText("a gopher reading a book, watercolor, soft light"); got != "a gopher reading a book" {
		t.Fatalf("AltText = %q", got)
	}
	long := strings.Repeat("x", 300)
	if got := AltText(long); len(got) != 120 {
		t.Fatalf("long alt text not capped: %d", len(got))
	}
}

func TestSafeFilename(t *testing.T) {
	got := SafeFilename("A Gopher: Reading! Books", "artistic", testClock)
	if got != "20260901-150405_a-gopher-reading-books_artistic.png" {
		t.Fatalf("SafeFilename = %q", got)
	}
	empty := SafeFilename("???", "realistic", testClock)
	if empty != "20260901-150405_image_realistic.png" {
		t.Fatalf("empty fragment fallback wrong: %q", empty)
	}
	long := SafeFilename(strings.Repeat("word ", 30), "artistic", testClock)
	if len(long) > len("20260901-150405_")+40+len("_artistic.png") {
		t.Fatalf("fragment not capped: %q", long)
	}
}

func TestDownloadWritesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "static", "images")
	path, err := NewDownloader(time.Second).Download(context.Background(), srv.URL, dir, "img.png")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil || string(raw) != "png-bytes" {
		t.Fatalf("downloaded content wrong: %q, %v", raw, err)
	}
}

func TestDownloadRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewDownloader(time.Second).Download(context.Background(), srv.URL, t.TempDir(), "img.png"); err == nil {
		t.Fatalf("expected error for 404")
	}
}
