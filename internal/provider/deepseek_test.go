package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"blogsmith/internal/ai"
)

func TestDeepSeekSendsWireContract(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("request body not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hello from deepseek"}}]}`))
	}))
	defer srv.Close()

	d := NewDeepSeek("sk-ds", srv.URL, "", 5*time.Second)
	res, err := d.GenerateText(context.Background(), ai.TextRequest{Prompt: "write a post", MaxTokens: 4000, Temperature: 0.7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Content != "hello from deepseek" {
		t.Fatalf("content mismatch: %q", res.Content)
	}
	if gotAuth != "Bearer sk-ds" {
		t.Fatalf("auth header mismatch: %q", gotAuth)
	}
	if gotBody["model"] != "deepseek-chat" {
		t.Fatalf("model mismatch: %v", gotBody["model"])
	}
	if gotBody["stream"] != false {
		t.Fatalf("stream should be false, got %v", gotBody["stream"])
	}
	msgs, ok := gotBody["messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", gotBody["messages"])
	}
	msg := msgs[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "write a post" {
		t.Fatalf("message mismatch: %v", msg)
	}
}

func TestDeepSeekUsesConfiguredModel(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("request body not JSON: %v", err)
		}
		gotModel, _ = body["model"].(string)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	d := NewDeepSeek("sk-ds", srv.URL, "deepseek-reasoner", 5*time.Second)
	if _, err := d.GenerateText(context.Background(), ai.TextRequest{Prompt: "p", MaxTokens: 100, Temperature: 0.7}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotModel != "deepseek-reasoner" {
		t.Fatalf("configured model not sent, got %q", gotModel)
	}
}

func TestDeepSeekNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	d := NewDeepSeek("sk-ds", srv.URL, "", 5*time.Second)
	_, err := d.GenerateText(context.Background(), ai.TextRequest{Prompt: "p", MaxTokens: 100, Temperature: 0.7})
	var provErr *ai.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status mismatch: %d", provErr.StatusCode)
	}
}

func TestDeepSeekMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	d := NewDeepSeek("sk-ds", srv.URL, "", 5*time.Second)
	_, err := d.GenerateText(context.Background(), ai.TextRequest{Prompt: "p", MaxTokens: 100, Temperature: 0.7})
	var provErr *ai.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError for malformed payload, got %v", err)
	}
}

func TestDeepSeekErrorDetailKeepsRuneBoundary(t *testing.T) {
	// 199 ASCII bytes followed by a 3-byte rune; a 200-byte cut would
	// land inside the rune.
	body := strings.Repeat("x", 199) + "界"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	d := NewDeepSeek("sk-ds", srv.URL, "", 5*time.Second)
	_, err := d.GenerateText(context.Background(), ai.TextRequest{Prompt: "p", MaxTokens: 100, Temperature: 0.7})
	var provErr *ai.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if !utf8.ValidString(provErr.Detail) {
		t.Fatalf("detail is not valid UTF-8: %q", provErr.Detail)
	}
	if provErr.Detail != strings.Repeat("x", 199) {
		t.Fatalf("detail not trimmed to rune boundary: %q", provErr.Detail)
	}
}

func TestDeepSeekTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	d := NewDeepSeek("sk-ds", srv.URL, "", 20*time.Millisecond)
	_, err := d.GenerateText(context.Background(), ai.TextRequest{Prompt: "p", MaxTokens: 100, Temperature: 0.7})
	var toErr *ai.TimeoutError
	if !errors.As(err, &toErr) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
}
