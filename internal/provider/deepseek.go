package provider

import (
	"context"
	"errors"
	"net"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"blogsmith/internal/ai"
)

const (
	deepSeekBaseURL      = "https://api.deepseek.com"
	deepSeekDefaultModel = "deepseek-chat"
)

// DeepSeek calls the DeepSeek chat completions API directly over HTTP.
// It offers the text capability only.
type DeepSeek struct {
	apiKey string
	model  string
	client *resty.Client
}

// NewDeepSeek builds a DeepSeek client. baseURL and model are optional
// (empty strings use the production endpoint and the default chat
// model); timeout applies per call.
func NewDeepSeek(apiKey, baseURL, model string, timeout time.Duration) *DeepSeek {
	if baseURL == "" {
		baseURL = deepSeekBaseURL
	}
	if model == "" {
		model = deepSeekDefaultModel
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "blogsmith/1.0")
	return &DeepSeek{apiKey: apiKey, model: model, client: client}
}

func (d *DeepSeek) Descriptor() ai.Descriptor {
	return ai.Descriptor{
		Name:           "deepseek",
		Capabilities:   []ai.Capability{ai.CapabilityText},
		HasCredentials: d.apiKey != "",
	}
}

// GenerateText issues one chat completion request. The body layout is the
// fixed chat-completions wire contract; the text payload lives at
// choices[0].message.content.
func (d *DeepSeek) GenerateText(ctx context.Context, req ai.TextRequest) (ai.TextResult, error) {
	payload := map[string]any{
		"model": d.model,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
		"max_tokens":  req.MaxTokens,
		"temperature": req.Temperature,
		"stream":      false,
	}

	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+d.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/v1/chat/completions")
	if err != nil {
		if isTimeout(err) {
			return ai.TextResult{}, &ai.TimeoutError{Provider: "deepseek", Err: err}
		}
		return ai.TextResult{}, &ai.ProviderError{Provider: "deepseek", Detail: err.Error()}
	}
	if resp.StatusCode() != 200 {
		return ai.TextResult{}, &ai.ProviderError{
			Provider:   "deepseek",
			StatusCode: resp.StatusCode(),
			Detail:     truncate(string(resp.Body()), 200),
		}
	}

	content := gjson.GetBytes(resp.Body(), "choices.0.message.content")
	if !content.Exists() {
		return ai.TextResult{}, &ai.ProviderError{
			Provider: "deepseek",
			Detail:   "malformed response: missing choices[0].message.content",
		}
	}
	return ai.TextResult{Content: content.String()}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
