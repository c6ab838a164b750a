package provider

import (
	"context"
	"errors"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"blogsmith/internal/ai"
)

// Models holds the model names the OpenAI provider uses per capability.
type Models struct {
	Text   string
	Image  string
	Vision string
}

// DefaultModels returns the model set used when configuration is silent.
func DefaultModels() Models {
	return Models{Text: "gpt-4o-mini", Image: "dall-e-3", Vision: "gpt-4o"}
}

// OpenAI wraps the official SDK client. It offers text, image, and vision
// capabilities. A base URL override covers Azure-style deployments.
type OpenAI struct {
	apiKey string
	models Models
	sdk    openai.Client
}

// NewOpenAI builds an OpenAI client. baseURL is optional (empty string
// uses the default API endpoint); timeout applies per request.
func NewOpenAI(apiKey, baseURL string, models Models, timeout time.Duration) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	if models.Text == "" {
		models.Text = DefaultModels().Text
	}
	if models.Image == "" {
		models.Image = DefaultModels().Image
	}
	if models.Vision == "" {
		models.Vision = DefaultModels().Vision
	}
	return &OpenAI{apiKey: apiKey, models: models, sdk: openai.NewClient(opts...)}
}

func (o *OpenAI) Descriptor() ai.Descriptor {
	return ai.Descriptor{
		Name:           "openai",
		Capabilities:   []ai.Capability{ai.CapabilityText, ai.CapabilityImage, ai.CapabilityVision},
		HasCredentials: o.apiKey != "",
	}
}

func (o *OpenAI) GenerateText(ctx context.Context, req ai.TextRequest) (ai.TextResult, error) {
	resp, err := o.sdk.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.models.Text),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
		Temperature: openai.Float(req.Temperature),
	})
	if err != nil {
		return ai.TextResult{}, o.normalizeErr(err)
	}
	if len(resp.Choices) == 0 {
		return ai.TextResult{}, &ai.ProviderError{Provider: "openai", Detail: "empty choices"}
	}
	return ai.TextResult{Content: resp.Choices[0].Message.Content}, nil
}

func (o *OpenAI) GenerateImage(ctx context.Context, req ai.ImageRequest) (ai.ImageResult, error) {
	resp, err := o.sdk.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:   openai.ImageModel(o.models.Image),
		Prompt:  req.Prompt,
		Size:    openai.ImageGenerateParamsSize(req.Size),
		Quality: openai.ImageGenerateParamsQuality(req.Quality),
		N:       openai.Int(1),
	})
	if err != nil {
		return ai.ImageResult{}, o.normalizeErr(err)
	}
	if len(resp.Data) == 0 {
		return ai.ImageResult{}, &ai.ProviderError{Provider: "openai", Detail: "empty image data"}
	}
	return ai.ImageResult{
		URL:           resp.Data[0].URL,
		RevisedPrompt: resp.Data[0].RevisedPrompt,
	}, nil
}

// AnalyzeImage embeds the image URL beside the text query in a single user
// message, per the vision wire contract. The reply is plain text.
func (o *OpenAI) AnalyzeImage(ctx context.Context, url, query string) (ai.TextResult, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(query),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: url}),
	}
	resp, err := o.sdk.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.models.Vision),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
		MaxTokens: openai.Int(1000),
	})
	if err != nil {
		return ai.TextResult{}, o.normalizeErr(err)
	}
	if len(resp.Choices) == 0 {
		return ai.TextResult{}, &ai.ProviderError{Provider: "openai", Detail: "empty choices"}
	}
	return ai.TextResult{Content: resp.Choices[0].Message.Content}, nil
}

func (o *OpenAI) normalizeErr(err error) error {
	if isTimeout(err) {
		return &ai.TimeoutError{Provider: "openai", Err: err}
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &ai.ProviderError{Provider: "openai", StatusCode: apiErr.StatusCode, Detail: apiErr.Message}
	}
	return &ai.ProviderError{Provider: "openai", Detail: err.Error()}
}
