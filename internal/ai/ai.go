package ai

import "context"

// Capability names one thing a provider backend can do.
type Capability string

const (
	CapabilityText   Capability = "text"
	CapabilityImage  Capability = "image"
	CapabilityVision Capability = "vision"
)

// Descriptor describes one configured provider backend. Descriptors are
// built once at startup from available credentials and never mutated.
type Descriptor struct {
	Name           string
	Capabilities   []Capability
	HasCredentials bool
}

func (d Descriptor) Has(c Capability) bool {
	for _, cap := range d.Capabilities {
		if cap == c {
			return true
		}
	}
	return false
}

// TextRequest carries the parameters for one text generation call.
type TextRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// ImageRequest carries the parameters for one image generation call.
type ImageRequest struct {
	Prompt  string
	Size    string
	Quality string
}

// TextResult is the normalized output of a text or vision call. Providers
// never leak their native response shape past this boundary.
type TextResult struct {
	Content string
}

// ImageResult is the normalized output of an image generation call.
type ImageResult struct {
	URL           string
	RevisedPrompt string
}

// Provider is a configured backend handle. Implementations additionally
// satisfy TextProvider, ImageProvider, or VisionProvider according to
// their declared capabilities.
type Provider interface {
	Descriptor() Descriptor
}

// TextProvider generates text from a prompt in a single HTTP call.
type TextProvider interface {
	Provider
	GenerateText(ctx context.Context, req TextRequest) (TextResult, error)
}

// ImageProvider generates one image from a prompt in a single HTTP call.
type ImageProvider interface {
	Provider
	GenerateImage(ctx context.Context, req ImageRequest) (ImageResult, error)
}

// VisionProvider answers a query about an image reachable at a URL.
type VisionProvider interface {
	Provider
	AnalyzeImage(ctx context.Context, url, query string) (TextResult, error)
}
