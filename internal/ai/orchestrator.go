package ai

import (
	"context"
	"log/slog"
)

// Orchestrator owns the configured providers and routes each request to
// one of them. The provider list is assembled once at startup, in
// preference order, and never changes for the life of the process.
type Orchestrator struct {
	providers []Provider
}

// New builds an orchestrator over the given providers. Order matters: when
// a request does not name a provider, the first provider offering the
// required capability wins.
func New(providers ...Provider) *Orchestrator {
	return &Orchestrator{providers: providers}
}

// Providers returns the descriptors of all configured providers.
func (o *Orchestrator) Providers() []Descriptor {
	descs := make([]Descriptor, 0, len(o.providers))
	for _, p := range o.providers {
		descs = append(descs, p.Descriptor())
	}
	return descs
}

// GenerateText dispatches a single text generation call. providerName may
// be empty, in which case the first text-capable provider is used.
func (o *Orchestrator) GenerateText(ctx context.Context, prompt, providerName string, maxTokens int, temperature float64) (TextResult, error) {
	p := o.pick(providerName, CapabilityText)
	if p == nil {
		return TextResult{}, &ConfigurationError{Capability: CapabilityText}
	}
	tp, ok := p.(TextProvider)
	if !ok {
		return TextResult{}, &ConfigurationError{Capability: CapabilityText}
	}
	slog.Debug("dispatching text generation", "provider", p.Descriptor().Name, "maxTokens", maxTokens)
	return tp.GenerateText(ctx, TextRequest{Prompt: prompt, MaxTokens: maxTokens, Temperature: temperature})
}

// GenerateImage dispatches a single image generation call.
func (o *Orchestrator) GenerateImage(ctx context.Context, prompt, size, quality, providerName string) (ImageResult, error) {
	p := o.pick(providerName, CapabilityImage)
	if p == nil {
		return ImageResult{}, &ConfigurationError{Capability: CapabilityImage}
	}
	ip, ok := p.(ImageProvider)
	if !ok {
		return ImageResult{}, &ConfigurationError{Capability: CapabilityImage}
	}
	slog.Debug("dispatching image generation", "provider", p.Descriptor().Name, "size", size, "quality", quality)
	return ip.GenerateImage(ctx, ImageRequest{Prompt: prompt, Size: size, Quality: quality})
}

// AnalyzeImage dispatches a vision query about the image at url. It fails
// with CapabilityError when providers exist but none supports vision.
func (o *Orchestrator) AnalyzeImage(ctx context.Context, url, query string) (TextResult, error) {
	p := o.pick("", CapabilityVision)
	if p == nil {
		if len(o.providers) == 0 {
			return TextResult{}, &ConfigurationError{Capability: CapabilityVision}
		}
		return TextResult{}, &CapabilityError{Capability: CapabilityVision}
	}
	vp, ok := p.(VisionProvider)
	if !ok {
		return TextResult{}, &CapabilityError{Capability: CapabilityVision}
	}
	slog.Debug("dispatching image analysis", "provider", p.Descriptor().Name)
	return vp.AnalyzeImage(ctx, url, query)
}

// pick returns the named provider when it is configured and capable, else
// the first capable provider in configured order, else nil.
func (o *Orchestrator) pick(name string, c Capability) Provider {
	if name != "" {
		for _, p := range o.providers {
			d := p.Descriptor()
			if d.Name == name && d.Has(c) {
				return p
			}
		}
	}
	for _, p := range o.providers {
		if p.Descriptor().Has(c) {
			return p
		}
	}
	return nil
}
