package media

import "context"

// ImageCodec optimizes a downloaded image in place. Pixel-level work
// (resizing, recompression) lives behind this boundary; the pipeline only
// hands over a path.
type ImageCodec interface {
	Optimize(ctx context.Context, path string) error
}

// OptimizeIfConfigured runs the codec when one is present. A nil codec
// means the image is kept as downloaded.
func OptimizeIfConfigured(ctx context.Context, codec ImageCodec, path string) error {
	if codec == nil {
		return nil
	}
	return codec.Optimize(ctx, path)
}
