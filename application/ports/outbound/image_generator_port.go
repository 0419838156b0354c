package outbound

import "context"

// ImageGeneratorPort requests a single square image and returns the bytes.
// The provider hands back an ephemeral URL; the adapter performs the second
// network hop to fetch the actual image data.
type ImageGeneratorPort interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}
