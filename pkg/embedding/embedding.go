package embedding

import "context"

// Encoder is a minimal abstraction over sentence-level embedding providers.
// It intentionally hides concrete backends to preserve dependency direction.
type Encoder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
