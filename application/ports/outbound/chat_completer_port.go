package outbound

import "context"

type ChatCompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

// ChatCompleterPort is the single LLM dependency shared by the generation
// and moderation stages.
type ChatCompleterPort interface {
	Complete(ctx context.Context, req ChatCompletionRequest) (string, error)
	// CompleteStream emits completion tokens as they arrive. Both channels
	// are closed when the stream ends; the first error cancels the stream.
	CompleteStream(ctx context.Context, req ChatCompletionRequest) (<-chan string, <-chan error)
}
