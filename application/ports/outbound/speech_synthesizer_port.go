package outbound

import "context"

// SpeechSynthesizerPort converts narration text to mp3 bytes using the
// provider's fixed voice.
type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
