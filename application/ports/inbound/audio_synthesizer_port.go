package inbound

import (
	"context"

	"github.com/Xalars/fairytales.uz-sub000/domain"
)

type SynthesizeAudioParams struct {
	Text    string
	StoryID string
	Kind    domain.StoryKind
}

// AudioSynthesizerPort narrates a story, stores the mp3 and writes the
// resulting URL back onto the story record.
type AudioSynthesizerPort interface {
	Synthesize(ctx context.Context, params SynthesizeAudioParams) (string, error)
}
