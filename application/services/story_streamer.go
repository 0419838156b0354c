package services

import (
	"context"

	"github.com/Xalars/fairytales.uz-sub000/application/ports/inbound"
	"github.com/Xalars/fairytales.uz-sub000/application/ports/outbound"
	"github.com/Xalars/fairytales.uz-sub000/domain"
)

type storyStreamer struct {
	logger outbound.LoggerPort
	chat   outbound.ChatCompleterPort
}

// NewStoryStreamer builds the streaming variant of story generation. Prompt
// composition and validation are shared with the non-streaming stage; only
// the delivery differs.
func NewStoryStreamer(logger outbound.LoggerPort, chat outbound.ChatCompleterPort) inbound.StoryStreamerPort {
	return &storyStreamer{
		logger: logger,
		chat:   chat,
	}
}

func (s *storyStreamer) Stream(ctx context.Context, draft domain.StoryDraft) (<-chan string, <-chan error) {
	draft, err := normalizeDraft(draft)
	if err != nil {
		out := make(chan string)
		errCh := make(chan error, 1)
		errCh <- err
		close(out)
		close(errCh)
		return out, errCh
	}

	s.logger.DebugWithFields("Starting story token stream", map[string]interface{}{
		"language": draft.Language,
		"length":   draft.Length,
	})

	return s.chat.CompleteStream(ctx, buildGenerationRequest(draft))
}
