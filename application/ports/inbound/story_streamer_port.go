package inbound

import (
	"context"

	"github.com/Xalars/fairytales.uz-sub000/domain"
)

// StoryStreamerPort is the streaming variant of story generation: tokens are
// emitted as the model produces them. Both channels close when generation
// finishes; an error cancels the stream.
type StoryStreamerPort interface {
	Stream(ctx context.Context, draft domain.StoryDraft) (<-chan string, <-chan error)
}
