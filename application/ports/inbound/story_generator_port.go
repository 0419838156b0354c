package inbound

import (
	"context"

	"github.com/Xalars/fairytales.uz-sub000/domain"
)

type StoryGeneratorPort interface {
	Generate(ctx context.Context, draft domain.StoryDraft) (domain.GeneratedStory, error)
}
