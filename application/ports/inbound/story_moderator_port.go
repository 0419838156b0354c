package inbound

import (
	"context"

	"github.com/Xalars/fairytales.uz-sub000/domain"
)

type StoryModeratorPort interface {
	Moderate(ctx context.Context, title string, content string) (domain.ModerationResult, error)
}
