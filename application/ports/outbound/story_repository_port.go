package outbound

import (
	"context"

	"github.com/Xalars/fairytales.uz-sub000/domain"
)

// StoryRepositoryPort is the row store behind the three story tables. The
// kind argument selects the table; an unknown id yields
// domain.ErrStoryNotFound.
type StoryRepositoryPort interface {
	UpdateAudioURL(ctx context.Context, kind domain.StoryKind, storyID string, url string) error
	UpdateCoverImageURL(ctx context.Context, kind domain.StoryKind, storyID string, url string) error
	InsertUserStory(ctx context.Context, record domain.StoryRecord) (domain.StoryRecord, error)
	InsertGeneratedStory(ctx context.Context, record domain.StoryRecord) (domain.StoryRecord, error)
	GetStory(ctx context.Context, kind domain.StoryKind, storyID string) (domain.StoryRecord, error)
	IncrementLikeCount(ctx context.Context, kind domain.StoryKind, storyID string) (int, error)
}
