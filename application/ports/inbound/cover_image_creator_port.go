package inbound

import (
	"context"

	"github.com/Xalars/fairytales.uz-sub000/domain"
)

type CreateCoverParams struct {
	Title   string
	Content string
	StoryID string
	Kind    domain.StoryKind
}

// CoverImageCreatorPort generates a cover, persists it and writes the stored
// URL back onto the story record. The returned URL is the persisted one, not
// the provider's ephemeral link.
type CoverImageCreatorPort interface {
	Create(ctx context.Context, params CreateCoverParams) (string, error)
}
