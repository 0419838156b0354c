package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xalars/fairytales.uz-sub000/application/ports/inbound"
	"github.com/Xalars/fairytales.uz-sub000/domain"
)

func newCoverFixture(storyKeys ...string) (*stubImageGenerator, *stubMediaStore, *stubStoryRepository, inbound.CoverImageCreatorPort) {
	images := &stubImageGenerator{image: []byte("png-bytes")}
	store := newStubMediaStore()
	repo := newStubStoryRepository(storyKeys...)
	service := NewCoverImageCreator(nopLogger{}, images, store, repo, newStubGenerationLock())
	return images, store, repo, service
}

func TestCoverImageCreator_ReturnsPersistedURL(t *testing.T) {
	_, store, repo, service := newCoverFixture("folk/tale-1")

	url, err := service.Create(context.Background(), inbound.CreateCoverParams{
		Title:   "Лиса и журавль",
		StoryID: "tale-1",
		Kind:    domain.FolkStoryKind,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://cdn.test/cover-folk-tale-1-"))
	assert.Equal(t, url, repo.records["folk/tale-1"].coverURL)
	assert.Len(t, store.objects, 1)
}

func TestCoverImageCreator_PromptFramingPerKind(t *testing.T) {
	cases := map[domain.StoryKind]string{
		domain.FolkStoryKind:          "folk fairy tale",
		domain.AIGeneratedStoryKind:   "Dreamlike",
		domain.UserGeneratedStoryKind: "hand-drawn",
	}

	for kind, marker := range cases {
		images, _, _, service := newCoverFixture(recordKey(kind, "tale-1"))
		_, err := service.Create(context.Background(), inbound.CreateCoverParams{
			Title:   "Сказка",
			StoryID: "tale-1",
			Kind:    kind,
		})
		require.NoError(t, err)
		require.Len(t, images.receivedPrompts, 1)
		assert.Contains(t, strings.ToLower(images.receivedPrompts[0]), strings.ToLower(marker))
	}
}

func TestCoverImageCreator_TruncatesContentContext(t *testing.T) {
	images, _, _, service := newCoverFixture("folk/tale-1")

	_, err := service.Create(context.Background(), inbound.CreateCoverParams{
		Title:   "Сказка",
		Content: strings.Repeat("о", 2000),
		StoryID: "tale-1",
		Kind:    domain.FolkStoryKind,
	})
	require.NoError(t, err)

	prompt := images.receivedPrompts[0]
	idx := strings.Index(prompt, "The story begins: ")
	require.GreaterOrEqual(t, idx, 0)
	excerpt := prompt[idx+len("The story begins: "):]
	assert.LessOrEqual(t, len([]rune(excerpt)), 500)
}

func TestCoverImageCreator_RegenerationKeepsBothBlobs(t *testing.T) {
	_, store, repo, service := newCoverFixture("folk/tale-1")

	params := inbound.CreateCoverParams{
		Title:   "Сказка",
		StoryID: "tale-1",
		Kind:    domain.FolkStoryKind,
	}
	firstURL, err := service.Create(context.Background(), params)
	require.NoError(t, err)
	secondURL, err := service.Create(context.Background(), params)
	require.NoError(t, err)

	// The record tracks the most recent call; the earlier blob is retained.
	assert.Equal(t, secondURL, repo.records["folk/tale-1"].coverURL)
	if firstURL != secondURL {
		assert.Len(t, store.objects, 2)
	}
}

func TestCoverImageCreator_Validation(t *testing.T) {
	images, _, _, service := newCoverFixture()

	_, err := service.Create(context.Background(), inbound.CreateCoverParams{
		StoryID: "tale-1",
		Kind:    domain.FolkStoryKind,
	})
	assert.ErrorIs(t, err, domain.ErrMissingParameter)

	_, err = service.Create(context.Background(), inbound.CreateCoverParams{
		Title:   "Сказка",
		StoryID: "tale-1",
		Kind:    "unknown",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStoryKind)
	assert.Empty(t, images.receivedPrompts)
}

func TestCoverImageCreator_ProviderFailureAborts(t *testing.T) {
	images := &stubImageGenerator{err: assert.AnError}
	store := newStubMediaStore()
	repo := newStubStoryRepository("folk/tale-1")
	service := NewCoverImageCreator(nopLogger{}, images, store, repo, newStubGenerationLock())

	_, err := service.Create(context.Background(), inbound.CreateCoverParams{
		Title:   "Сказка",
		StoryID: "tale-1",
		Kind:    domain.FolkStoryKind,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrImageGenerationFailed)
	assert.Empty(t, store.objects)
	assert.Empty(t, repo.records["folk/tale-1"].coverURL)
}
