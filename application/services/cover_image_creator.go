package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Xalars/fairytales.uz-sub000/application/ports/inbound"
	"github.com/Xalars/fairytales.uz-sub000/application/ports/outbound"
	"github.com/Xalars/fairytales.uz-sub000/domain"
)

// maxPromptContextRunes caps how much of the story text is embedded into the
// image prompt.
const maxPromptContextRunes = 500

type coverImageCreator struct {
	logger         outbound.LoggerPort
	imageGenerator outbound.ImageGeneratorPort
	mediaStore     outbound.MediaStorePort
	stories        outbound.StoryRepositoryPort
	lock           outbound.GenerationLockPort
}

func NewCoverImageCreator(logger outbound.LoggerPort, imageGenerator outbound.ImageGeneratorPort,
	mediaStore outbound.MediaStorePort, stories outbound.StoryRepositoryPort,
	lock outbound.GenerationLockPort) inbound.CoverImageCreatorPort {
	return &coverImageCreator{
		logger:         logger,
		imageGenerator: imageGenerator,
		mediaStore:     mediaStore,
		stories:        stories,
		lock:           lock,
	}
}

func (s *coverImageCreator) Create(ctx context.Context, params inbound.CreateCoverParams) (string, error) {
	if strings.TrimSpace(params.Title) == "" {
		return "", fmt.Errorf("%w: title", domain.ErrMissingParameter)
	}
	if strings.TrimSpace(params.StoryID) == "" {
		return "", fmt.Errorf("%w: storyId", domain.ErrMissingParameter)
	}
	if !params.Kind.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStoryKind, string(params.Kind))
	}

	release, err := s.acquireLock(ctx, params.Kind, params.StoryID)
	if err != nil {
		return "", err
	}
	defer release()

	image, err := s.imageGenerator.Generate(ctx, buildCoverPrompt(params))
	if err != nil {
		s.logger.ErrorWithFields(err, "Cover image generation failed", map[string]interface{}{
			"story_id": params.StoryID,
			"kind":     params.Kind,
		})
		return "", fmt.Errorf("%w: %v", domain.ErrImageGenerationFailed, err)
	}

	objectName := domain.CoverObjectName(params.Kind, params.StoryID, time.Now())
	url, err := s.mediaStore.Upload(ctx, objectName, image, "image/png")
	if err != nil {
		s.logger.ErrorWithFields(err, "Cover upload failed", map[string]interface{}{
			"object_name": objectName,
		})
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	if err := s.stories.UpdateCoverImageURL(ctx, params.Kind, params.StoryID, url); err != nil {
		s.logger.WarnWithFields("Cover uploaded but record update failed, blob is orphaned", map[string]interface{}{
			"object_name": objectName,
			"story_id":    params.StoryID,
		})
		return "", fmt.Errorf("%w: %v", domain.ErrRecordUpdateFailed, err)
	}

	s.logger.InfoWithFields("Story cover ready", map[string]interface{}{
		"story_id":  params.StoryID,
		"kind":      params.Kind,
		"cover_url": url,
	})

	return url, nil
}

// buildCoverPrompt frames the illustration differently per story kind: folk
// tales get a traditional book-plate look, AI tales a dreamlike one, user
// tales a hand-drawn one.
func buildCoverPrompt(params inbound.CreateCoverParams) string {
	var framing string
	switch params.Kind {
	case domain.FolkStoryKind:
		framing = fmt.Sprintf("A classic illustrated book cover for the traditional folk fairy tale %q, "+
			"in the style of old hand-painted fairy tale book plates with ornamental borders", params.Title)
	case domain.AIGeneratedStoryKind:
		framing = fmt.Sprintf("A dreamlike, whimsical book cover for the magical tale %q, "+
			"soft glowing colors, imaginative fantasy scenery", params.Title)
	default:
		framing = fmt.Sprintf("A warm hand-drawn book cover for the children's story %q, "+
			"cosy storybook style with gentle colors", params.Title)
	}

	prompt := framing + ". Children's book illustration, no text or lettering on the image."
	if excerpt := strings.TrimSpace(params.Content); excerpt != "" {
		prompt += " The story begins: " + truncateRunes(excerpt, maxPromptContextRunes)
	}
	return prompt
}

func (s *coverImageCreator) acquireLock(ctx context.Context, kind domain.StoryKind, storyID string) (func(), error) {
	key := domain.InFlightKey(domain.CoverArtifact, kind, storyID)
	acquired, err := s.lock.Acquire(ctx, key)
	if err != nil {
		s.logger.Warn("Generation lock unavailable, proceeding without it")
		return func() {}, nil
	}
	if !acquired {
		return nil, domain.ErrGenerationInProgress
	}
	return func() { s.lock.Release(ctx, key) }, nil
}
