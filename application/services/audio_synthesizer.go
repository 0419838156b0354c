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

// maxNarrationRunes is a hard safety cap for the TTS provider; longer texts
// are cut silently.
const maxNarrationRunes = 4000

type audioSynthesizer struct {
	logger      outbound.LoggerPort
	synthesizer outbound.SpeechSynthesizerPort
	mediaStore  outbound.MediaStorePort
	stories     outbound.StoryRepositoryPort
	lock        outbound.GenerationLockPort
}

func NewAudioSynthesizer(logger outbound.LoggerPort, synthesizer outbound.SpeechSynthesizerPort,
	mediaStore outbound.MediaStorePort, stories outbound.StoryRepositoryPort,
	lock outbound.GenerationLockPort) inbound.AudioSynthesizerPort {
	return &audioSynthesizer{
		logger:      logger,
		synthesizer: synthesizer,
		mediaStore:  mediaStore,
		stories:     stories,
		lock:        lock,
	}
}

func (s *audioSynthesizer) Synthesize(ctx context.Context, params inbound.SynthesizeAudioParams) (string, error) {
	if strings.TrimSpace(params.Text) == "" {
		return "", fmt.Errorf("%w: text", domain.ErrMissingParameter)
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

	audio, err := s.synthesizer.Synthesize(ctx, truncateRunes(params.Text, maxNarrationRunes))
	if err != nil {
		s.logger.ErrorWithFields(err, "Speech synthesis failed", map[string]interface{}{
			"story_id": params.StoryID,
			"kind":     params.Kind,
		})
		return "", fmt.Errorf("%w: %v", domain.ErrSynthesisFailed, err)
	}

	objectName := domain.AudioObjectName(params.Kind, params.StoryID, time.Now())
	url, err := s.mediaStore.Upload(ctx, objectName, audio, "audio/mpeg")
	if err != nil {
		s.logger.ErrorWithFields(err, "Audio upload failed", map[string]interface{}{
			"object_name": objectName,
		})
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	if err := s.stories.UpdateAudioURL(ctx, params.Kind, params.StoryID, url); err != nil {
		// The uploaded blob stays behind with no record pointing at it.
		s.logger.WarnWithFields("Audio uploaded but record update failed, blob is orphaned", map[string]interface{}{
			"object_name": objectName,
			"story_id":    params.StoryID,
		})
		return "", fmt.Errorf("%w: %v", domain.ErrRecordUpdateFailed, err)
	}

	s.logger.InfoWithFields("Story narration ready", map[string]interface{}{
		"story_id":  params.StoryID,
		"kind":      params.Kind,
		"audio_url": url,
	})

	return url, nil
}

// acquireLock suppresses a duplicate concurrent synthesis for the same
// story. The lock is advisory: if the lock backend itself fails we log and
// carry on rather than blocking generation.
func (s *audioSynthesizer) acquireLock(ctx context.Context, kind domain.StoryKind, storyID string) (func(), error) {
	key := domain.InFlightKey(domain.AudioArtifact, kind, storyID)
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

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
