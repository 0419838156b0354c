package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/Xalars/fairytales.uz-sub000/application/ports/outbound"
	"github.com/Xalars/fairytales.uz-sub000/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string)                                           {}
func (nopLogger) InfoWithFields(string, map[string]interface{})         {}
func (nopLogger) Error(error, string)                                   {}
func (nopLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (nopLogger) Debug(string)                                          {}
func (nopLogger) DebugWithFields(string, map[string]interface{})        {}
func (nopLogger) Warn(string)                                           {}
func (nopLogger) WarnWithFields(string, map[string]interface{})         {}

// stubChatCompleter records every request and answers them in order from
// completions, or with completeFn when set.
type stubChatCompleter struct {
	mu           sync.Mutex
	requests     []outbound.ChatCompletionRequest
	completions  []string
	completeFn   func(req outbound.ChatCompletionRequest) (string, error)
	streamTokens []string
	streamErr    error
}

func (s *stubChatCompleter) Complete(_ context.Context, req outbound.ChatCompletionRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.completeFn != nil {
		return s.completeFn(req)
	}
	if len(s.completions) == 0 {
		return "", fmt.Errorf("no completion configured")
	}
	next := s.completions[0]
	s.completions = s.completions[1:]
	return next, nil
}

func (s *stubChatCompleter) CompleteStream(_ context.Context, req outbound.ChatCompletionRequest) (<-chan string, <-chan error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	out := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errCh)
		for _, token := range s.streamTokens {
			out <- token
		}
		if s.streamErr != nil {
			errCh <- s.streamErr
		}
	}()
	return out, errCh
}

func (s *stubChatCompleter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

type stubSpeechSynthesizer struct {
	receivedTexts []string
	audio         []byte
	err           error
}

func (s *stubSpeechSynthesizer) Synthesize(_ context.Context, text string) ([]byte, error) {
	s.receivedTexts = append(s.receivedTexts, text)
	if s.err != nil {
		return nil, s.err
	}
	return s.audio, nil
}

type stubImageGenerator struct {
	receivedPrompts []string
	image           []byte
	err             error
}

func (s *stubImageGenerator) Generate(_ context.Context, prompt string) ([]byte, error) {
	s.receivedPrompts = append(s.receivedPrompts, prompt)
	if s.err != nil {
		return nil, s.err
	}
	return s.image, nil
}

// stubMediaStore keeps every uploaded blob; nothing is ever deleted, mirroring
// the real store's overwrite-only behavior.
type stubMediaStore struct {
	objects map[string][]byte
	err     error
}

func newStubMediaStore() *stubMediaStore {
	return &stubMediaStore{objects: make(map[string][]byte)}
}

func (s *stubMediaStore) Upload(_ context.Context, objectName string, data []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.objects[objectName] = data
	return "https://cdn.test/" + objectName, nil
}

type storedURLs struct {
	audioURL string
	coverURL string
}

type stubStoryRepository struct {
	records   map[string]*storedURLs
	updateErr error
}

func newStubStoryRepository(keys ...string) *stubStoryRepository {
	records := make(map[string]*storedURLs)
	for _, key := range keys {
		records[key] = &storedURLs{}
	}
	return &stubStoryRepository{records: records}
}

func recordKey(kind domain.StoryKind, storyID string) string {
	return string(kind) + "/" + storyID
}

func (s *stubStoryRepository) UpdateAudioURL(_ context.Context, kind domain.StoryKind, storyID string, url string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	record, ok := s.records[recordKey(kind, storyID)]
	if !ok {
		return domain.ErrStoryNotFound
	}
	record.audioURL = url
	return nil
}

func (s *stubStoryRepository) UpdateCoverImageURL(_ context.Context, kind domain.StoryKind, storyID string, url string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	record, ok := s.records[recordKey(kind, storyID)]
	if !ok {
		return domain.ErrStoryNotFound
	}
	record.coverURL = url
	return nil
}

func (s *stubStoryRepository) InsertUserStory(_ context.Context, record domain.StoryRecord) (domain.StoryRecord, error) {
	return record, nil
}

func (s *stubStoryRepository) InsertGeneratedStory(_ context.Context, record domain.StoryRecord) (domain.StoryRecord, error) {
	return record, nil
}

func (s *stubStoryRepository) GetStory(_ context.Context, kind domain.StoryKind, storyID string) (domain.StoryRecord, error) {
	if _, ok := s.records[recordKey(kind, storyID)]; !ok {
		return domain.StoryRecord{}, domain.ErrStoryNotFound
	}
	return domain.StoryRecord{ID: storyID}, nil
}

func (s *stubStoryRepository) IncrementLikeCount(_ context.Context, kind domain.StoryKind, storyID string) (int, error) {
	if _, ok := s.records[recordKey(kind, storyID)]; !ok {
		return 0, domain.ErrStoryNotFound
	}
	return 1, nil
}

type stubGenerationLock struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func newStubGenerationLock() *stubGenerationLock {
	return &stubGenerationLock{held: make(map[string]bool)}
}

func (s *stubGenerationLock) Acquire(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	if s.held[key] {
		return false, nil
	}
	s.held[key] = true
	return true, nil
}

func (s *stubGenerationLock) Release(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.held, key)
}
