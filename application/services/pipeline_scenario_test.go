package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xalars/fairytales.uz-sub000/application/ports/outbound"
	"github.com/Xalars/fairytales.uz-sub000/domain"
)

// The full journey of an AI tale: generate, then moderate the result with a
// benign classifier.
func TestGenerateThenModerateScenario(t *testing.T) {
	generationChat := &stubChatCompleter{
		completions: []string{"Лиса и дружный лес\n\nЖила-была в лесу лиса.\n\nИ все звери с ней дружили."},
	}
	generator := NewStoryGenerator(nopLogger{}, generationChat)

	story, err := generator.Generate(context.Background(), domain.StoryDraft{
		Protagonist: "лиса",
		Setting:     "лес",
		Theme:       "дружба",
		Length:      domain.ShortStoryLength,
		Language:    domain.RussianLanguage,
	})
	require.NoError(t, err)
	require.NotEmpty(t, story.Title)
	require.NotEmpty(t, story.Content)
	assert.Equal(t, 1000, generationChat.requests[0].MaxTokens)

	moderationChat := &stubChatCompleter{completeFn: func(req outbound.ChatCompletionRequest) (string, error) {
		if req.SystemPrompt == classificationSystemPrompt {
			return "APPROVED", nil
		}
		return "Жила-была в лесу лиса, и все звери с ней дружили.", nil
	}}
	moderator := NewStoryModerator(nopLogger{}, moderationChat)

	result, err := moderator.Moderate(context.Background(), story.Title, story.Content)
	require.NoError(t, err)

	assert.True(t, result.Approved)
	assert.NotEmpty(t, result.ImprovedContent)
	assert.Equal(t, story.Content, result.OriginalContent)
}
