package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xalars/fairytales.uz-sub000/application/ports/outbound"
	"github.com/Xalars/fairytales.uz-sub000/domain"
)

func validDraft() domain.StoryDraft {
	return domain.StoryDraft{
		Protagonist: "лиса",
		Setting:     "лес",
		Theme:       "дружба",
		Length:      domain.ShortStoryLength,
		Language:    domain.RussianLanguage,
	}
}

func TestStoryGenerator_Generate(t *testing.T) {
	chat := &stubChatCompleter{completions: []string{"Лиса и её друзья\n\nЖила-была лиса.\n\nИ подружилась она со всеми."}}
	generator := NewStoryGenerator(nopLogger{}, chat)

	story, err := generator.Generate(context.Background(), validDraft())
	require.NoError(t, err)

	assert.Equal(t, "Лиса и её друзья", story.Title)
	assert.Equal(t, "Жила-была лиса.\n\nИ подружилась она со всеми.", story.Content)
	assert.Equal(t, "short", story.Parameters["length"])
	assert.Equal(t, "russian", story.Parameters["language"])
	assert.Equal(t, "лиса", story.Parameters["protagonist"])
	assert.NotEmpty(t, story.Parameters["generatedAt"])

	require.Len(t, chat.requests, 1)
	req := chat.requests[0]
	assert.Equal(t, 1000, req.MaxTokens)
	assert.InDelta(t, 0.8, req.Temperature, 0.001)
	assert.Contains(t, req.UserPrompt, "лиса")
	assert.Contains(t, req.UserPrompt, "лес")
	assert.Contains(t, req.UserPrompt, "дружба")
}

func TestStoryGenerator_TokenBudgets(t *testing.T) {
	cases := map[domain.StoryLength]int{
		domain.ShortStoryLength:  1000,
		domain.MediumStoryLength: 2000,
		domain.LongStoryLength:   3000,
	}

	for length, budget := range cases {
		chat := &stubChatCompleter{completions: []string{"Title line\n\nBody line"}}
		generator := NewStoryGenerator(nopLogger{}, chat)

		draft := validDraft()
		draft.Length = length

		_, err := generator.Generate(context.Background(), draft)
		require.NoError(t, err)
		assert.Equal(t, budget, chat.requests[0].MaxTokens)
	}
}

func TestStoryGenerator_UnknownLanguageFallsBackToRussian(t *testing.T) {
	russianChat := &stubChatCompleter{completions: []string{"Название\n\nТекст"}}
	unknownChat := &stubChatCompleter{completions: []string{"Название\n\nТекст"}}

	russianDraft := validDraft()
	unknownDraft := validDraft()
	unknownDraft.Language = "klingon"

	_, err := NewStoryGenerator(nopLogger{}, russianChat).Generate(context.Background(), russianDraft)
	require.NoError(t, err)
	story, err := NewStoryGenerator(nopLogger{}, unknownChat).Generate(context.Background(), unknownDraft)
	require.NoError(t, err)

	assert.Equal(t, russianChat.requests[0].SystemPrompt, unknownChat.requests[0].SystemPrompt)
	assert.Equal(t, russianChat.requests[0].UserPrompt, unknownChat.requests[0].UserPrompt)
	assert.Equal(t, "russian", story.Parameters["language"])
}

func TestStoryGenerator_StripsTitleLabelsAndQuotes(t *testing.T) {
	completions := []string{
		"Название: «Храбрый ёжик»\n\nЖил-был ёжик.",
		"Title: \"The Brave Hedgehog\"\n\nOnce upon a time.",
		"«Храбрый ёжик»\n\nЖил-был ёжик.",
	}
	titles := []string{"Храбрый ёжик", "The Brave Hedgehog", "Храбрый ёжик"}

	for i, completion := range completions {
		chat := &stubChatCompleter{completions: []string{completion}}
		story, err := NewStoryGenerator(nopLogger{}, chat).Generate(context.Background(), validDraft())
		require.NoError(t, err)
		assert.Equal(t, titles[i], story.Title)
		assert.False(t, strings.ContainsAny(story.Title, "\"«»"))
	}
}

func TestStoryGenerator_SingleLineCompletionFallsBack(t *testing.T) {
	chat := &stubChatCompleter{completions: []string{"Жила-была лиса, и всё у неё было хорошо."}}
	story, err := NewStoryGenerator(nopLogger{}, chat).Generate(context.Background(), validDraft())
	require.NoError(t, err)

	assert.Equal(t, "Сказка про лиса", story.Title)
	assert.Equal(t, "Жила-была лиса, и всё у неё было хорошо.", story.Content)
}

func TestStoryGenerator_ValidationRejectsBeforeProviderCall(t *testing.T) {
	cases := []domain.StoryDraft{
		{Setting: "лес", Theme: "дружба", Length: domain.ShortStoryLength, Language: domain.RussianLanguage},
		{Protagonist: "лиса", Theme: "дружба", Length: domain.ShortStoryLength, Language: domain.RussianLanguage},
		{Protagonist: "лиса", Setting: "лес", Length: domain.ShortStoryLength, Language: domain.RussianLanguage},
		{Protagonist: "лиса", Setting: "лес", Theme: "дружба", Length: "epic", Language: domain.RussianLanguage},
	}

	for _, draft := range cases {
		chat := &stubChatCompleter{}
		_, err := NewStoryGenerator(nopLogger{}, chat).Generate(context.Background(), draft)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingParameter)
		assert.Zero(t, chat.callCount())
	}
}

func TestStoryGenerator_ProviderFailureSurfacesGenerationError(t *testing.T) {
	chat := &stubChatCompleter{completeFn: func(outbound.ChatCompletionRequest) (string, error) {
		return "", assert.AnError
	}}
	_, err := NewStoryGenerator(nopLogger{}, chat).Generate(context.Background(), validDraft())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}
