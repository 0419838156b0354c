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

const generationTemperature = 0.8

var tokenBudgets = map[domain.StoryLength]int{
	domain.ShortStoryLength:  1000,
	domain.MediumStoryLength: 2000,
	domain.LongStoryLength:   3000,
}

var systemPrompts = map[domain.StoryLanguage]string{
	domain.RussianLanguage: "Ты — добрый сказочник, который сочиняет волшебные сказки для детей. " +
		"Сказки должны быть добрыми, поучительными и подходить детям любого возраста. " +
		"Первой строкой напиши только название сказки, без кавычек и без слова «Название». " +
		"Затем, с новой строки, напиши текст сказки.",
	domain.UzbekLanguage: "Siz bolalar uchun sehrli ertaklar yozadigan mehribon ertakchisiz. " +
		"Ertaklar mehribon, ibratli va har qanday yoshdagi bolalarga mos bo'lishi kerak. " +
		"Birinchi qatorda faqat ertak nomini yozing, qo'shtirnoqsiz va \"Sarlavha\" so'zisiz. " +
		"Keyin yangi qatordan ertak matnini yozing.",
	domain.EnglishLanguage: "You are a kind storyteller who writes magical fairy tales for children. " +
		"The tales must be gentle, instructive and suitable for children of any age. " +
		"On the first line write only the title of the tale, without quotes and without the word \"Title\". " +
		"Then, starting on a new line, write the tale itself.",
}

var lengthPhrases = map[domain.StoryLanguage]map[domain.StoryLength]string{
	domain.RussianLanguage: {
		domain.ShortStoryLength:  "Сказка должна быть короткой, на пару минут чтения.",
		domain.MediumStoryLength: "Сказка должна быть средней длины, минут на пять чтения.",
		domain.LongStoryLength:   "Сказка должна быть длинной и подробной, минут на десять чтения.",
	},
	domain.UzbekLanguage: {
		domain.ShortStoryLength:  "Ertak qisqa bo'lsin, bir-ikki daqiqalik o'qish uchun.",
		domain.MediumStoryLength: "Ertak o'rtacha uzunlikda bo'lsin, besh daqiqalik o'qish uchun.",
		domain.LongStoryLength:   "Ertak uzun va batafsil bo'lsin, o'n daqiqalik o'qish uchun.",
	},
	domain.EnglishLanguage: {
		domain.ShortStoryLength:  "The tale should be short, a couple of minutes of reading.",
		domain.MediumStoryLength: "The tale should be of medium length, about five minutes of reading.",
		domain.LongStoryLength:   "The tale should be long and detailed, about ten minutes of reading.",
	},
}

var userPromptTemplates = map[domain.StoryLanguage]string{
	domain.RussianLanguage: "Сочини сказку, где главный герой — %s. Место действия: %s. Тема сказки: %s. %s",
	domain.UzbekLanguage:   "Bosh qahramoni %s bo'lgan ertak yozing. Voqea joyi: %s. Ertak mavzusi: %s. %s",
	domain.EnglishLanguage: "Write a fairy tale whose protagonist is %s. The setting: %s. The theme: %s. %s",
}

var fallbackTitleTemplates = map[domain.StoryLanguage]string{
	domain.RussianLanguage: "Сказка про %s",
	domain.UzbekLanguage:   "%s haqida ertak",
	domain.EnglishLanguage: "A tale of %s",
}

var titleLabels = []string{"title:", "название:", "sarlavha:"}

const titleQuoteCutset = "\"'«»„“”‘’ \t"

type storyGenerator struct {
	logger outbound.LoggerPort
	chat   outbound.ChatCompleterPort
}

func NewStoryGenerator(logger outbound.LoggerPort, chat outbound.ChatCompleterPort) inbound.StoryGeneratorPort {
	return &storyGenerator{
		logger: logger,
		chat:   chat,
	}
}

func (s *storyGenerator) Generate(ctx context.Context, draft domain.StoryDraft) (domain.GeneratedStory, error) {
	draft, err := normalizeDraft(draft)
	if err != nil {
		return domain.GeneratedStory{}, err
	}

	completion, err := s.chat.Complete(ctx, buildGenerationRequest(draft))
	if err != nil {
		s.logger.ErrorWithFields(err, "Story generation call failed", map[string]interface{}{
			"language": draft.Language,
			"length":   draft.Length,
		})
		return domain.GeneratedStory{}, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	title, content := parseGeneratedStory(completion, draft)
	if content == "" {
		return domain.GeneratedStory{}, fmt.Errorf("%w: model returned an empty completion", domain.ErrGenerationFailed)
	}

	return domain.GeneratedStory{
		Title:      title,
		Content:    content,
		Parameters: draftParameters(draft),
	}, nil
}

func normalizeDraft(draft domain.StoryDraft) (domain.StoryDraft, error) {
	if strings.TrimSpace(draft.Protagonist) == "" {
		return draft, fmt.Errorf("%w: protagonist", domain.ErrMissingParameter)
	}
	if strings.TrimSpace(draft.Setting) == "" {
		return draft, fmt.Errorf("%w: setting", domain.ErrMissingParameter)
	}
	if strings.TrimSpace(draft.Theme) == "" {
		return draft, fmt.Errorf("%w: theme", domain.ErrMissingParameter)
	}
	if !draft.Length.Valid() {
		return draft, fmt.Errorf("%w: length must be short, medium or long", domain.ErrMissingParameter)
	}
	draft.Language = draft.Language.Normalize()
	return draft, nil
}

func buildGenerationRequest(draft domain.StoryDraft) outbound.ChatCompletionRequest {
	userPrompt := fmt.Sprintf(userPromptTemplates[draft.Language],
		draft.Protagonist, draft.Setting, draft.Theme, lengthPhrases[draft.Language][draft.Length])

	return outbound.ChatCompletionRequest{
		SystemPrompt: systemPrompts[draft.Language],
		UserPrompt:   userPrompt,
		Temperature:  generationTemperature,
		MaxTokens:    tokenBudgets[draft.Length],
	}
}

// parseGeneratedStory expects the title alone on the first non-blank line,
// as the system prompt demands. When the model ignores the contract and
// produces a single block of text, the whole completion becomes the content
// and the title falls back to a placeholder built from the protagonist.
func parseGeneratedStory(completion string, draft domain.StoryDraft) (string, string) {
	var lines []string
	for _, line := range strings.Split(completion, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	if len(lines) < 2 {
		title := fmt.Sprintf(fallbackTitleTemplates[draft.Language], draft.Protagonist)
		return title, strings.TrimSpace(completion)
	}

	return cleanTitle(lines[0]), strings.Join(lines[1:], "\n\n")
}

func cleanTitle(raw string) string {
	title := strings.TrimSpace(raw)
	lower := strings.ToLower(title)
	for _, label := range titleLabels {
		if strings.HasPrefix(lower, label) {
			title = strings.TrimSpace(title[len(label):])
			break
		}
	}
	return strings.Trim(title, titleQuoteCutset)
}

func draftParameters(draft domain.StoryDraft) map[string]string {
	return map[string]string{
		"protagonist": draft.Protagonist,
		"setting":     draft.Setting,
		"theme":       draft.Theme,
		"length":      string(draft.Length),
		"language":    string(draft.Language),
		"generatedAt": time.Now().UTC().Format(time.RFC3339),
	}
}
