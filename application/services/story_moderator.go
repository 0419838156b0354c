package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Xalars/fairytales.uz-sub000/application/ports/inbound"
	"github.com/Xalars/fairytales.uz-sub000/application/ports/outbound"
	"github.com/Xalars/fairytales.uz-sub000/domain"
)

const (
	approvedVerdict = "APPROVED"
	rejectedVerdict = "REJECTED"

	improvementTemperature = 0.3

	classificationSystemPrompt = "Ты — модератор детских сказок. Оцени присланную сказку по правилам: " +
		"текст подходит детям; нет грубости, пошлости и жестокости; текст связный, осмысленный и не является спамом; " +
		"у сказки добрый, положительный посыл. " +
		"Ответь ровно одним словом: " + approvedVerdict + ", если сказка подходит, или " + rejectedVerdict + ", если не подходит. " +
		"Никаких других слов в ответе быть не должно."

	improvementSystemPrompt = "Ты — литературный редактор детских сказок. Улучши присланный текст: " +
		"исправь грамматику и пунктуацию, сделай стиль живым и подходящим для чтения детям. " +
		"Сохрани сюжет, героев и смысл без изменений. В ответе верни только улучшенный текст сказки, без пояснений."

	rejectedMessage = "К сожалению, сказка не прошла модерацию. Пожалуйста, проверьте текст и попробуйте ещё раз."
	approvedMessage = "Сказка одобрена! Мы немного отполировали текст перед публикацией."
)

type storyModerator struct {
	logger outbound.LoggerPort
	chat   outbound.ChatCompleterPort
}

func NewStoryModerator(logger outbound.LoggerPort, chat outbound.ChatCompleterPort) inbound.StoryModeratorPort {
	return &storyModerator{
		logger: logger,
		chat:   chat,
	}
}

func (s *storyModerator) Moderate(ctx context.Context, title string, content string) (domain.ModerationResult, error) {
	if strings.TrimSpace(title) == "" {
		return domain.ModerationResult{}, fmt.Errorf("%w: title", domain.ErrMissingParameter)
	}
	if strings.TrimSpace(content) == "" {
		return domain.ModerationResult{}, fmt.Errorf("%w: content", domain.ErrMissingParameter)
	}

	submission := fmt.Sprintf("Название: %s\n\n%s", title, content)

	verdict, err := s.chat.Complete(ctx, outbound.ChatCompletionRequest{
		SystemPrompt: classificationSystemPrompt,
		UserPrompt:   submission,
		Temperature:  0,
		MaxTokens:    10,
	})
	if err != nil {
		s.logger.Error(err, "Moderation classification call failed")
		return domain.ModerationResult{}, fmt.Errorf("%w: %v", domain.ErrModerationFailed, err)
	}

	// Anything that is not the exact approval token counts as a rejection,
	// including ambiguous or malformed verdicts.
	if strings.ToUpper(strings.TrimSpace(verdict)) != approvedVerdict {
		s.logger.InfoWithFields("Story rejected by moderation", map[string]interface{}{
			"verdict": strings.TrimSpace(verdict),
		})
		return domain.ModerationResult{
			Approved: false,
			Message:  rejectedMessage,
		}, nil
	}

	improved, err := s.chat.Complete(ctx, outbound.ChatCompletionRequest{
		SystemPrompt: improvementSystemPrompt,
		UserPrompt:   submission,
		Temperature:  improvementTemperature,
		MaxTokens:    tokenBudgets[domain.LongStoryLength],
	})
	if err != nil {
		s.logger.Error(err, "Moderation improvement call failed")
		return domain.ModerationResult{}, fmt.Errorf("%w: %v", domain.ErrModerationFailed, err)
	}

	return domain.ModerationResult{
		Approved:        true,
		OriginalContent: content,
		ImprovedContent: strings.TrimSpace(improved),
		Message:         approvedMessage,
	}, nil
}
