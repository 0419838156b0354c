package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Xalars/fairytales.uz-sub000/application/ports/outbound"
	"github.com/Xalars/fairytales.uz-sub000/config"
)

type openAIChatCompleter struct {
	logger     outbound.LoggerPort
	client     *openai.Client
	model      string
	workerPool outbound.TaskDispatcher
}

func NewOpenAIChatCompleter(logger outbound.LoggerPort, gptConfig *config.GptConfig,
	workerPool outbound.TaskDispatcher) outbound.ChatCompleterPort {
	clientConfig := openai.DefaultConfig(gptConfig.ApiKey)
	if gptConfig.ApiUrl != "" {
		clientConfig.BaseURL = gptConfig.ApiUrl
	}

	return &openAIChatCompleter{
		logger:     logger,
		client:     openai.NewClientWithConfig(clientConfig),
		model:      gptConfig.Model,
		workerPool: workerPool,
	}
}

func (o *openAIChatCompleter) Complete(ctx context.Context, req outbound.ChatCompletionRequest) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, o.buildRequest(req, false))
	if err != nil {
		o.logger.Error(err, "Chat completion request failed")
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	o.logger.DebugWithFields("Chat completion finished", map[string]interface{}{
		"model":             o.model,
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
	})

	return resp.Choices[0].Message.Content, nil
}

func (o *openAIChatCompleter) CompleteStream(ctx context.Context, req outbound.ChatCompletionRequest) (<-chan string, <-chan error) {
	out := make(chan string)
	errCh := make(chan error, 1)

	stream, err := o.client.CreateChatCompletionStream(ctx, o.buildRequest(req, true))
	if err != nil {
		o.logger.Error(err, "Failed to open chat completion stream")
		errCh <- err
		close(out)
		close(errCh)
		return out, errCh
	}

	submitErr := o.workerPool.Submit(func() {
		defer close(out)
		defer close(errCh)
		defer func() {
			if err := stream.Close(); err != nil {
				o.logger.Error(err, "Failed to close chat completion stream")
			}
		}()

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				o.logger.Error(err, "Chat completion stream broke")
				errCh <- err
				return
			}
			if len(chunk.Choices) == 0 {
				continue
			}

			select {
			case <-ctx.Done():
				return
			case out <- chunk.Choices[0].Delta.Content:
			}
		}
	})
	if submitErr != nil {
		o.logger.Error(submitErr, "Failed to submit stream reader to worker pool")
		errCh <- submitErr
		close(out)
		close(errCh)
	}

	return out, errCh
}

func (o *openAIChatCompleter) buildRequest(req outbound.ChatCompletionRequest, stream bool) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      stream,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.UserPrompt,
			},
		},
	}
}
