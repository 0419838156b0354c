package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Xalars/fairytales.uz-sub000/application/ports/outbound"
	"github.com/Xalars/fairytales.uz-sub000/config"
)

type dalleApiRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Size           string `json:"size"`
	Number         int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

type dalleApiResponse struct {
	Data []struct {
		Url string `json:"url"`
	} `json:"data"`
}

// dalleImageGenerator asks DALL-E for a single square image. The provider
// responds with a short-lived URL, so the adapter immediately downloads the
// bytes before they expire.
type dalleImageGenerator struct {
	ContentFetcher
	logger      outbound.LoggerPort
	dalleConfig *config.DaLLeConfig
}

func NewDalleImageGenerator(contentFetcher ContentFetcher, dalleConfig *config.DaLLeConfig,
	logger outbound.LoggerPort) outbound.ImageGeneratorPort {
	return &dalleImageGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		dalleConfig:    dalleConfig,
	}
}

func (i *dalleImageGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	req, err := i.getRequest(ctx, prompt)
	if err != nil {
		i.logger.Error(err, "Failed to create the image generation request")
		return nil, err
	}

	rawRes, err := i.FetchContent(req)
	if err != nil {
		i.logger.Error(err, "Image generation request failed")
		return nil, err
	}

	var dalleRes dalleApiResponse
	if err := json.Unmarshal(rawRes, &dalleRes); err != nil {
		i.logger.Error(err, "Failed to unmarshal the image generation response")
		return nil, err
	}
	if len(dalleRes.Data) == 0 || dalleRes.Data[0].Url == "" {
		return nil, fmt.Errorf("image provider returned no image URL")
	}

	return i.download(ctx, dalleRes.Data[0].Url)
}

func (i *dalleImageGenerator) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		i.logger.Error(err, "Failed to create the image download request")
		return nil, err
	}

	image, err := i.FetchContent(req)
	if err != nil {
		i.logger.Error(err, "Failed to download the generated image")
		return nil, err
	}

	return image, nil
}

func (i *dalleImageGenerator) getRequest(ctx context.Context, prompt string) (*http.Request, error) {
	reqBody := dalleApiRequest{
		Model:          i.dalleConfig.Model,
		Prompt:         prompt,
		Size:           i.dalleConfig.Size,
		Number:         1,
		ResponseFormat: "url",
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		i.logger.Error(err, "Failed to marshal the image generation request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.dalleConfig.ApiUrl, bytes.NewBuffer(jsonPayload))
	if err != nil {
		i.logger.Error(err, "Failed to create the image generation HTTP request")
		return nil, err
	}

	req.Header.Add("Authorization", "Bearer "+i.dalleConfig.ApiKey)
	req.Header.Add("Content-Type", "application/json")

	return req, nil
}
