package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xalars/fairytales.uz-sub000/application/ports/inbound"
	"github.com/Xalars/fairytales.uz-sub000/application/ports/outbound"
	"github.com/Xalars/fairytales.uz-sub000/domain"
	"github.com/Xalars/fairytales.uz-sub000/infrastructure/gin_interface/dto"
	"github.com/Xalars/fairytales.uz-sub000/middleware"
)

// PipelineController exposes the four generation pipeline stages plus the
// streaming variant of story generation.
type PipelineController interface {
	GenerateStory(c *gin.Context)
	StreamStory(c *gin.Context)
	ModerateStory(c *gin.Context)
	GenerateAudio(c *gin.Context)
	GenerateCover(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type pipelineController struct {
	logger      outbound.LoggerPort
	generator   inbound.StoryGeneratorPort
	streamer    inbound.StoryStreamerPort
	moderator   inbound.StoryModeratorPort
	synthesizer inbound.AudioSynthesizerPort
	coverMaker  inbound.CoverImageCreatorPort
}

func NewPipelineController(
	logger outbound.LoggerPort,
	generator inbound.StoryGeneratorPort,
	streamer inbound.StoryStreamerPort,
	moderator inbound.StoryModeratorPort,
	synthesizer inbound.AudioSynthesizerPort,
	coverMaker inbound.CoverImageCreatorPort,
) PipelineController {
	return &pipelineController{
		logger:      logger,
		generator:   generator,
		streamer:    streamer,
		moderator:   moderator,
		synthesizer: synthesizer,
		coverMaker:  coverMaker,
	}
}

func (p *pipelineController) GenerateStory(c *gin.Context) {
	var req dto.GenerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	story, err := p.generator.Generate(c.Request.Context(), req.ToDraft())
	if err != nil {
		p.logger.Error(err, "Story generation request failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "generation failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.GenerateStoryResponse{
		Title:      story.Title,
		Content:    story.Content,
		Parameters: story.Parameters,
	})
}

func (p *pipelineController) StreamStory(c *gin.Context) {
	var req dto.GenerateStoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, errCh := p.streamer.Stream(c.Request.Context(), req.ToDraft())

	clientGone := c.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			return
		case err, ok := <-errCh:
			if ok && err != nil {
				p.logger.Error(err, "Story stream failed")
				c.SSEvent("error", "generation failed")
				c.Writer.Flush()
				return
			}
		case token, ok := <-tokens:
			if !ok {
				c.SSEvent("done", "")
				c.Writer.Flush()
				return
			}
			if token == "" {
				continue
			}
			c.SSEvent("token", token)
			c.Writer.Flush()
		}
	}
}

func (p *pipelineController) ModerateStory(c *gin.Context) {
	var req dto.ModerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := p.moderator.Moderate(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		p.logger.Error(err, "Story moderation request failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "moderation failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.ModerateStoryResponse{
		Approved:        result.Approved,
		OriginalContent: result.OriginalContent,
		ImprovedContent: result.ImprovedContent,
		Message:         result.Message,
	})
}

func (p *pipelineController) GenerateAudio(c *gin.Context) {
	var req dto.GenerateAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := p.synthesizer.Synthesize(c.Request.Context(), inbound.SynthesizeAudioParams{
		Text:    req.Text,
		StoryID: req.StoryID,
		Kind:    domain.StoryKind(req.StoryType),
	})
	if err != nil {
		p.logger.Error(err, "Audio synthesis request failed")
		c.JSON(pipelineErrorStatus(err, http.StatusInternalServerError), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.GenerateAudioResponse{
		AudioURL: url,
		Success:  true,
	})
}

func (p *pipelineController) GenerateCover(c *gin.Context) {
	var req dto.GenerateCoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := p.coverMaker.Create(c.Request.Context(), inbound.CreateCoverParams{
		Title:   req.Title,
		Content: req.Content,
		StoryID: req.StoryID,
		Kind:    domain.StoryKind(req.StoryType),
	})
	if err != nil {
		p.logger.Error(err, "Cover generation request failed")
		// Cover errors report 400 by contract with the web client.
		c.JSON(pipelineErrorStatus(err, http.StatusBadRequest), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.GenerateCoverResponse{CoverImageURL: url})
}

func (p *pipelineController) RegisterRoutes(g *gin.Engine) {
	api := g.Group("/api")
	api.POST("/generate-story", p.GenerateStory)
	api.GET("/generate-story/stream", middleware.SSEHeaders(), p.StreamStory)
	api.POST("/moderate-story", p.ModerateStory)
	api.POST("/generate-audio", p.GenerateAudio)
	api.POST("/generate-cover", p.GenerateCover)
}

// pipelineErrorStatus refines the stage's default error status for the error
// classes the client can act on.
func pipelineErrorStatus(err error, fallback int) int {
	switch {
	case errors.Is(err, domain.ErrMissingParameter), errors.Is(err, domain.ErrInvalidStoryKind):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrGenerationInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStoryNotFound):
		return http.StatusNotFound
	default:
		return fallback
	}
}
