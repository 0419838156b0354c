package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Xalars/fairytales.uz-sub000/application/ports/outbound"
	"github.com/Xalars/fairytales.uz-sub000/domain"
	"github.com/Xalars/fairytales.uz-sub000/infrastructure/gin_interface/dto"
)

// StoryController covers the record-store operations the web client invokes
// around the pipeline: publishing a story, reading one and liking one.
type StoryController interface {
	PublishStory(c *gin.Context)
	GetStory(c *gin.Context)
	LikeStory(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type storyController struct {
	logger  outbound.LoggerPort
	stories outbound.StoryRepositoryPort
}

func NewStoryController(logger outbound.LoggerPort, stories outbound.StoryRepositoryPort) StoryController {
	return &storyController{
		logger:  logger,
		stories: stories,
	}
}

func (s *storyController) PublishStory(c *gin.Context) {
	var req dto.PublishStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := domain.StoryRecord{
		Title:    req.Title,
		Content:  req.Content,
		Language: domain.StoryLanguage(req.Language).Normalize(),
	}

	var (
		saved domain.StoryRecord
		err   error
	)
	switch domain.StoryKind(req.Kind) {
	case domain.UserGeneratedStoryKind:
		if req.AuthorID != "" {
			record.AuthorID = &req.AuthorID
		}
		saved, err = s.stories.InsertUserStory(c.Request.Context(), record)
	case domain.AIGeneratedStoryKind:
		if req.UserID != "" {
			record.CreatedByUserID = &req.UserID
		}
		saved, err = s.stories.InsertGeneratedStory(c.Request.Context(), record)
	}
	if err != nil {
		s.logger.Error(err, "Failed to publish story")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save story"})
		return
	}

	c.JSON(http.StatusCreated, dto.NewStoryResponse(saved))
}

func (s *storyController) GetStory(c *gin.Context) {
	kind := domain.StoryKind(c.Param("type"))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story type"})
		return
	}

	record, err := s.stories.GetStory(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrStoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
			return
		}
		s.logger.Error(err, "Failed to load story")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load story"})
		return
	}

	c.JSON(http.StatusOK, dto.NewStoryResponse(record))
}

func (s *storyController) LikeStory(c *gin.Context) {
	kind := domain.StoryKind(c.Param("type"))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story type"})
		return
	}

	likeCount, err := s.stories.IncrementLikeCount(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrStoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
			return
		}
		s.logger.Error(err, "Failed to like story")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to like story"})
		return
	}

	c.JSON(http.StatusOK, dto.LikeStoryResponse{LikeCount: likeCount})
}

func (s *storyController) RegisterRoutes(g *gin.Engine) {
	api := g.Group("/api")
	api.POST("/stories", s.PublishStory)
	api.GET("/stories/:type/:id", s.GetStory)
	api.POST("/stories/:type/:id/like", s.LikeStory)
}
