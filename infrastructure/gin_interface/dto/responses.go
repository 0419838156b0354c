package dto

import (
	"time"

	"github.com/Xalars/fairytales.uz-sub000/domain"
)

type GenerateStoryResponse struct {
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Parameters map[string]string `json:"parameters"`
}

type ModerateStoryResponse struct {
	Approved        bool   `json:"approved"`
	OriginalContent string `json:"originalContent,omitempty"`
	ImprovedContent string `json:"improvedContent,omitempty"`
	Message         string `json:"message"`
}

type GenerateAudioResponse struct {
	AudioURL string `json:"audioUrl"`
	Success  bool   `json:"success"`
}

type GenerateCoverResponse struct {
	CoverImageURL string `json:"coverImageUrl"`
}

type LikeStoryResponse struct {
	LikeCount int `json:"likeCount"`
}

type StoryResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Content       string            `json:"content"`
	Language      string            `json:"language"`
	AudioURL      *string           `json:"audioUrl"`
	ImageURL      *string           `json:"imageUrl"`
	CoverImageURL *string           `json:"coverImageUrl"`
	LikeCount     int               `json:"likeCount"`
	AuthorID      *string           `json:"authorId,omitempty"`
	CreatedByID   *string           `json:"createdByUserId,omitempty"`
	Parameters    map[string]string `json:"parameters,omitempty"`
	CreatedAt     string            `json:"createdAt"`
	UpdatedAt     string            `json:"updatedAt"`
}

func NewStoryResponse(record domain.StoryRecord) StoryResponse {
	return StoryResponse{
		ID:            record.ID,
		Title:         record.Title,
		Content:       record.Content,
		Language:      string(record.Language),
		AudioURL:      record.AudioURL,
		ImageURL:      record.ImageURL,
		CoverImageURL: record.CoverImageURL,
		LikeCount:     record.LikeCount,
		AuthorID:      record.AuthorID,
		CreatedByID:   record.CreatedByUserID,
		Parameters:    record.Parameters,
		CreatedAt:     record.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     record.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
