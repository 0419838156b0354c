package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Xalars/fairytales.uz-sub000/domain"
)

var storyKinds = []interface{}{
	string(domain.FolkStoryKind),
	string(domain.UserGeneratedStoryKind),
	string(domain.AIGeneratedStoryKind),
}

type GenerateStoryRequest struct {
	Protagonist string `json:"protagonist" form:"protagonist"`
	Setting     string `json:"setting" form:"setting"`
	Theme       string `json:"theme" form:"theme"`
	Length      string `json:"length" form:"length"`
	Language    string `json:"language" form:"language"`
}

func (r GenerateStoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Protagonist, validation.Required.Error("protagonist is required")),
		validation.Field(&r.Setting, validation.Required.Error("setting is required")),
		validation.Field(&r.Theme, validation.Required.Error("theme is required")),
		validation.Field(&r.Length,
			validation.Required.Error("length is required"),
			validation.In("short", "medium", "long").Error("length must be short, medium or long")),
		// Any unsupported language falls back to Russian downstream.
		validation.Field(&r.Language, validation.Required.Error("language is required")),
	)
}

func (r GenerateStoryRequest) ToDraft() domain.StoryDraft {
	return domain.StoryDraft{
		Protagonist: r.Protagonist,
		Setting:     r.Setting,
		Theme:       r.Theme,
		Length:      domain.StoryLength(r.Length),
		Language:    domain.StoryLanguage(r.Language),
	}
}

type ModerateStoryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r ModerateStoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
	)
}

type GenerateAudioRequest struct {
	Text      string `json:"text"`
	StoryID   string `json:"storyId"`
	StoryType string `json:"storyType"`
}

func (r GenerateAudioRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required.Error("text is required")),
		validation.Field(&r.StoryID, validation.Required.Error("storyId is required")),
		validation.Field(&r.StoryType,
			validation.Required.Error("storyType is required"),
			validation.In(storyKinds...).Error("invalid story type")),
	)
}

type GenerateCoverRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	StoryID   string `json:"storyId"`
	StoryType string `json:"storyType"`
}

func (r GenerateCoverRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.StoryID, validation.Required.Error("storyId is required")),
		validation.Field(&r.StoryType,
			validation.Required.Error("storyType is required"),
			validation.In(storyKinds...).Error("invalid story type")),
	)
}

type PublishStoryRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Language string `json:"language"`
	Kind     string `json:"kind"`
	AuthorID string `json:"authorId"`
	UserID   string `json:"userId"`
}

func (r PublishStoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Content, validation.Required.Error("content is required")),
		validation.Field(&r.Kind,
			validation.Required.Error("kind is required"),
			validation.In(string(domain.UserGeneratedStoryKind), string(domain.AIGeneratedStoryKind)).
				Error("kind must be user_generated or ai_generated")),
	)
}
