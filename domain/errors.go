package domain

import "errors"

var (
	ErrInvalidStoryKind      = errors.New("invalid story type")
	ErrMissingParameter      = errors.New("missing required parameter")
	ErrGenerationFailed      = errors.New("story generation failed")
	ErrModerationFailed      = errors.New("story moderation failed")
	ErrSynthesisFailed       = errors.New("audio synthesis failed")
	ErrImageGenerationFailed = errors.New("cover image generation failed")
	ErrDownloadFailed        = errors.New("media download failed")
	ErrUploadFailed          = errors.New("media upload failed")
	ErrRecordUpdateFailed    = errors.New("story record update failed")
	ErrStoryNotFound         = errors.New("story not found")
	ErrGenerationInProgress  = errors.New("generation already in progress for this story")
)
