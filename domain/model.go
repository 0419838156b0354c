package domain

import (
	"fmt"
	"time"
)

type StoryKind string

const (
	FolkStoryKind          StoryKind = "folk"
	UserGeneratedStoryKind StoryKind = "user_generated"
	AIGeneratedStoryKind   StoryKind = "ai_generated"
)

// TableName maps a story kind to the table that owns its rows. Exactly one
// table owns a given story id; the kind is never stored in a column.
func (k StoryKind) TableName() (string, error) {
	switch k {
	case FolkStoryKind:
		return "folk_tales", nil
	case UserGeneratedStoryKind:
		return "user_stories", nil
	case AIGeneratedStoryKind:
		return "generated_stories", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStoryKind, string(k))
	}
}

func (k StoryKind) Valid() bool {
	_, err := k.TableName()
	return err == nil
}

type StoryLength string

const (
	ShortStoryLength  StoryLength = "short"
	MediumStoryLength StoryLength = "medium"
	LongStoryLength   StoryLength = "long"
)

func (l StoryLength) Valid() bool {
	switch l {
	case ShortStoryLength, MediumStoryLength, LongStoryLength:
		return true
	}
	return false
}

type StoryLanguage string

const (
	RussianLanguage StoryLanguage = "russian"
	UzbekLanguage   StoryLanguage = "uzbek"
	EnglishLanguage StoryLanguage = "english"
)

// Normalize falls back to Russian for anything outside the supported set.
func (l StoryLanguage) Normalize() StoryLanguage {
	switch l {
	case RussianLanguage, UzbekLanguage, EnglishLanguage:
		return l
	}
	return RussianLanguage
}

// StoryDraft is the transient user input consumed by the generation stage.
// It is never persisted.
type StoryDraft struct {
	Protagonist string
	Setting     string
	Theme       string
	Length      StoryLength
	Language    StoryLanguage
}

// GeneratedStory is the generation stage result. Parameters echoes the draft
// fields plus a generation timestamp; the story stays ephemeral until the
// user explicitly saves it.
type GeneratedStory struct {
	Title      string
	Content    string
	Parameters map[string]string
}

type ModerationResult struct {
	Approved        bool
	OriginalContent string
	ImprovedContent string
	Message         string
}

// StoryRecord is the shape shared by the three story tables. AuthorID is set
// only for user stories, CreatedByUserID and Parameters only for AI stories.
type StoryRecord struct {
	ID              string            `db:"id"`
	Title           string            `db:"title"`
	Content         string            `db:"content"`
	Language        StoryLanguage     `db:"language"`
	AudioURL        *string           `db:"audio_url"`
	ImageURL        *string           `db:"image_url"`
	CoverImageURL   *string           `db:"cover_image_url"`
	LikeCount       int               `db:"like_count"`
	AuthorID        *string           `db:"author_id"`
	CreatedByUserID *string           `db:"created_by_user_id"`
	Parameters      map[string]string `db:"parameters"`
	CreatedAt       time.Time         `db:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at"`
}

type ArtifactKind string

const (
	AudioArtifact ArtifactKind = "audio"
	CoverArtifact ArtifactKind = "cover"
)

// AudioObjectName builds the storage key for a synthesized narration.
// Regeneration produces a fresh key; old blobs are left in place.
func AudioObjectName(kind StoryKind, storyID string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%d.mp3", kind, storyID, now.UnixMilli())
}

// CoverObjectName builds the storage key for a generated cover image.
func CoverObjectName(kind StoryKind, storyID string, now time.Time) string {
	return fmt.Sprintf("cover-%s-%s-%d.png", kind, storyID, now.UnixMilli())
}

// InFlightKey keys the advisory lock that suppresses duplicate concurrent
// media generation for the same story artifact.
func InFlightKey(artifact ArtifactKind, kind StoryKind, storyID string) string {
	return fmt.Sprintf("genlock:%s:%s:%s", artifact, kind, storyID)
}
