package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoryKindTableMapping(t *testing.T) {
	cases := map[StoryKind]string{
		FolkStoryKind:          "folk_tales",
		UserGeneratedStoryKind: "user_stories",
		AIGeneratedStoryKind:   "generated_stories",
	}
	for kind, table := range cases {
		got, err := kind.TableName()
		require.NoError(t, err)
		assert.Equal(t, table, got)
	}

	_, err := StoryKind("community").TableName()
	assert.ErrorIs(t, err, ErrInvalidStoryKind)
	assert.False(t, StoryKind("community").Valid())
}

func TestLanguageNormalize(t *testing.T) {
	assert.Equal(t, UzbekLanguage, UzbekLanguage.Normalize())
	assert.Equal(t, RussianLanguage, StoryLanguage("klingon").Normalize())
	assert.Equal(t, RussianLanguage, StoryLanguage("").Normalize())
}

func TestArtifactObjectNames(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	assert.Equal(t, "folk_tale-7_1700000000000.mp3", AudioObjectName(FolkStoryKind, "tale-7", now))
	assert.Equal(t, "cover-ai_generated-tale-7-1700000000000.png", CoverObjectName(AIGeneratedStoryKind, "tale-7", now))
}

func TestInFlightKeyIsScopedPerArtifact(t *testing.T) {
	audioKey := InFlightKey(AudioArtifact, FolkStoryKind, "tale-7")
	coverKey := InFlightKey(CoverArtifact, FolkStoryKind, "tale-7")
	assert.NotEqual(t, audioKey, coverKey)
}
