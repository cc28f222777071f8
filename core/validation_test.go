package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validChunk() *Chunk {
	return &Chunk{
		ChunkID:    "r1_0",
		SourceID:   "r1",
		Content:    "Led migration of payment services to Kubernetes",
		Type:       ChunkTypeExperience,
		ChunkIndex: 0,
	}
}

func TestValidateChunk(t *testing.T) {
	t.Run("valid chunk", func(t *testing.T) {
		require.NoError(t, ValidateChunk(validChunk()))
	})

	t.Run("nil chunk", func(t *testing.T) {
		err := ValidateChunk(nil)
		assert.ErrorIs(t, err, ErrInvalidChunk)
	})

	t.Run("empty content", func(t *testing.T) {
		c := validChunk()
		c.Content = ""
		err := ValidateChunk(c)
		assert.ErrorIs(t, err, ErrInvalidChunk)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("empty source id", func(t *testing.T) {
		c := validChunk()
		c.SourceID = ""
		err := ValidateChunk(c)
		assert.ErrorIs(t, err, ErrEmptySourceID)
	})

	t.Run("bogus chunk type", func(t *testing.T) {
		c := validChunk()
		c.Type = ChunkType("hobbies")
		err := ValidateChunk(c)
		assert.ErrorIs(t, err, ErrInvalidChunkType)
	})

	t.Run("negative index", func(t *testing.T) {
		c := validChunk()
		c.ChunkIndex = -1
		assert.ErrorIs(t, ValidateChunk(c), ErrInvalidChunk)
	})
}

func TestValidateChunkType(t *testing.T) {
	for _, ct := range []ChunkType{
		ChunkTypeSummary, ChunkTypeExperience, ChunkTypeProject,
		ChunkTypeSkills, ChunkTypeEducation, ChunkTypeCertifications,
		ChunkTypeAwards, ChunkTypeUnknown,
	} {
		assert.NoError(t, ValidateChunkType(ct), string(ct))
	}
	assert.ErrorIs(t, ValidateChunkType("résumé"), ErrInvalidChunkType)
}

func TestValidateStrategy(t *testing.T) {
	assert.NoError(t, ValidateStrategy(StrategyBullets))
	assert.NoError(t, ValidateStrategy(StrategyExperiences))
	assert.ErrorIs(t, ValidateStrategy("paragraphs"), ErrInvalidStrategy)
}
