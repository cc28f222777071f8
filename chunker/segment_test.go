package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBlocks(t *testing.T) {
	t.Run("double blank line splits entries", func(t *testing.T) {
		lines := []string{"Job A", "- did X", "", "", "Job B", "- did Y"}
		blocks := splitBlocks(lines)
		require.Len(t, blocks, 2)
		assert.Equal(t, "Job A\n- did X\n\n", blocks[0])
		assert.Equal(t, "Job B\n- did Y", blocks[1])
	})

	t.Run("single blank line does not split", func(t *testing.T) {
		lines := []string{"Job A", "- did X", "", "Job B", "- did Y"}
		blocks := splitBlocks(lines)
		require.Len(t, blocks, 1)
	})

	t.Run("no blanks is one block", func(t *testing.T) {
		blocks := splitBlocks([]string{"one", "two", "three"})
		require.Len(t, blocks, 1)
		assert.Equal(t, "one\ntwo\nthree", blocks[0])
	})

	t.Run("leading blanks are dropped", func(t *testing.T) {
		blocks := splitBlocks([]string{"", "", "Job A", "- did X"})
		require.Len(t, blocks, 1)
		assert.Equal(t, "Job A\n- did X", blocks[0])
	})

	t.Run("empty input yields no blocks", func(t *testing.T) {
		assert.Empty(t, splitBlocks(nil))
		assert.Empty(t, splitBlocks([]string{"", "  ", ""}))
	})

	t.Run("three entries", func(t *testing.T) {
		lines := []string{"A", "", "", "B", "", "", "C"}
		blocks := splitBlocks(lines)
		require.Len(t, blocks, 3)
	})
}
