package index

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkText(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, chunkText("", 1200))
		assert.Empty(t, chunkText("\n\n \n\n", 1200))
	})

	t.Run("small paragraphs are merged", func(t *testing.T) {
		text := "First paragraph.\n\nSecond paragraph.\n\nThird paragraph."
		chunks := chunkText(text, 1200)
		assert.Len(t, chunks, 1)
		assert.Contains(t, chunks[0], "First paragraph.")
		assert.Contains(t, chunks[0], "Third paragraph.")
	})

	t.Run("paragraphs split at the chunk limit", func(t *testing.T) {
		para := strings.Repeat("Directive wording matters. ", 20) // ~540 chars
		text := para + "\n\n" + para
		chunks := chunkText(text, 600)
		assert.Len(t, chunks, 2)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), 600)
		}
	})

	t.Run("oversize paragraph is hard split", func(t *testing.T) {
		para := strings.Repeat("Watches shall be issued when conditions warrant. ", 40) // ~2000 chars
		chunks := chunkText(para, 500)
		assert.Greater(t, len(chunks), 1)
		for _, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), 500)
			assert.NotEmpty(t, strings.TrimSpace(chunk))
		}
	})

	t.Run("split prefers sentence boundaries", func(t *testing.T) {
		para := strings.Repeat("A complete sentence ends here. ", 30)
		chunks := chunkText(para, 400)
		for _, chunk := range chunks[:len(chunks)-1] {
			assert.True(t, strings.HasSuffix(chunk, "."), "chunk should end at a sentence boundary: %q", chunk)
		}
	})

	t.Run("zero limit falls back to default", func(t *testing.T) {
		chunks := chunkText("Short text.", 0)
		assert.Equal(t, []string{"Short text."}, chunks)
	})
}

func TestSplitPoint(t *testing.T) {
	assert.Equal(t, 5, splitPoint("short", 100))

	// Sentence end past the midpoint wins
	text := "First sentence here. Second sentence follows after it."
	cut := splitPoint(text, 30)
	assert.Equal(t, ".", string(text[cut-1]))

	// No sentence end or whitespace: hard cut at the limit
	assert.Equal(t, 10, splitPoint(strings.Repeat("x", 50), 10))
}
