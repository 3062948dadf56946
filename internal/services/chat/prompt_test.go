package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/dirigo/internal/models"
)

func TestBuildSystemPrompt(t *testing.T) {
	t.Run("national scope uses the base prompt only", func(t *testing.T) {
		prompt := buildSystemPrompt(models.Selection{}, models.ScopeNational)
		assert.Equal(t, systemPromptBase, prompt)
	})

	t.Run("regional scope is appended", func(t *testing.T) {
		prompt := buildSystemPrompt(models.Selection{Region: "Southern Region"}, "Southern Region")
		assert.True(t, strings.HasPrefix(prompt, systemPromptBase))
		assert.Contains(t, prompt, "The user works within the Southern Region")
		assert.NotContains(t, prompt, "office")
	})

	t.Run("office is named when selected", func(t *testing.T) {
		selection := models.Selection{Region: "Southern Region", Office: "OUN"}
		prompt := buildSystemPrompt(selection, "Southern Region")
		assert.Contains(t, prompt, "(office OUN)")
	})
}

func TestBuildGroundedQuestion(t *testing.T) {
	t.Run("no passages returns the bare question", func(t *testing.T) {
		assert.Equal(t, "What is a watch?", buildGroundedQuestion("What is a watch?", nil))
	})

	t.Run("passages are numbered with filenames", func(t *testing.T) {
		passages := []models.RetrievalPassage{
			{Text: "A watch means conditions are favorable.", SourceFilename: "pd01005004curr.pdf"},
			{Text: "A warning means the event is occurring.", SourceFilename: "pd01005017curr.pdf"},
		}

		got := buildGroundedQuestion("What is a watch?", passages)
		assert.True(t, strings.HasPrefix(got, "Relevant directive excerpts:\n\n"))
		assert.Contains(t, got, "[1] (pd01005004curr.pdf)\nA watch means conditions are favorable.")
		assert.Contains(t, got, "[2] (pd01005017curr.pdf)\nA warning means the event is occurring.")
		assert.True(t, strings.HasSuffix(got, "Question: What is a watch?"))
	})
}
