package chat

import (
	"strings"

	"github.com/ternarybob/dirigo/internal/models"
)

const (
	// sourcesSeparator introduces the citation block appended to an answer
	sourcesSeparator = "\n\n**Sources:**\n"

	// emptyAnswerFallback replaces a blank completion so the user never
	// sees an empty turn
	emptyAnswerFallback = "I could not generate an answer for that question. Please try rephrasing it."
)

// Assemble produces the final answer text. With no citations the answer is
// returned unchanged; otherwise the sources block is appended, one markdown
// link bullet per citation. A blank answer is substituted with a fixed
// fallback before citations are appended.
func Assemble(answerText string, citations []models.Citation) string {
	if strings.TrimSpace(answerText) == "" {
		answerText = emptyAnswerFallback
	}

	if len(citations) == 0 {
		return answerText
	}

	var b strings.Builder
	b.WriteString(answerText)
	b.WriteString(sourcesSeparator)
	for i, c := range citations {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- [")
		b.WriteString(c.Excerpt)
		b.WriteString("...](")
		b.WriteString(c.SourceURL)
		b.WriteString(")")
	}

	return b.String()
}
