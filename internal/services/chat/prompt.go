package chat

import (
	"fmt"
	"strings"

	"github.com/ternarybob/dirigo/internal/models"
)

const systemPromptBase = `You are an expert on the NOAA National Weather Service Directives.
Your job is to answer detailed questions based on official documents.
- Assume all questions relate to NOAA or the National Weather Service.
- Prioritize national directives over regional supplementals unless specifically asked.
- Be precise with legal wording (e.g., will, shall, may, should).
- Always cite the most relevant directive in your answer.
- Stick to facts; do not hallucinate or make assumptions.`

// buildSystemPrompt returns the expert system prompt, extended with the
// active scope so the model knows which supplementals are in play.
func buildSystemPrompt(selection models.Selection, region string) string {
	var b strings.Builder
	b.WriteString(systemPromptBase)

	if region != "" && region != models.ScopeNational {
		fmt.Fprintf(&b, "\n- The user works within the %s", region)
		if selection.Office != "" {
			fmt.Fprintf(&b, " (office %s)", selection.Office)
		}
		b.WriteString("; regional supplementals in the provided excerpts apply to that region.")
	}

	return b.String()
}

// buildGroundedQuestion prepends the retrieved passages to the user's
// question so the completion is grounded in directive text.
func buildGroundedQuestion(question string, passages []models.RetrievalPassage) string {
	if len(passages) == 0 {
		return question
	}

	var b strings.Builder
	b.WriteString("Relevant directive excerpts:\n\n")
	for i, p := range passages {
		fmt.Fprintf(&b, "[%d] (%s)\n%s\n\n", i+1, p.SourceFilename, p.Text)
	}
	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}
