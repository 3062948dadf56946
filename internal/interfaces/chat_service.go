package interfaces

import (
	"context"

	"github.com/ternarybob/dirigo/internal/models"
)

// ChatRequest represents one user turn with optional scoping
type ChatRequest struct {
	// User's question
	Question string `json:"question"`

	// Conversation history (optional)
	History []Message `json:"history,omitempty"`

	// Region/office selection; must resolve to a single region
	Selection models.Selection `json:"selection"`
}

// ChatResponse represents the assembled response for one turn
type ChatResponse struct {
	// Assembled answer text including the sources block
	Answer string `json:"answer"`

	// Citations appended to the answer
	Citations []models.Citation `json:"citations,omitempty"`

	// Passages that grounded the answer
	Passages []models.RetrievalPassage `json:"passages,omitempty"`

	// Region the retrieval was scoped to
	Region string `json:"region"`

	// LowCoverage signals the regional subset was empty and only
	// national directives were searched
	LowCoverage bool `json:"low_coverage,omitempty"`
}

// ChatService answers directive questions with retrieval-grounded completions
type ChatService interface {
	Ask(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
	HealthCheck(ctx context.Context) error
}
