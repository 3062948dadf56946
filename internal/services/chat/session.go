package chat

import (
	"github.com/google/uuid"
	"github.com/ternarybob/dirigo/internal/interfaces"
	"github.com/ternarybob/dirigo/internal/models"
)

// SessionContext owns the mutable state of one conversation: the growing
// history and the active region/office selection. Each session is
// process-local and owned by a single caller; no locking is needed.
type SessionContext struct {
	ID        string
	History   []interfaces.Message
	Selection models.Selection
}

// NewSessionContext creates an empty session
func NewSessionContext() *SessionContext {
	return &SessionContext{
		ID: "session_" + uuid.New().String(),
	}
}

// Select applies a region/office change and returns the resulting
// selection. Picking an office derives its parent region; picking a region
// clears an office that does not belong to it.
func (s *SessionContext) Select(catalog *models.Catalog, newRegion, newOffice string) models.Selection {
	s.Selection = models.NextSelection(catalog, s.Selection, newRegion, newOffice)
	return s.Selection
}

// AppendTurn records a completed question/answer exchange
func (s *SessionContext) AppendTurn(question, answer string) {
	s.History = append(s.History,
		interfaces.Message{Role: "user", Content: question},
		interfaces.Message{Role: "assistant", Content: answer},
	)
}

// Request builds the chat request for the next question using the session's
// accumulated history and selection.
func (s *SessionContext) Request(question string) *interfaces.ChatRequest {
	history := make([]interfaces.Message, len(s.History))
	copy(history, s.History)
	return &interfaces.ChatRequest{
		Question:  question,
		History:   history,
		Selection: s.Selection,
	}
}
