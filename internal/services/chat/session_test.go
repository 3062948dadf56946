package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/dirigo/internal/models"
)

func TestSessionSelect(t *testing.T) {
	catalog, err := models.DefaultCatalog()
	assert.NoError(t, err)

	session := NewSessionContext()
	assert.True(t, session.Selection.IsZero())

	selection := session.Select(catalog, "", "OUN")
	assert.Equal(t, "Southern Region", selection.Region)
	assert.Equal(t, "OUN", selection.Office)

	// Switching region drops the now-foreign office
	selection = session.Select(catalog, "Western Region", "")
	assert.Equal(t, "Western Region", selection.Region)
	assert.Empty(t, selection.Office)
}

func TestSessionHistory(t *testing.T) {
	session := NewSessionContext()
	session.AppendTurn("What is a watch?", "A watch means conditions are favorable.")

	req := session.Request("And a warning?")
	assert.Equal(t, "And a warning?", req.Question)
	assert.Len(t, req.History, 2)
	assert.Equal(t, "user", req.History[0].Role)
	assert.Equal(t, "assistant", req.History[1].Role)

	// The request holds a copy: later turns do not mutate it
	session.AppendTurn("And a warning?", "A warning means the event is occurring.")
	assert.Len(t, req.History, 2)
}

func TestSessionIDs(t *testing.T) {
	a := NewSessionContext()
	b := NewSessionContext()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Contains(t, a.ID, "session_")
}
