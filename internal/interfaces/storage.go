package interfaces

import (
	"github.com/ternarybob/dirigo/internal/models"
)

// DirectiveStorage persists classified directives
type DirectiveStorage interface {
	SaveDirective(directive *models.Directive) error
	SaveDirectives(directives []*models.Directive) error
	GetDirective(id string) (*models.Directive, error)
	GetDirectiveByFilename(filename string) (*models.Directive, error)

	// ListDirectives returns the full corpus in stable filename order
	ListDirectives() ([]*models.Directive, error)
	ListDirectivesByScope(scope string) ([]*models.Directive, error)

	CountDirectives() (int, error)
	GetStats() (*models.DirectiveStats, error)
	ClearAll() error
}

// StorageManager provides access to all storage backends
type StorageManager interface {
	DirectiveStorage() DirectiveStorage
	Close() error
}
