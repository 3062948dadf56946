package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dirigo/internal/interfaces"
	"github.com/ternarybob/dirigo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// DirectiveStorage implements the DirectiveStorage interface for Badger
type DirectiveStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewDirectiveStorage creates a new DirectiveStorage instance
func NewDirectiveStorage(db *BadgerDB, logger arbor.ILogger) interfaces.DirectiveStorage {
	return &DirectiveStorage{
		db:     db,
		logger: logger,
	}
}

func (s *DirectiveStorage) SaveDirective(directive *models.Directive) error {
	if directive.ID == "" {
		return fmt.Errorf("directive ID is required")
	}

	now := time.Now()
	if directive.CreatedAt.IsZero() {
		directive.CreatedAt = now
	}
	directive.UpdatedAt = now

	if err := s.db.Store().Upsert(directive.ID, directive); err != nil {
		return fmt.Errorf("failed to save directive: %w", err)
	}
	return nil
}

func (s *DirectiveStorage) SaveDirectives(directives []*models.Directive) error {
	for _, directive := range directives {
		if err := s.SaveDirective(directive); err != nil {
			return err
		}
	}
	return nil
}

func (s *DirectiveStorage) GetDirective(id string) (*models.Directive, error) {
	var directive models.Directive
	if err := s.db.Store().Get(id, &directive); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("directive not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get directive: %w", err)
	}
	return &directive, nil
}

func (s *DirectiveStorage) GetDirectiveByFilename(filename string) (*models.Directive, error) {
	var directives []models.Directive
	err := s.db.Store().Find(&directives, badgerhold.Where("Filename").Eq(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to find directive: %w", err)
	}
	if len(directives) == 0 {
		return nil, fmt.Errorf("directive not found for filename: %s", filename)
	}
	return &directives[0], nil
}

// ListDirectives returns the full corpus sorted by filename so callers see a
// stable order regardless of Badger's key iteration order.
func (s *DirectiveStorage) ListDirectives() ([]*models.Directive, error) {
	var directives []models.Directive
	if err := s.db.Store().Find(&directives, nil); err != nil {
		return nil, fmt.Errorf("failed to list directives: %w", err)
	}

	sort.Slice(directives, func(i, j int) bool {
		return directives[i].Filename < directives[j].Filename
	})

	result := make([]*models.Directive, len(directives))
	for i := range directives {
		result[i] = &directives[i]
	}
	return result, nil
}

func (s *DirectiveStorage) ListDirectivesByScope(scope string) ([]*models.Directive, error) {
	var directives []models.Directive
	if err := s.db.Store().Find(&directives, badgerhold.Where("Scope").Eq(scope)); err != nil {
		return nil, fmt.Errorf("failed to list directives by scope: %w", err)
	}

	sort.Slice(directives, func(i, j int) bool {
		return directives[i].Filename < directives[j].Filename
	})

	result := make([]*models.Directive, len(directives))
	for i := range directives {
		result[i] = &directives[i]
	}
	return result, nil
}

func (s *DirectiveStorage) CountDirectives() (int, error) {
	count, err := s.db.Store().Count(&models.Directive{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count directives: %w", err)
	}
	return int(count), nil
}

func (s *DirectiveStorage) GetStats() (*models.DirectiveStats, error) {
	directives, err := s.ListDirectives()
	if err != nil {
		return nil, err
	}

	stats := &models.DirectiveStats{
		TotalDirectives:   len(directives),
		DirectivesByScope: make(map[string]int),
		LastUpdated:       time.Now(),
	}
	for _, d := range directives {
		scope := d.Scope
		if scope == "" {
			scope = "ungrouped"
		}
		stats.DirectivesByScope[scope]++
		if d.IsNational() {
			stats.NationalDirectives++
		}
	}

	return stats, nil
}

func (s *DirectiveStorage) ClearAll() error {
	return s.db.Store().DeleteMatching(&models.Directive{}, nil)
}
