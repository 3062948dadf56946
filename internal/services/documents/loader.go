package documents

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dirigo/internal/interfaces"
	"github.com/ternarybob/dirigo/internal/services/classifier"
)

// LoaderService reads the local directive store recursively, extracts PDF
// text, classifies each document, and persists the result.
type LoaderService struct {
	directivesDir string
	extractor     interfaces.PDFExtractor
	classifier    *classifier.Service
	storage       interfaces.DirectiveStorage
	logger        arbor.ILogger
}

// NewLoaderService creates a loader over the given directives directory
func NewLoaderService(
	directivesDir string,
	extractor interfaces.PDFExtractor,
	classifierService *classifier.Service,
	storage interfaces.DirectiveStorage,
	logger arbor.ILogger,
) *LoaderService {
	return &LoaderService{
		directivesDir: directivesDir,
		extractor:     extractor,
		classifier:    classifierService,
		storage:       storage,
		logger:        logger,
	}
}

// LoadAll ingests every PDF under the directives directory. A missing store
// directory is a configuration error and aborts the load; a single
// unreadable PDF is skipped with a warning and the load continues.
// Returns the number of directives stored.
func (s *LoaderService) LoadAll(ctx context.Context) (int, error) {
	if _, err := os.Stat(s.directivesDir); err != nil {
		return 0, fmt.Errorf("directives directory %s not found: run acquisition first or set storage.directives_dir: %w",
			s.directivesDir, err)
	}

	var raw []classifier.RawDocument

	err := filepath.WalkDir(s.directivesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".pdf") {
			return nil
		}

		content, extractErr := s.extractor.ReadPDFFromFile(ctx, path)
		if extractErr != nil {
			s.logger.Warn().
				Err(extractErr).
				Str("path", path).
				Msg("Failed to extract PDF text, skipping file")
			return nil
		}

		rel, relErr := filepath.Rel(s.directivesDir, path)
		if relErr != nil {
			rel = d.Name()
		}

		info, statErr := d.Info()
		fetchedAt := time.Now()
		if statErr == nil {
			fetchedAt = info.ModTime()
		}

		raw = append(raw, classifier.RawDocument{
			Path:      rel,
			Filename:  d.Name(),
			Title:     strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			Content:   content,
			FetchedAt: fetchedAt,
		})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to walk directives directory: %w", err)
	}

	if len(raw) == 0 {
		return 0, fmt.Errorf("no directive documents found in %s", s.directivesDir)
	}

	directives := s.classifier.Classify(raw)

	if err := s.storage.SaveDirectives(directives); err != nil {
		return 0, fmt.Errorf("failed to save directives: %w", err)
	}

	s.logger.Info().
		Int("loaded", len(directives)).
		Str("scopes", classifier.Describe(directives)).
		Msg("Directive corpus loaded")

	return len(directives), nil
}
