package documents

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dirigo/internal/models"
	"github.com/ternarybob/dirigo/internal/services/classifier"
)

type fakeExtractor struct {
	failFor map[string]bool
}

func (f *fakeExtractor) ExtractTextFromBytes(ctx context.Context, pdfContent []byte) (string, error) {
	return string(pdfContent), nil
}

func (f *fakeExtractor) ReadPDFFromFile(ctx context.Context, filePath string) (string, error) {
	if f.failFor[filepath.Base(filePath)] {
		return "", fmt.Errorf("corrupt PDF")
	}
	return "extracted text for " + filepath.Base(filePath), nil
}

type captureStorage struct {
	saved []*models.Directive
}

func (c *captureStorage) SaveDirective(d *models.Directive) error { c.saved = append(c.saved, d); return nil }
func (c *captureStorage) SaveDirectives(directives []*models.Directive) error {
	c.saved = append(c.saved, directives...)
	return nil
}
func (c *captureStorage) GetDirective(id string) (*models.Directive, error) { return nil, nil }
func (c *captureStorage) GetDirectiveByFilename(filename string) (*models.Directive, error) {
	return nil, nil
}
func (c *captureStorage) ListDirectives() ([]*models.Directive, error) { return c.saved, nil }
func (c *captureStorage) ListDirectivesByScope(scope string) ([]*models.Directive, error) {
	return nil, nil
}
func (c *captureStorage) CountDirectives() (int, error)            { return len(c.saved), nil }
func (c *captureStorage) GetStats() (*models.DirectiveStats, error) { return nil, nil }
func (c *captureStorage) ClearAll() error                          { c.saved = nil; return nil }

func newTestLoader(t *testing.T, dir string, extractor *fakeExtractor, storage *captureStorage) *LoaderService {
	t.Helper()
	catalog, err := models.DefaultCatalog()
	assert.NoError(t, err)
	logger := arbor.NewLogger()
	classifierService := classifier.NewService(catalog, "pd00101001curr.pdf", logger)
	return NewLoaderService(dir, extractor, classifierService, storage, logger)
}

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	assert.NoError(t, os.WriteFile(path, []byte("%PDF stub"), 0644))
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pd01005004curr.pdf")
	writeFile(t, dir, filepath.Join("Southern Region", "supplemental.pdf"))
	writeFile(t, dir, "README.txt") // not a PDF, ignored

	storage := &captureStorage{}
	loader := newTestLoader(t, dir, &fakeExtractor{}, storage)

	count, err := loader.LoadAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, storage.saved, 2)

	byFilename := make(map[string]*models.Directive)
	for _, d := range storage.saved {
		byFilename[d.Filename] = d
	}

	national := byFilename["pd01005004curr.pdf"]
	assert.Equal(t, models.ScopeNational, national.Scope)
	assert.Equal(t, "010", national.Series)
	assert.Equal(t, "pd01005004curr", national.Title)
	assert.True(t, strings.HasPrefix(national.Content, "extracted text"))

	regional := byFilename["supplemental.pdf"]
	assert.Equal(t, "Southern Region", regional.Scope)
}

func TestLoadAllSkipsUnreadablePDF(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pd01005004curr.pdf")
	writeFile(t, dir, "corrupt.pdf")

	storage := &captureStorage{}
	extractor := &fakeExtractor{failFor: map[string]bool{"corrupt.pdf": true}}
	loader := newTestLoader(t, dir, extractor, storage)

	count, err := loader.LoadAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestLoadAllMissingDirectory(t *testing.T) {
	loader := newTestLoader(t, filepath.Join(t.TempDir(), "absent"), &fakeExtractor{}, &captureStorage{})

	_, err := loader.LoadAll(context.Background())
	assert.ErrorContains(t, err, "not found")
}

func TestLoadAllEmptyDirectory(t *testing.T) {
	loader := newTestLoader(t, t.TempDir(), &fakeExtractor{}, &captureStorage{})

	_, err := loader.LoadAll(context.Background())
	assert.ErrorContains(t, err, "no directive documents")
}
