package pdf

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"
)

func TestExtractTextFromBytesInvalid(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())

	tests := []struct {
		name    string
		content []byte
	}{
		{name: "empty bytes", content: []byte{}},
		{name: "not a PDF", content: []byte("<html>definitely not a pdf</html>")},
		{name: "truncated header", content: []byte("%PDF-1.4")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractor.ExtractTextFromBytes(context.Background(), tt.content)
			assert.Error(t, err)
		})
	}
}

func TestReadPDFFromFileMissing(t *testing.T) {
	extractor := NewExtractor(arbor.NewLogger())

	_, err := extractor.ReadPDFFromFile(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	assert.ErrorContains(t, err, "failed to read PDF file")
}
