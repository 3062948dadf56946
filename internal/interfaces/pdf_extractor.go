package interfaces

import (
	"context"
)

// PDFExtractor extracts text content from PDF documents
type PDFExtractor interface {
	// ExtractTextFromBytes extracts text directly from PDF bytes
	ExtractTextFromBytes(ctx context.Context, pdfContent []byte) (string, error)

	// ReadPDFFromFile reads and extracts text from a PDF file path
	ReadPDFFromFile(ctx context.Context, filePath string) (string, error)
}
