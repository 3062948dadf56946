package acquirer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dirigo/internal/common"
)

func newTestAcquirer(t *testing.T, baseURL string, series ...string) *Service {
	t.Helper()
	config := &common.AcquirerConfig{
		BaseURL:        baseURL,
		Series:         series,
		RequestTimeout: 5 * time.Second,
		RequestDelay:   time.Millisecond,
	}
	return NewService(config, t.TempDir(), arbor.NewLogger())
}

func TestExtractPDFLinks(t *testing.T) {
	html := `<html><body>
		<a href="/media/directives/010_pdfs/pd01005004curr.pdf">Severe Weather</a>
		<a href="https://www.weather.gov/media/directives/010_pdfs/pd01005017curr.pdf">Watches</a>
		<a href="/media/directives/010_pdfs/pd01005004curr.pdf">Duplicate</a>
		<a href="/media/directives/010_pdfs/PD01008003CURR.PDF">Uppercase</a>
		<a href="/directives/010">Not a PDF</a>
		<a>No href</a>
	</body></html>`

	links, err := extractPDFLinks(html, "https://www.weather.gov/directives/010")
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.weather.gov/media/directives/010_pdfs/pd01005004curr.pdf",
		"https://www.weather.gov/media/directives/010_pdfs/pd01005017curr.pdf",
		"https://www.weather.gov/media/directives/010_pdfs/PD01008003CURR.PDF",
	}, links)
}

func TestExtractPDFLinksEmptyListing(t *testing.T) {
	links, err := extractPDFLinks("<html><body><p>No directives here</p></body></html>", "https://www.weather.gov/directives/010")
	assert.NoError(t, err)
	assert.Empty(t, links)
}

func TestAcquireDownloadsPDFs(t *testing.T) {
	pdfBody := "%PDF-1.4 test content"

	mux := http.NewServeMux()
	mux.HandleFunc("/directives/010", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<a href="/media/pd01005004curr.pdf">Directive</a>
			<a href="/media/broken.pdf">Broken</a>
		</body></html>`))
	})
	mux.HandleFunc("/media/pd01005004curr.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		if r.Method == http.MethodGet {
			w.Write([]byte(pdfBody))
		}
	})
	mux.HandleFunc("/media/broken.pdf", func(w http.ResponseWriter, r *http.Request) {
		// HTML masquerading behind a .pdf extension
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>error page</html>"))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	service := newTestAcquirer(t, server.URL+"/directives", "010")

	result, err := service.Acquire(context.Background(), "010")
	assert.NoError(t, err)
	assert.Equal(t, 2, result.LinksFound)
	assert.Equal(t, 1, result.Downloaded)
	assert.Equal(t, 1, result.Skipped)

	saved, err := os.ReadFile(filepath.Join(service.targetDir, "pd01005004curr.pdf"))
	assert.NoError(t, err)
	assert.Equal(t, pdfBody, string(saved))

	_, err = os.Stat(filepath.Join(service.targetDir, "broken.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestAcquireListingFailureAbortsSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	service := newTestAcquirer(t, server.URL+"/directives", "010")

	_, err := service.Acquire(context.Background(), "010")
	assert.ErrorContains(t, err, "status 404")
}

func TestAcquireEmptyListingIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>nothing linked</body></html>"))
	}))
	defer server.Close()

	service := newTestAcquirer(t, server.URL+"/directives", "010")

	result, err := service.Acquire(context.Background(), "010")
	assert.NoError(t, err)
	assert.Equal(t, 0, result.LinksFound)
	assert.Equal(t, 0, result.Downloaded)
}

func TestAcquireAllRequiresSeries(t *testing.T) {
	service := newTestAcquirer(t, "http://localhost/directives")
	_, err := service.AcquireAll(context.Background())
	assert.ErrorContains(t, err, "no series codes configured")
}

func TestAcquireAllContinuesPastFailedSeries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/directives/010", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>empty</body></html>"))
	})
	// series 020 has no handler and returns 404

	server := httptest.NewServer(mux)
	defer server.Close()

	service := newTestAcquirer(t, server.URL+"/directives", "020", "010")

	results, err := service.AcquireAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "010", results[0].Series)
}
