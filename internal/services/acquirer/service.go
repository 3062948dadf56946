package acquirer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dirigo/internal/common"
	"github.com/ternarybob/dirigo/internal/httpclient"
	"golang.org/x/time/rate"
)

// Service downloads directive PDFs from the remote listing source. Each
// series code maps to one HTML listing page whose anchor tags link to the
// PDFs; the service fetches the listing, follows every PDF link, and writes
// the files into the local document store by basename.
type Service struct {
	config    *common.AcquirerConfig
	client    *http.Client
	limiter   *rate.Limiter
	renderer  *Renderer
	logger    arbor.ILogger
	targetDir string
}

// SeriesResult summarizes one series acquisition
type SeriesResult struct {
	Series     string
	LinksFound int
	Downloaded int
	Skipped    int
}

// NewService creates an acquirer writing into targetDir
func NewService(config *common.AcquirerConfig, targetDir string, logger arbor.ILogger) *Service {
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	delay := config.RequestDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	var renderer *Renderer
	if config.EnableJavaScript {
		renderer = NewRenderer(config.UserAgent, config.JavaScriptWaitTime, logger)
	}

	return &Service{
		config:    config,
		client:    httpclient.NewDefaultHTTPClient(timeout),
		limiter:   rate.NewLimiter(rate.Every(delay), 1),
		renderer:  renderer,
		logger:    logger,
		targetDir: targetDir,
	}
}

// AcquireAll fetches every configured series. A failed series is reported
// and does not stop the remaining ones.
func (s *Service) AcquireAll(ctx context.Context) ([]SeriesResult, error) {
	if len(s.config.Series) == 0 {
		return nil, fmt.Errorf("no series codes configured for acquisition")
	}

	if err := os.MkdirAll(s.targetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directives directory %s: %w", s.targetDir, err)
	}

	results := make([]SeriesResult, 0, len(s.config.Series))
	var failed int
	for _, series := range s.config.Series {
		result, err := s.Acquire(ctx, series)
		if err != nil {
			s.logger.Error().
				Err(err).
				Str("series", series).
				Msg("Series acquisition failed")
			failed++
			continue
		}
		results = append(results, result)
	}

	if failed == len(s.config.Series) {
		return results, fmt.Errorf("all %d series acquisitions failed", failed)
	}

	return results, nil
}

// Acquire fetches one series: the listing page is downloaded, PDF links are
// extracted, and each linked file is verified and saved. A listing failure
// aborts the series; a per-file failure skips that file and continues.
func (s *Service) Acquire(ctx context.Context, series string) (SeriesResult, error) {
	result := SeriesResult{Series: series}

	listingURL := strings.TrimSuffix(s.config.BaseURL, "/") + "/" + series

	links, err := s.fetchListingLinks(ctx, listingURL)
	if err != nil {
		return result, fmt.Errorf("failed to fetch listing for series %s: %w", series, err)
	}
	result.LinksFound = len(links)

	if len(links) == 0 {
		s.logger.Warn().
			Str("series", series).
			Str("url", listingURL).
			Msg("Listing contains no PDF links")
		return result, nil
	}

	if err := os.MkdirAll(s.targetDir, 0755); err != nil {
		return result, fmt.Errorf("failed to create directives directory: %w", err)
	}

	for _, link := range links {
		if err := s.downloadPDF(ctx, link); err != nil {
			s.logger.Warn().
				Err(err).
				Str("url", link).
				Msg("Skipping file")
			result.Skipped++
			continue
		}
		result.Downloaded++
	}

	s.logger.Info().
		Str("series", series).
		Int("links", result.LinksFound).
		Int("downloaded", result.Downloaded).
		Int("skipped", result.Skipped).
		Msg("Series acquisition completed")

	return result, nil
}

// fetchListingLinks retrieves the listing HTML and extracts absolute PDF
// URLs. When the static fetch yields no links and JavaScript rendering is
// enabled, the listing is re-fetched through a headless browser.
func (s *Service) fetchListingLinks(ctx context.Context, listingURL string) ([]string, error) {
	html, err := s.fetchListing(ctx, listingURL)
	if err != nil {
		return nil, err
	}

	links, err := extractPDFLinks(html, listingURL)
	if err != nil {
		return nil, err
	}

	if len(links) == 0 && s.renderer != nil {
		s.logger.Debug().
			Str("url", listingURL).
			Msg("Static listing empty, rendering with headless browser")

		rendered, renderErr := s.renderer.Render(ctx, listingURL)
		if renderErr != nil {
			return nil, fmt.Errorf("rendered listing fetch failed: %w", renderErr)
		}
		links, err = extractPDFLinks(rendered, listingURL)
		if err != nil {
			return nil, err
		}
	}

	return links, nil
}

func (s *Service) fetchListing(ctx context.Context, listingURL string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listingURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create listing request: %w", err)
	}
	if s.config.UserAgent != "" {
		req.Header.Set("User-Agent", s.config.UserAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("listing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("listing returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read listing body: %w", err)
	}

	return string(body), nil
}

// extractPDFLinks parses listing HTML and returns deduplicated absolute
// URLs for every anchor pointing at a PDF.
func extractPDFLinks(html, listingURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing HTML: %w", err)
	}

	base, err := url.Parse(listingURL)
	if err != nil {
		return nil, fmt.Errorf("invalid listing URL: %w", err)
	}

	var links []string
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(i int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(href)), ".pdf") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref).String()

		if !seen[resolved] {
			seen[resolved] = true
			links = append(links, resolved)
		}
	})

	return links, nil
}

// downloadPDF verifies the link serves an actual PDF and writes it to the
// document store under its basename, overwriting any previous copy.
func (s *Service) downloadPDF(ctx context.Context, pdfURL string) error {
	parsed, err := url.Parse(pdfURL)
	if err != nil {
		return fmt.Errorf("invalid PDF URL: %w", err)
	}
	basename := path.Base(parsed.Path)
	if basename == "" || basename == "." || basename == "/" {
		return fmt.Errorf("cannot derive filename from URL %s", pdfURL)
	}

	if err := s.verifyContentType(ctx, pdfURL); err != nil {
		return err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}
	if s.config.UserAgent != "" {
		req.Header.Set("User-Agent", s.config.UserAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	target := filepath.Join(s.targetDir, basename)
	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer file.Close()

	written, err := io.Copy(file, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	s.logger.Debug().
		Str("file", basename).
		Int64("bytes", written).
		Msg("Directive PDF saved")

	return nil
}

// verifyContentType issues a HEAD request and rejects links that do not
// serve application/pdf. Listing pages occasionally link to HTML error
// pages with a .pdf extension; this gate keeps them out of the store.
func (s *Service) verifyContentType(ctx context.Context, pdfURL string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, pdfURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create HEAD request: %w", err)
	}
	if s.config.UserAgent != "" {
		req.Header.Set("User-Agent", s.config.UserAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("HEAD request failed: %w", err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(contentType), "application/pdf") {
		return fmt.Errorf("not a PDF: content type %q", contentType)
	}

	return nil
}
