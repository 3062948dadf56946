package acquirer

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"
)

// Renderer fetches a listing page through a headless browser so that
// JavaScript-built link lists are visible. It is only engaged when the
// static fetch finds no PDF links.
type Renderer struct {
	userAgent string
	waitTime  time.Duration
	logger    arbor.ILogger
}

// NewRenderer creates a headless listing renderer
func NewRenderer(userAgent string, waitTime time.Duration, logger arbor.ILogger) *Renderer {
	if waitTime <= 0 {
		waitTime = 3 * time.Second
	}
	return &Renderer{
		userAgent: userAgent,
		waitTime:  waitTime,
		logger:    logger,
	}
}

// Render navigates to the URL, waits for scripts to run, and returns the
// rendered document HTML. Each call uses a fresh browser context; listing
// re-acquisition is rare enough that browser reuse is not worth the state.
func (r *Renderer) Render(ctx context.Context, pageURL string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(r.userAgent))
	}

	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocatorCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx,
		chromedp.WithLogf(func(s string, i ...interface{}) {
			r.logger.Debug().Msgf("chromedp: "+s, i...)
		}),
	)
	defer browserCancel()

	renderCtx, renderCancel := context.WithTimeout(browserCtx, 60*time.Second)
	defer renderCancel()

	startTime := time.Now()

	headers := network.Headers{}
	if r.userAgent != "" {
		headers["User-Agent"] = r.userAgent
	}

	var html string
	err := chromedp.Run(renderCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(headers),
		chromedp.Navigate(pageURL),
		chromedp.Sleep(r.waitTime),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("headless render failed: %w", err)
	}

	r.logger.Debug().
		Str("url", pageURL).
		Int("content_size", len(html)).
		Dur("duration", time.Since(startTime)).
		Msg("Listing rendered with headless browser")

	return html, nil
}
