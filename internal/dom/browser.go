package dom

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// DefaultRenderTimeout bounds a headless render.
const DefaultRenderTimeout = 45 * time.Second

// Render loads a page in headless Chrome, waits for scripts to build the
// application form and returns the rendered document.
// Requires Chrome/Chromium to be installed on the system.
func Render(ctx context.Context, urlStr string, timeout time.Duration, logger *zap.Logger) (*Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	logger.Debug("Starting headless browser", zap.String("url", urlStr))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		// ATS forms are assembled client-side after load
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"]`, chromedp.NodeVisible, chromedp.AtLeast(0)).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "browser rendering failed", Cause: err}
	}

	logger.Debug("Rendered page", zap.String("url", urlStr), zap.Int("bytes", len(html)))

	doc, err := ParseHTML(urlStr, html)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "failed to parse rendered page", Cause: err}
	}
	return doc, nil
}

// Load fetches a page over HTTP and falls back to headless rendering when the
// static HTML has no form controls. forceBrowser skips the HTTP attempt.
func Load(ctx context.Context, urlStr string, forceBrowser bool, logger *zap.Logger) (*Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !forceBrowser {
		doc, err := Fetch(ctx, urlStr, nil)
		if err == nil && !NeedsRendering(doc) {
			return doc, nil
		}
		if err != nil {
			logger.Debug("HTTP fetch failed, trying browser", zap.String("url", urlStr), zap.Error(err))
		} else {
			logger.Debug("Page has no form controls, trying browser", zap.String("url", urlStr))
		}
	}

	doc, err := Render(ctx, urlStr, DefaultRenderTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", urlStr, err)
	}
	return doc, nil
}
