package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the shortest extracted text accepted from a plain HTTP fetch.
const MinContentLength = 500

// DefaultRenderTimeout bounds one headless browser render.
const DefaultRenderTimeout = 45 * time.Second

// RenderFunc returns the HTML of a page after scripts have run.
type RenderFunc func(ctx context.Context, url string) (string, error)

// ShouldUseBrowser reports whether extracted text is short enough to suggest a
// script-rendered page.
func ShouldUseBrowser(extracted string) bool {
	return len(strings.TrimSpace(extracted)) < MinContentLength
}

// BrowserRenderer returns a RenderFunc backed by a local headless Chrome. execPath may be
// empty to let chromedp find the browser.
func BrowserRenderer(execPath string, timeout time.Duration, logger *slog.Logger) RenderFunc {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, url string) (string, error) {
		return render(ctx, url, execPath, timeout, logger)
	}
}

func render(ctx context.Context, url, execPath string, timeout time.Duration, logger *slog.Logger) (string, error) {
	logger.Debug("starting headless browser", "url", url)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Cookie banners are optional; a missing button is not an error.
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"]`, chromedp.NodeVisible, chromedp.AtLeast(0)).Do(ctx)
			return nil
		}),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	logger.Debug("rendered page", "url", url, "bytes", len(html))
	return html, nil
}
