package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 paper in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// DefaultPDFTimeout bounds one headless print.
const DefaultPDFTimeout = 60 * time.Second

// PDFRenderer prints full HTML pages to PDF with headless Chrome.
type PDFRenderer struct {
	// ExecPath overrides the browser binary. Empty uses CHROME_PATH, then the chromedp default.
	ExecPath string
	Timeout  time.Duration
}

// NewPDFRenderer returns a renderer using CHROME_PATH when set.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{ExecPath: os.Getenv("CHROME_PATH"), Timeout: DefaultPDFTimeout}
}

func (r *PDFRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}
	return opts
}

// Render prints an HTML page. name is used for the returned file, with a .pdf extension.
func (r *PDFRenderer) Render(ctx context.Context, htmlPage []byte, name string) (*File, error) {
	tmpDir, err := os.MkdirTemp("", "buildmyfolio-pdf-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, htmlPage, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write page: %w", err)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancel()
	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	slog.Debug("printing page to pdf", "page", htmlPath)

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}

	return &File{
		Name:        SanitizeFilename(name, DefaultBaseName) + ".pdf",
		ContentType: PDFType,
		Data:        pdf,
	}, nil
}
