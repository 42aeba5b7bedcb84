// Package studio is the interactive front end: an HTTP app and an MCP tool server that
// share one generation session.
package studio

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/buildmyfolio/internal/export"
	"github.com/jonathan/buildmyfolio/internal/fetch"
	"github.com/jonathan/buildmyfolio/internal/orchestrator"
	"github.com/jonathan/buildmyfolio/internal/profile"
	"github.com/jonathan/buildmyfolio/internal/server"
	"github.com/jonathan/buildmyfolio/internal/server/middleware"
	"github.com/jonathan/buildmyfolio/internal/server/ratelimit"
	"github.com/jonathan/buildmyfolio/internal/types"
)

// PDFPrinter prints a full HTML page. *export.PDFRenderer satisfies it.
type PDFPrinter interface {
	Render(ctx context.Context, htmlPage []byte, name string) (*export.File, error)
}

var _ PDFPrinter = (*export.PDFRenderer)(nil)

// JobFetcher resolves a job posting URL. *fetch.JobFetcher satisfies it.
type JobFetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Posting, error)
}

var _ JobFetcher = (*fetch.JobFetcher)(nil)

// Config holds studio dependencies. Only Generator is required.
type Config struct {
	Port      int
	Generator *orchestrator.Generator
	Product   string
	Tone      types.Tone
	PDF       PDFPrinter
	Fetcher   JobFetcher
	RateLimit *ratelimit.Config
	Logger    *slog.Logger
}

// Studio serves one session.
type Studio struct {
	gen         *orchestrator.Generator
	product     string
	tone        types.Tone
	pdf         PDFPrinter
	fetcher     JobFetcher
	logger      *slog.Logger
	rateLimiter *ratelimit.Limiter
	httpServer  *http.Server
}

// New creates a studio. Missing optional dependencies get defaults: a local-only
// generator, headless Chrome for PDFs and an uncached job fetcher.
func New(cfg Config) *Studio {
	s := &Studio{
		gen:     cfg.Generator,
		product: cfg.Product,
		tone:    cfg.Tone,
		pdf:     cfg.PDF,
		fetcher: cfg.Fetcher,
		logger:  cfg.Logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.gen == nil {
		s.gen = orchestrator.NewGenerator(nil, nil, orchestrator.WithLogger(s.logger))
	}
	if s.product == "" {
		s.product = export.DefaultProduct
	}
	if s.pdf == nil {
		s.pdf = export.NewPDFRenderer()
	}
	if s.fetcher == nil {
		s.fetcher = fetch.NewJobFetcher(fetch.WithLogger(s.logger))
	}
	rl := cfg.RateLimit
	if rl == nil {
		rl = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rl)

	s.httpServer = &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: middleware.Chain(s.routes(),
			middleware.RateLimit(s.rateLimiter, s.logger),
			middleware.Logging(s.logger),
			middleware.Recover(s.logger),
		),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Session returns the session the studio renders.
func (s *Studio) Session() *orchestrator.Session {
	return s.gen.Session()
}

// Handler returns the routed handler with middleware applied.
func (s *Studio) Handler() http.Handler {
	return s.httpServer.Handler
}

// Serve runs the studio until ctx is done.
func (s *Studio) Serve(ctx context.Context) error {
	return server.Serve(ctx, s.httpServer, s.logger, s.rateLimiter.Stop)
}

// GenerateForm is the generation request accepted by the studio. Sample replaces the
// profile with the built-in sample and fills a blank job description and company.
type GenerateForm struct {
	Profile        *types.Profile         `json:"profile,omitempty"`
	Draft          *profile.Draft         `json:"draft,omitempty"`
	Sample         bool                   `json:"sample,omitempty"`
	Options        *types.GenerateOptions `json:"options,omitempty"`
	JobDescription string                 `json:"job_description,omitempty"`
	JobURL         string                 `json:"job_url,omitempty"`
	CompanyName    string                 `json:"company_name,omitempty"`
	Tone           types.Tone             `json:"tone,omitempty"`
}

// input resolves a form into generator input, fetching the job posting when only a URL
// is given.
func (s *Studio) input(ctx context.Context, f GenerateForm) (orchestrator.GenerateInput, error) {
	in := orchestrator.GenerateInput{
		Options:        types.DefaultOptions(),
		JobDescription: strings.TrimSpace(f.JobDescription),
		CompanyName:    strings.TrimSpace(f.CompanyName),
		Tone:           f.Tone,
	}
	if f.Options != nil {
		in.Options = *f.Options
	}
	if in.Tone == "" {
		in.Tone = s.tone
	}

	switch {
	case f.Sample:
		in.Profile = profile.SampleDraft().Snapshot()
		if in.JobDescription == "" && f.JobURL == "" {
			in.JobDescription = profile.SampleJobDescription
		}
		if in.CompanyName == "" {
			in.CompanyName = profile.SampleCompany
		}
	case f.Draft != nil:
		in.Profile = f.Draft.Snapshot()
	case f.Profile != nil:
		in.Profile = profile.Normalize(*f.Profile)
	default:
		return in, &server.ErrValidation{Field: "profile", Message: "a profile, draft or sample is required"}
	}

	if in.JobDescription == "" && strings.TrimSpace(f.JobURL) != "" {
		posting, err := s.fetcher.Fetch(ctx, strings.TrimSpace(f.JobURL))
		if err != nil {
			return in, fmt.Errorf("failed to fetch job posting: %w", err)
		}
		in.JobDescription = posting.Text
	}
	return in, nil
}

// Generate runs one generation into the session.
func (s *Studio) Generate(ctx context.Context, f GenerateForm, onStep orchestrator.ProgressCallback) (*types.GeneratedBundle, error) {
	in, err := s.input(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.gen.Generate(ctx, in, onStep), nil
}

// CheckATS scores resume text against a job description.
func (s *Studio) CheckATS(ctx context.Context, resumeText, jobDescription string) (*types.ATSScore, error) {
	return s.gen.CheckATS(ctx, resumeText, jobDescription)
}

// RenderTab renders one tab of the session, or the active tab when tab is empty.
func (s *Studio) RenderTab(tab string) (template.HTML, orchestrator.Tab, error) {
	session := s.Session()
	if tab == "" {
		t := session.Tab()
		markup, err := session.RenderTab(t)
		return markup, t, err
	}
	t, err := orchestrator.ParseTab(tab)
	if err != nil {
		return "", "", &server.ErrValidation{Field: "tab", Message: err.Error()}
	}
	markup, err := session.RenderTab(t)
	return markup, t, err
}

// ResumeDoc exports the session's resume as a word-processor document.
func (s *Studio) ResumeDoc() (*export.File, error) {
	markup, err := s.Session().RenderTab(orchestrator.TabResume)
	if err != nil {
		return nil, err
	}
	return export.ExportResumeDoc(markup, s.product)
}

// PortfolioZip packages the session's portfolio as a static site archive.
func (s *Studio) PortfolioZip() (*export.File, error) {
	return export.PackageSite(s.Session().ExportPortfolio())
}

// Preview renders the session's portfolio as one self-contained page.
func (s *Studio) Preview() (*export.File, error) {
	return export.PreviewPage(s.Session().ExportPortfolio())
}

// ResumePDF prints the exported resume document to PDF.
func (s *Studio) ResumePDF(ctx context.Context) (*export.File, error) {
	doc, err := s.ResumeDoc()
	if err != nil {
		return nil, err
	}
	return s.pdf.Render(ctx, doc.Data, strings.TrimSuffix(doc.Name, ".doc"))
}

// PortfolioPDF prints the portfolio preview page to PDF.
func (s *Studio) PortfolioPDF(ctx context.Context) (*export.File, error) {
	page, err := s.Preview()
	if err != nil {
		return nil, err
	}
	return s.pdf.Render(ctx, page.Data, strings.TrimSuffix(page.Name, ".html"))
}
