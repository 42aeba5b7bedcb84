package fetch

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrNoContent is returned when a page yields no readable text.
var ErrNoContent = errors.New("no job description text found")

// Posting is the readable text of a job posting.
type Posting struct {
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	Text      string    `json:"text"`
	Platform  Platform  `json:"platform"`
	Rendered  bool      `json:"rendered"`
	FetchedAt time.Time `json:"fetched_at"`
}

// JobFetcher turns job posting URLs into plain text.
type JobFetcher struct {
	options *Options
	render  RenderFunc
	cache   *Cache
	logger  *slog.Logger
}

// JobOption configures a JobFetcher.
type JobOption func(*JobFetcher)

// WithOptions sets the HTTP options.
func WithOptions(o *Options) JobOption {
	return func(f *JobFetcher) { f.options = o }
}

// WithRenderer enables the headless browser fallback for short pages.
func WithRenderer(r RenderFunc) JobOption {
	return func(f *JobFetcher) { f.render = r }
}

// WithCache shares a cache between fetchers.
func WithCache(c *Cache) JobOption {
	return func(f *JobFetcher) { f.cache = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) JobOption {
	return func(f *JobFetcher) { f.logger = l }
}

// NewJobFetcher creates a fetcher with a private cache and no browser fallback unless
// options say otherwise.
func NewJobFetcher(opts ...JobOption) *JobFetcher {
	f := &JobFetcher{}
	for _, opt := range opts {
		opt(f)
	}
	if f.cache == nil {
		f.cache = NewCache(0, 0)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// Fetch returns the posting at url. Recently failed URLs are refused without a request.
func (f *JobFetcher) Fetch(ctx context.Context, url string) (*Posting, error) {
	if p, ok := f.cache.Get(url); ok {
		f.logger.Debug("job posting cache hit", "url", url)
		return p, nil
	}
	if skip, reason := f.cache.ShouldSkip(url); skip {
		return nil, &Error{URL: url, Message: "recently failed: " + reason}
	}

	p, err := f.fetch(ctx, url)
	if err != nil {
		if ctx.Err() == nil {
			f.cache.MarkFailed(url, err.Error())
		}
		return nil, err
	}
	f.cache.Put(url, p)
	return p, nil
}

func (f *JobFetcher) fetch(ctx context.Context, url string) (*Posting, error) {
	platform := DetectPlatform(url)
	content := PlatformContentSelectors(platform)
	noise := PlatformNoiseSelectors(platform)

	res, err := URL(ctx, url, f.options)
	if err != nil {
		return nil, err
	}
	text, err := ExtractMainText(res.HTML, content, noise...)
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to extract text", Cause: err}
	}
	p := &Posting{URL: url, Title: Title(res.HTML), Text: text, Platform: platform}

	if f.render != nil && ShouldUseBrowser(text) {
		f.logger.Info("job posting text is short, rendering in browser", "url", url, "chars", len(text))
		if html, rerr := f.render(ctx, url); rerr != nil {
			f.logger.Warn("browser rendering failed", "url", url, "error", rerr)
		} else if rendered, xerr := ExtractMainText(html, content, noise...); xerr == nil && len(rendered) > len(text) {
			p.Text = rendered
			p.Rendered = true
			if title := Title(html); title != "" {
				p.Title = title
			}
		}
	}

	if p.Text == "" {
		return nil, &Error{URL: url, Message: "empty page", Cause: ErrNoContent}
	}
	p.FetchedAt = time.Now()
	f.logger.Debug("fetched job posting", "url", url, "platform", platform, "chars", len(p.Text))
	return p, nil
}

// JobDescription fetches url once without caching and returns its text.
func JobDescription(ctx context.Context, url string, opts *Options, render RenderFunc) (string, error) {
	p, err := NewJobFetcher(WithOptions(opts), WithRenderer(render)).Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return p.Text, nil
}
