// Package engine implements the generation service rules: keyword analysis of a job
// description and template-based construction of every generated artifact.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/buildmyfolio/internal/types"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRole     = "Software Developer"
	defaultIndustry = "technology"
	defaultDegree   = "Bachelor's"
	defaultField    = "Computer Science"
	atsKeywordLimit = 20
)

// Polisher rewrites a rule-based summary. Implementations may call a language model.
type Polisher interface {
	PolishSummary(ctx context.Context, summary, targetRole string) (string, error)
}

// Engine builds artifacts for the generation service.
type Engine struct {
	polisher Polisher
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolisher sets the summary polisher.
func WithPolisher(p Polisher) Option {
	return func(e *Engine) { e.polisher = p }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate builds the requested artifacts in parallel. The cover letter is built only when
// requested and a company name is present; the skills analysis is always built.
func (e *Engine) Generate(ctx context.Context, req types.GenerateRequest) (*types.GeneratedBundle, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generate request: %w", err)
	}

	p := req.Profile
	tone := req.Tone.Normalize()
	keywords := ExtractKeywords(req.JD())
	company := strings.TrimSpace(req.Company())

	bundle := &types.GeneratedBundle{}
	g, gctx := errgroup.WithContext(ctx)

	if req.GenerateResume {
		g.Go(func() error {
			bundle.Resume = BuildResume(p, keywords, tone)
			bundle.Resume.Summary = e.polish(gctx, bundle.Resume.Summary, p)
			return nil
		})
	}
	if req.GenerateCoverLetter && company != "" {
		g.Go(func() error {
			bundle.CoverLetter = BuildCoverLetter(p, company, keywords, tone)
			return nil
		})
	}
	if req.GeneratePortfolio {
		g.Go(func() error {
			bundle.Portfolio = BuildPortfolio(p)
			return nil
		})
	}
	g.Go(func() error {
		bundle.SkillsAnalysis = AnalyzeSkills(p, keywords)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return bundle, nil
}

// EnhanceSummary returns the professional-tone summary for a profile without job keywords.
func (e *Engine) EnhanceSummary(ctx context.Context, p types.Profile) string {
	return e.polish(ctx, Summary(p, nil, types.ToneProfessional), p)
}

// BulletPolisher is implemented by polishers that can also rewrite bullet lists.
type BulletPolisher interface {
	PolishBullets(ctx context.Context, bullets []string, role string) ([]string, error)
}

// ImproveBullets applies the rule-based bullet rewrite, then hands the result to the
// polisher when it can rewrite bullets. Polishing failures keep the rule-based bullets.
func (e *Engine) ImproveBullets(ctx context.Context, bullets []string, role string) []string {
	improved := ImproveBullets(bullets, role)
	bp, ok := e.polisher.(BulletPolisher)
	if !ok || len(improved) == 0 {
		return improved
	}
	polished, err := bp.PolishBullets(ctx, improved, role)
	if err != nil || len(polished) != len(improved) {
		e.logger.Debug("keeping rule-based bullets", "error", err)
		return improved
	}
	return polished
}

func (e *Engine) polish(ctx context.Context, summary string, p types.Profile) string {
	if e.polisher == nil {
		return summary
	}
	polished, err := e.polisher.PolishSummary(ctx, summary, orDefault(p.TargetRole, defaultRole))
	if err != nil || strings.TrimSpace(polished) == "" {
		e.logger.Debug("keeping rule-based summary", "error", err)
		return summary
	}
	return strings.TrimSpace(polished)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
