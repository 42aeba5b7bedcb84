// Package orchestrator runs a generation against the remote service and falls back to the
// local synthesizer, keeping the result in a Session.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/buildmyfolio/internal/profile"
	"github.com/jonathan/buildmyfolio/internal/remote"
	"github.com/jonathan/buildmyfolio/internal/synth"
	"github.com/jonathan/buildmyfolio/internal/types"
)

// ErrMissingATSInput rejects an ATS check with a blank resume or job description.
var ErrMissingATSInput = errors.New("Please enter both resume text and job description.") //nolint:staticcheck

// ErrNoRemote is the remote error recorded when no service is configured.
var ErrNoRemote = errors.New("no generation service configured")

// Remote is the generation service. *remote.Client satisfies it.
type Remote interface {
	Generate(ctx context.Context, req types.GenerateRequest) (*types.GeneratedBundle, error)
	ATSScore(ctx context.Context, req types.ATSRequest) (*types.ATSScore, error)
}

var _ Remote = (*remote.Client)(nil)

// GenerateInput is what the user supplies for one generation.
type GenerateInput struct {
	Profile        types.Profile
	Options        types.GenerateOptions
	JobDescription string
	CompanyName    string
	Tone           types.Tone
}

// Request builds the wire request, adding placeholder education when none is present.
func (in GenerateInput) Request() types.GenerateRequest {
	return types.NewGenerateRequest(profile.EnsureEducation(in.Profile), in.Options, in.JobDescription, in.CompanyName, in.Tone)
}

// Generator drives generation and ATS checks for a session.
type Generator struct {
	remote           Remote
	session          *Session
	logger           *slog.Logger
	progressInterval time.Duration
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithProgressInterval overrides the caption cadence.
func WithProgressInterval(d time.Duration) Option {
	return func(g *Generator) { g.progressInterval = d }
}

// NewGenerator creates a Generator. A nil remote means every generation is synthesized
// locally.
func NewGenerator(r Remote, session *Session, opts ...Option) *Generator {
	if session == nil {
		session = NewSession()
	}
	g := &Generator{remote: r, session: session, logger: slog.Default(), progressInterval: DefaultProgressInterval}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Session returns the session the generator writes to.
func (g *Generator) Session() *Session { return g.session }

// Generate always yields a bundle: the remote one when the service answers successfully,
// otherwise the local synthesis of the same request. Progress captions run until a bundle
// is available. The bundle replaces the session's current one.
func (g *Generator) Generate(ctx context.Context, in GenerateInput, onStep ProgressCallback) *types.GeneratedBundle {
	req := in.Request()

	progress := StartProgress(g.progressInterval, onStep)
	bundle := g.attemptRemote(ctx, req).UnwrapOrElse(func(err error) *types.GeneratedBundle {
		g.logger.Debug("generation service unavailable, synthesizing locally", "error", err)
		return synth.Synthesize(req)
	})
	progress.Stop()

	g.session.setBundle(bundle, req.Profile.TargetRole)
	return bundle
}

func (g *Generator) attemptRemote(ctx context.Context, req types.GenerateRequest) Result[*types.GeneratedBundle] {
	if g.remote == nil {
		return Fail[*types.GeneratedBundle](ErrNoRemote)
	}
	return Attempt(func() (*types.GeneratedBundle, error) {
		b, err := g.remote.Generate(ctx, req)
		if err == nil && b == nil {
			err = remote.ErrNoData
		}
		return b, err
	})
}

// CheckATS scores resume text against a job description. Blank input is rejected with
// ErrMissingATSInput before any request; a failed request yields the fixed mock score.
func (g *Generator) CheckATS(ctx context.Context, resumeText, jobDescription string) (*types.ATSScore, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return nil, ErrMissingATSInput
	}
	if g.remote == nil {
		return synth.MockATSScore(), nil
	}

	req := types.ATSRequest{ResumeText: resumeText, JobDescription: jobDescription}
	score := Attempt(func() (*types.ATSScore, error) {
		s, err := g.remote.ATSScore(ctx, req)
		if err == nil && s == nil {
			err = remote.ErrNoData
		}
		return s, err
	}).UnwrapOrElse(func(err error) *types.ATSScore {
		g.logger.Debug("ATS service unavailable, using mock score", "error", err)
		return synth.MockATSScore()
	})
	return score, nil
}
