package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/buildmyfolio/internal/prompts"
)

// ErrEmptyCompletion is returned when the model answers with nothing usable.
var ErrEmptyCompletion = errors.New("model returned empty text")

// Polisher rewrites generated resume text with a language model. It satisfies the engine's
// summary polishing hook.
type Polisher struct {
	client Client
}

// NewPolisher wraps client.
func NewPolisher(client Client) *Polisher {
	return &Polisher{client: client}
}

// PolishSummary rewrites a rule-based summary for targetRole.
func (p *Polisher) PolishSummary(ctx context.Context, summary, targetRole string) (string, error) {
	if strings.TrimSpace(summary) == "" {
		return "", ErrEmptyCompletion
	}
	prompt := prompts.Format(prompts.MustGet(prompts.PolishFile, prompts.SummaryKey), map[string]string{
		"Role":    targetRole,
		"Summary": summary,
	})

	out, err := p.client.GenerateContent(ctx, prompt, TierLite)
	if err != nil {
		return "", fmt.Errorf("polish summary: %w", err)
	}
	cleaned := CleanText(out)
	if cleaned == "" {
		return "", ErrEmptyCompletion
	}
	return cleaned, nil
}

// PolishBullets rewrites bullets for role. The answer must keep one line per bullet; any
// other shape is rejected so callers can keep their originals.
func (p *Polisher) PolishBullets(ctx context.Context, bullets []string, role string) ([]string, error) {
	if len(bullets) == 0 {
		return nil, nil
	}
	prompt := prompts.Format(prompts.MustGet(prompts.PolishFile, prompts.BulletsKey), map[string]string{
		"Role":    role,
		"Bullets": strings.Join(bullets, "\n"),
	})

	out, err := p.client.GenerateContent(ctx, prompt, TierStandard)
	if err != nil {
		return nil, fmt.Errorf("polish bullets: %w", err)
	}
	lines := CleanLines(out)
	if len(lines) != len(bullets) {
		return nil, fmt.Errorf("polish bullets: got %d lines for %d bullets", len(lines), len(bullets))
	}
	return lines, nil
}
