// Package observability prints boxed summaries of generated artifacts for the CLI's
// verbose mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/buildmyfolio/internal/types"
)

const (
	boxWidth       = 60
	maxItemsToShow = 5
)

// Printer writes summaries to out.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, ending in "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func pad(s string, n int) string {
	if gap := n - utf8.RuneCountInString(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

//nolint:errcheck // terminal output
func (p *Printer) printBox(title, content string) {
	border := strings.Repeat("─", boxWidth-2)
	inner := boxWidth - 4
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", label)
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintBundle prints one box per artifact present in the bundle.
func (p *Printer) PrintBundle(b *types.GeneratedBundle) {
	if b == nil {
		return
	}
	p.PrintResume(b.Resume)
	p.PrintCoverLetter(b.CoverLetter)
	p.PrintPortfolio(b.Portfolio)
	p.PrintSkillsAnalysis(b.SkillsAnalysis)
}

// PrintResume summarizes a resume.
func (p *Printer) PrintResume(r *types.Resume) {
	if r == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:     %s\n", r.Header.Name)
	if r.Metadata != nil {
		fmt.Fprintf(&sb, "Role:     %s\n", r.Metadata.TargetRole)
		fmt.Fprintf(&sb, "Tone:     %s\n", r.Metadata.Tone)
	}
	fmt.Fprintf(&sb, "Sections: %d experience, %d projects, %d education\n", len(r.Experience), len(r.Projects), len(r.Education))
	sb.WriteString("\n")
	for _, e := range r.Skills {
		fmt.Fprintf(&sb, "%-12s %s\n", e.Key+":", strings.Join(e.Value, ", "))
	}
	if len(r.ATSKeywordsUsed) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "ATS keywords", r.ATSKeywordsUsed, maxItemsToShow)
	}
	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCoverLetter summarizes a cover letter.
func (p *Printer) PrintCoverLetter(cl *types.CoverLetter) {
	if cl == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "To:       %s\n", cl.Recipient)
	fmt.Fprintf(&sb, "Subject:  %s\n", cl.Subject)
	fmt.Fprintf(&sb, "Length:   %d paragraphs, %d words\n", len(cl.Paragraphs), cl.WordCount)
	if len(cl.Paragraphs) > 0 {
		fmt.Fprintf(&sb, "\n%s", cl.Paragraphs[0])
	}
	p.printBox("COVER LETTER", sb.String())
}

// PrintPortfolio summarizes a portfolio.
func (p *Printer) PrintPortfolio(pf *types.Portfolio) {
	if pf == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Headline: %s\n", pf.Bio.Headline)
	fmt.Fprintf(&sb, "Stats:    %d projects, %d technologies, %d years\n", pf.Stats.ProjectsBuilt, pf.Stats.Technologies, pf.Stats.YearsCoding)
	sb.WriteString("\n")
	names := make([]string, 0, len(pf.FeaturedProjects))
	for _, proj := range pf.FeaturedProjects {
		name := proj.Name
		if proj.Highlight {
			name += " ★"
		}
		names = append(names, name)
	}
	writeList(&sb, "Featured", names, maxItemsToShow)
	p.printBox("PORTFOLIO", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillsAnalysis summarizes a skills analysis.
func (p *Printer) PrintSkillsAnalysis(a *types.SkillsAnalysis) {
	if a == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Match:    %.1f%% (%d of %d skills)\n\n", a.MatchPercentage, len(a.MatchingSkills), a.TotalSkills)
	writeList(&sb, "Matching", a.MatchingSkills, maxItemsToShow)
	writeList(&sb, "Gaps", a.SkillGaps, maxItemsToShow)
	p.printBox("SKILLS ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATSScore prints the score breakdown, failed format checks and recommendations.
func (p *Printer) PrintATSScore(s *types.ATSScore) {
	if s == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall:  %.0f/100\n\n", s.OverallScore)
	for _, e := range s.Breakdown {
		fmt.Fprintf(&sb, "%-16s %5.1f\n", e.Key, e.Value)
	}
	sb.WriteString("\n")

	var failed []string
	for _, c := range s.FormatChecks {
		if !c.Value {
			failed = append(failed, "✗ "+c.Key)
		}
	}
	if len(failed) > 0 {
		sb.WriteString(strings.Join(failed, "\n") + "\n\n")
	}
	writeList(&sb, "Missing keywords", s.MissingKeywords, maxItemsToShow)
	writeList(&sb, "Recommendations", s.Recommendations, maxItemsToShow)
	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintNotice prints a single-line box, used for fallbacks and empty results.
//
//nolint:errcheck // terminal output
func (p *Printer) PrintNotice(msg string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(msg, boxWidth-4), boxWidth-4))
	fmt.Fprintf(p.out, "└%s┘\n", border)
}
