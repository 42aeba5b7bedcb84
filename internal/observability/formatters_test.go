package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/buildmyfolio/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	var skills types.SkillCategories
	skills.Set("languages", []string{"Python", "Go"})

	NewPrinter(&buf).PrintResume(&types.Resume{
		Header:          types.ContactInfo{Name: "Priya Sharma"},
		Skills:          skills,
		Experience:      make([]types.EnhancedExperience, 1),
		ATSKeywordsUsed: []string{"React", "Docker", "Python", "AWS", "SQL", "Kafka"},
		Metadata:        &types.ResumeMetadata{TargetRole: "Full Stack Developer", Tone: types.ToneCreative},
	})
	out := buf.String()

	assert.Contains(t, out, "RESUME")
	assert.Contains(t, out, "Priya Sharma")
	assert.Contains(t, out, "Full Stack Developer")
	assert.Contains(t, out, "creative")
	assert.Contains(t, out, "languages:   Python, Go")
	assert.Contains(t, out, "1 experience, 0 projects")
	assert.Contains(t, out, "... and 1 more")
}

func TestPrintBundle_OnlyPresentArtifacts(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBundle(&types.GeneratedBundle{
		SkillsAnalysis: &types.SkillsAnalysis{TotalSkills: 4, MatchingSkills: []string{"Go"}, MatchPercentage: 25},
	})
	out := buf.String()

	assert.Contains(t, out, "SKILLS ANALYSIS")
	assert.Contains(t, out, "25.0% (1 of 4 skills)")
	assert.NotContains(t, out, "RESUME")
	assert.NotContains(t, out, "COVER LETTER")

	buf.Reset()
	NewPrinter(&buf).PrintBundle(nil)
	assert.Empty(t, buf.String())
}

func TestPrintCoverLetterAndPortfolio(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintCoverLetter(&types.CoverLetter{Recipient: "Hiring Manager, Google", Paragraphs: []string{"Dear team,"}, WordCount: 2})
	p.PrintPortfolio(&types.Portfolio{
		Bio:              types.Bio{Headline: "Hi, I'm Priya"},
		FeaturedProjects: []types.EnhancedProject{{Project: types.Project{Name: "Folio"}, Highlight: true}},
	})
	out := buf.String()

	assert.Contains(t, out, "Hiring Manager, Google")
	assert.Contains(t, out, "1 paragraphs, 2 words")
	assert.Contains(t, out, "Folio ★")
}

func TestPrintATSScore(t *testing.T) {
	var buf bytes.Buffer
	var breakdown types.Ordered[float64]
	breakdown.Set("keyword_match", 50)
	var checks types.Ordered[bool]
	checks.Set("has_email", true)
	checks.Set("has_linkedin", false)

	NewPrinter(&buf).PrintATSScore(&types.ATSScore{
		OverallScore:    62,
		Breakdown:       breakdown,
		FormatChecks:    checks,
		MissingKeywords: []string{"Kubernetes"},
		Recommendations: []string{"Add your LinkedIn profile URL"},
	})
	out := buf.String()

	assert.Contains(t, out, "62/100")
	assert.Contains(t, out, "keyword_match")
	assert.Contains(t, out, "✗ has_linkedin")
	assert.NotContains(t, out, "has_email")
	assert.Contains(t, out, "Kubernetes")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("TITLE", "short\n"+strings.Repeat("é", 100))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, lines[4], "...")
}

func TestPrintNotice(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintNotice("Remote service unavailable, generated locally")
	assert.Contains(t, buf.String(), "generated locally")
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 3)
}
