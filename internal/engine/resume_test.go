package engine

import (
	"testing"

	"github.com/jonathan/buildmyfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	p := sampleProfile()

	got := Summary(p, []string{"Python", "Kubernetes", "agile"}, types.ToneProfessional)
	assert.Equal(t, "Results-driven Full Stack Developer with a B.Tech in Computer Science and 1 year of hands-on experience in the Software industry. "+
		"Proficient in Python, React, JavaScript, FastAPI, with a proven track record of delivering impactful solutions. "+
		"Seeking to leverage technical expertise and problem-solving abilities as a Full Stack Developer. Experienced with Kubernetes, agile.", got)

	tests := []struct {
		name   string
		tone   types.Tone
		prefix string
	}{
		{"creative", types.ToneCreative, "Innovative and passionate Full Stack Developer with a B.Tech in Computer Science"},
		{"technical", types.ToneTechnical, "Technical Full Stack Developer with expertise in Computer Science and a B.Tech degree"},
		{"unknown", types.Tone("casual"), "Results-driven Full Stack Developer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, Summary(p, nil, tt.tone), tt.prefix)
		})
	}
}

func TestSummary_Defaults(t *testing.T) {
	got := Summary(types.Profile{}, nil, types.ToneProfessional)
	assert.Equal(t, "Results-driven Software Developer with a Bachelor's in Computer Science and strong academic foundation in the technology industry. "+
		"Proficient in technology technologies, with a proven track record of delivering impactful solutions. "+
		"Seeking to leverage technical expertise and problem-solving abilities as a Software Developer.", got)

	p := types.Profile{Experience: make([]types.Experience, 3)}
	assert.Contains(t, Summary(p, nil, ""), "and 3+ years of hands-on experience")
}

func TestOrganizeSkills(t *testing.T) {
	skills := []string{"Git", "Python", "Docker", "Communication", "Haskell", "Go", "Java"}
	got := OrganizeSkills(skills, []string{"Docker", "python"})

	assert.Equal(t, []string{"languages", "cloud", "tools", "soft_skills", "other"}, got.Keys())
	langs, _ := got.Get("languages")
	assert.Equal(t, []string{"Python", "Go", "Java"}, langs)
	other, _ := got.Get("other")
	assert.Equal(t, []string{"Haskell"}, other)

	plain := OrganizeSkills([]string{"Java", "Python"}, nil)
	langs, _ = plain.Get("languages")
	assert.Equal(t, []string{"Java", "Python"}, langs)

	prioritized := OrganizeSkills([]string{"Java", "Python"}, []string{"Python"})
	langs, _ = prioritized.Get("languages")
	assert.Equal(t, []string{"Python", "Java"}, langs)
}

func TestExperienceBullets(t *testing.T) {
	exp := sampleProfile().Experience[0]
	got := ExperienceBullets(exp.Description, exp.Role, exp.Technologies)

	require.Len(t, got, 3)
	assert.Equal(t, "Built REST APIs using FastAPI and deployed to AWS (quantify impact with metrics)", got[0])
	assert.Equal(t, "Improved API response time by 40% through Redis caching", got[1])
	assert.Equal(t, "Collaborated with 5-member team using Agile methodology", got[2])
}

func TestExperienceBullets_VerbsAndTechBullet(t *testing.T) {
	got := ExperienceBullets("the payments service was rewritten; short", "Backend Engineer", []string{"Go", "Kafka"})
	require.Len(t, got, 2)
	assert.Equal(t, "Built the payments service was rewritten (quantify impact with metrics)", got[0])
	assert.Equal(t, "Utilized Go, Kafka to build scalable and maintainable solutions", got[1])

	got = ExperienceBullets("Handled customer onboarding for new accounts", "Sales Associate", nil)
	assert.Equal(t, []string{"Achieved handled customer onboarding for new accounts (quantify impact with metrics)"}, got)

	assert.Empty(t, ExperienceBullets("", "Engineer", nil))
}

func TestEnhanceProjects(t *testing.T) {
	projects := []types.Project{
		{Name: "Plain", Description: "A static blog"},
		{Name: "Stack", Description: "Dashboard with React and Docker", Technologies: []string{"PostgreSQL", "Python"}, Impact: "Adopted by 3 teams"},
		{Name: "Half", Description: "Python scripts"},
	}
	got := enhanceProjects(projects, []string{"Python", "React", "Docker", "PostgreSQL"})

	require.Len(t, got, 3)
	assert.Equal(t, []string{"Stack", "Half", "Plain"}, []string{got[0].Name, got[1].Name, got[2].Name})
	assert.Equal(t, 4, got[0].RelevanceScore)
	assert.True(t, got[0].Highlight)
	assert.Empty(t, got[0].GeneratedImpact)
	assert.False(t, got[1].Highlight)
	assert.Equal(t, "Implemented using 0 technologies, demonstrating full-stack development capabilities", got[2].GeneratedImpact)
}

func TestFormatEducation(t *testing.T) {
	got := formatEducation([]types.Education{
		{Institution: "A", GPA: types.FloatPtr(3.5)},
		{Institution: "B", GPA: types.FloatPtr(3.4)},
		{Institution: "C"},
	})
	assert.True(t, got[0].HighlightGPA)
	assert.False(t, got[1].HighlightGPA)
	assert.False(t, got[2].HighlightGPA)
}

func TestBuildResume(t *testing.T) {
	kw := ExtractKeywords(sampleJD)
	r := BuildResume(sampleProfile(), kw, types.ToneTechnical)

	assert.Equal(t, "Priya Sharma", r.Header.Name)
	assert.Equal(t, "github.com/priya-sharma", r.Header.GitHub)
	assert.Equal(t, head(kw, atsKeywordLimit), r.ATSKeywordsUsed)
	assert.NotNil(t, r.Certifications)
	require.Len(t, r.Experience, 1)
	assert.Equal(t, []string{"Python", "PostgreSQL"}, r.Experience[0].TechnologiesHighlighted)
	assert.True(t, r.Education[0].HighlightGPA)
	assert.Equal(t, types.ToneTechnical, r.Metadata.Tone)
}
