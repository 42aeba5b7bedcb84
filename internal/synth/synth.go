// Package synth is the local rule-based generator used when the remote generation
// service is unavailable. Its output is a pure, deterministic function of the request.
package synth

import (
	"fmt"
	"strings"

	"github.com/jonathan/buildmyfolio/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// bucket is a named skill category with a fixed membership list.
type bucket struct {
	name    string
	members []string
}

// OtherBucket receives every skill not named by a fixed bucket.
const OtherBucket = "other"

var buckets = []bucket{
	{"languages", []string{"Python", "JavaScript", "TypeScript", "Java", "C++", "Go", "Rust", "Swift", "Kotlin", "R"}},
	{"frameworks", []string{"React", "Next.js", "Vue", "Angular", "FastAPI", "Django", "Flask", "Express", "TensorFlow", "PyTorch"}},
	{"databases", []string{"PostgreSQL", "MySQL", "MongoDB", "Redis", "SQLite"}},
	{"cloud", []string{"AWS", "Azure", "GCP", "Docker", "Kubernetes"}},
	{"tools", []string{"Git", "GitHub", "Jira", "Figma", "Linux", "REST API"}},
}

// CardPalette is the cyclic project card color palette.
var CardPalette = []string{"#b794f6", "#93c5fd", "#c4b5fd", "#a5b4fc", "#7dd3fc"}

// Fixed text used by the rules.
const (
	defaultSkillString   = "Python, JavaScript, React"
	defaultTargetRole    = "Software Developer"
	defaultDegree        = "Bachelor's"
	defaultField         = "Computer Science"
	projectCategory      = "Software Engineering"
	featuredProjectLimit = 6
	echoLimit            = 120
	coverWordCount       = 280
	placeholderMatchPct  = 75
)

var (
	placeholderGaps     = []string{"Kubernetes", "Terraform", "GraphQL"}
	learningSuggestions = []string{"Consider exploring cloud certifications", "Add testing frameworks to your skills"}
	defaultInterests    = []string{"Open Source", "Tech Innovation", "AI/ML", "Cloud Computing"}
)

// Synthesize derives a bundle from the request. The cover letter is produced only when
// req.GenerateCoverLetter is set and a company name is present; resume and portfolio
// follow their request flags.
func Synthesize(req types.GenerateRequest) *types.GeneratedBundle {
	p := req.Profile
	f := newFacts(p)
	skills := CategorizeSkills(p.Skills)
	projects := enhanceProjects(p.Projects)

	bundle := &types.GeneratedBundle{
		SkillsAnalysis: analyze(p, req.JD()),
	}
	if req.GenerateResume {
		bundle.Resume = &types.Resume{
			Header: types.ContactInfo{
				Name:     p.Name,
				Email:    p.Email,
				Phone:    p.Phone,
				Location: p.Location,
				LinkedIn: p.LinkedIn,
				GitHub:   p.GitHub,
			},
			Summary:        f.summary(p.TargetIndustry),
			Skills:         skills,
			Experience:     enhanceExperience(p.Experience),
			Projects:       projects,
			Education:      nonNilEducation(p.Education),
			Certifications: nonNil(p.Certifications),
		}
	}
	if company := req.Company(); req.GenerateCoverLetter && company != "" {
		bundle.CoverLetter = f.coverLetter(p, company)
	}
	if req.GeneratePortfolio {
		bundle.Portfolio = f.portfolio(p, skills, projects)
	}
	return bundle
}

// CategorizeSkills partitions skills into the fixed buckets. A skill lands in the first
// bucket whose list contains it exactly, else in "other". Empty buckets are omitted and
// order within a bucket follows the input.
func CategorizeSkills(skills []string) types.SkillCategories {
	grouped := make(map[string][]string, len(buckets)+1)
	for _, s := range skills {
		name := BucketOf(s)
		grouped[name] = append(grouped[name], s)
	}

	var out types.SkillCategories
	for _, b := range buckets {
		if len(grouped[b.name]) > 0 {
			out.Set(b.name, grouped[b.name])
		}
	}
	if len(grouped[OtherBucket]) > 0 {
		out.Set(OtherBucket, grouped[OtherBucket])
	}
	return out
}

// BucketOf returns the bucket name a skill belongs to.
func BucketOf(skill string) string {
	for _, b := range buckets {
		for _, m := range b.members {
			if m == skill {
				return b.name
			}
		}
	}
	return OtherBucket
}

// facts carries the values every prose rule interpolates.
type facts struct {
	role     string
	degree   string
	field    string
	skillStr string
}

func newFacts(p types.Profile) facts {
	edu := p.FirstEducation()
	skillStr := strings.Join(head(p.Skills, 4), ", ")
	if skillStr == "" {
		skillStr = defaultSkillString
	}
	return facts{
		role:     orDefault(p.TargetRole, defaultTargetRole),
		degree:   orDefault(edu.Degree, defaultDegree),
		field:    orDefault(edu.Field, defaultField),
		skillStr: skillStr,
	}
}

func (c facts) summary(industry string) string {
	return fmt.Sprintf("Results-driven %s with a %s in %s and strong academic foundation in the %s industry. "+
		"Proficient in %s, with a proven track record of delivering impactful solutions. "+
		"Seeking to leverage technical expertise and problem-solving abilities.",
		c.role, c.degree, c.field, industry, c.skillStr)
}

func enhanceExperience(exps []types.Experience) []types.EnhancedExperience {
	out := make([]types.EnhancedExperience, 0, len(exps))
	for _, e := range exps {
		techs := strings.Join(e.Technologies, ", ")
		if techs == "" {
			techs = "key systems"
		}
		echo := truncate(e.Description, echoLimit)
		if echo == "" {
			echo = "Developed scalable solutions contributing to team goals"
		}
		e.Technologies = nonNil(e.Technologies)
		out = append(out, types.EnhancedExperience{
			Experience: e,
			Bullets: []string{
				fmt.Sprintf("Built and maintained %s applications with focus on performance and scalability", techs),
				echo + " — [Add specific metric]",
				"Collaborated with cross-functional teams using Agile methodologies to deliver features on schedule",
			},
		})
	}
	return out
}

func enhanceProjects(projects []types.Project) []types.EnhancedProject {
	out := make([]types.EnhancedProject, 0, len(projects))
	for i, p := range projects {
		n := len(p.Technologies)
		if n == 0 {
			n = 3
		}
		p.Technologies = nonNil(p.Technologies)
		out = append(out, types.EnhancedProject{
			Project:         p,
			Highlight:       i < 2,
			RelevanceScore:  3 - i,
			CardColor:       CardPalette[i%len(CardPalette)],
			Category:        projectCategory,
			Tags:            nonNil(head(p.Technologies, 4)),
			GeneratedImpact: fmt.Sprintf("Implemented using %d technologies, demonstrating full-stack capabilities", n),
		})
	}
	return out
}

func (c facts) coverLetter(p types.Profile, company string) *types.CoverLetter {
	paragraphs := []string{
		fmt.Sprintf("I am writing to express my strong interest in the %s position at %s. "+
			"With a %s in %s and hands-on experience in %s, I am confident in my ability to make a meaningful contribution to your team.",
			c.role, company, c.degree, c.field, c.skillStr),
	}

	if len(p.Experience) > 0 {
		e := p.Experience[0]
		paragraphs = append(paragraphs, fmt.Sprintf(
			"In my role as %s at %s, I developed %s. This experience strengthened my expertise in %s.",
			e.Role, e.Company,
			orDefault(truncate(e.Description, echoLimit), "strong technical skills"),
			orDefault(strings.Join(head(e.Technologies, 3), ", "), c.skillStr)))
	} else {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"Through my academic projects and self-directed learning, I have developed proficiency in %s. "+
				"My coursework has given me a solid theoretical foundation that I am eager to apply in a professional setting.",
			c.skillStr))
	}

	if len(p.Projects) > 0 {
		pr := p.Projects[0]
		paragraphs = append(paragraphs, fmt.Sprintf(
			"One of my key projects, \"%s\", involved %s. Built using %s, this project demonstrates my ability to deliver end-to-end solutions.",
			pr.Name,
			orDefault(truncate(pr.Description, echoLimit), "building an innovative solution"),
			orDefault(strings.Join(head(pr.Technologies, 4), ", "), c.skillStr)))
	}

	paragraphs = append(paragraphs, fmt.Sprintf(
		"I look forward to discussing how my skills align with the %s team. "+
			"I am particularly drawn to %s's work and believe my background in %s would enable me to contribute effectively from day one. "+
			"Thank you for considering my application.",
		company, company, strings.Join(head(p.Skills, 2), " and ")))

	return &types.CoverLetter{
		Recipient:  "Hiring Manager, " + company,
		Subject:    fmt.Sprintf("Application for %s Position", c.role),
		Paragraphs: nonEmpty(paragraphs),
		Signature:  p.Name,
		WordCount:  coverWordCount,
	}
}

func (c facts) portfolio(p types.Profile, skills types.SkillCategories, projects []types.EnhancedProject) *types.Portfolio {
	title := cases.Title(language.English)
	viz := make([]types.SkillViz, 0, len(skills))
	for i, entry := range skills {
		viz = append(viz, types.SkillViz{
			Category:    title.String(entry.Key),
			Skills:      head(entry.Value, 5),
			Proficiency: max(55, 90-8*i),
			Count:       len(entry.Value),
		})
	}

	first := "code"
	if len(p.Skills) > 0 {
		first = p.Skills[0]
	}

	return &types.Portfolio{
		Bio: types.Bio{
			Headline: c.role + " & Problem Solver",
			Tagline:  "Building impactful solutions with " + first,
			About: fmt.Sprintf("Hi, I'm %s — a %s passionate about building impactful software. "+
				"I hold a %s in %s and have built %d+ projects using %s. "+
				"I thrive at the intersection of technical excellence and creative problem-solving.",
				p.Name, c.role, c.degree, c.field, len(p.Projects), c.skillStr),
			Interests: append([]string(nil), defaultInterests...),
		},
		FeaturedProjects:    head(projects, featuredProjectLimit),
		SkillsVisualization: viz,
		Stats: types.PortfolioStats{
			ProjectsBuilt:  len(p.Projects),
			Technologies:   len(p.Skills),
			YearsCoding:    max(1, len(p.Experience)) + 1,
			Certifications: len(p.Certifications),
		},
		Contact: types.ContactInfo{
			Name:     p.Name,
			Email:    p.Email,
			GitHub:   p.GitHub,
			LinkedIn: p.LinkedIn,
		},
	}
}

// analyze builds the placeholder skills analysis. matching_skills is the first five
// skills and is not cross-referenced against the job description.
func analyze(p types.Profile, jobDescription string) *types.SkillsAnalysis {
	gaps := []string{}
	if jobDescription != "" {
		gaps = append(gaps, placeholderGaps...)
	}
	return &types.SkillsAnalysis{
		TotalSkills:         len(p.Skills),
		MatchingSkills:      nonNil(head(p.Skills, 5)),
		SkillGaps:           gaps,
		MatchPercentage:     placeholderMatchPct,
		TopSkills:           nonNil(head(p.Skills, 8)),
		LearningSuggestions: append([]string(nil), learningSuggestions...),
	}
}

// MockATSScore is the fixed score substituted when the ATS endpoint is unreachable.
func MockATSScore() *types.ATSScore {
	var breakdown types.Ordered[float64]
	breakdown.Set("keyword_match", 58)
	breakdown.Set("format_score", 80)
	breakdown.Set("action_verbs", 60)
	breakdown.Set("quantification", 30)
	return &types.ATSScore{
		OverallScore:    62,
		Breakdown:       breakdown,
		MatchedKeywords: []string{"Python", "React", "API"},
		MissingKeywords: []string{"Docker", "Kubernetes", "TypeScript"},
		Recommendations: []string{
			"Add Docker and Kubernetes experience",
			"Quantify achievements with numbers (e.g., improved performance by 40%)",
			"Use more action verbs (Led, Built, Achieved)",
			"Add LinkedIn profile to resume",
		},
	}
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		s = s[:n]
	}
	return append([]T(nil), s...)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilEducation(s []types.Education) []types.Education {
	if s == nil {
		return []types.Education{}
	}
	return s
}

func nonEmpty(paragraphs []string) []string {
	out := paragraphs[:0]
	for _, p := range paragraphs {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
