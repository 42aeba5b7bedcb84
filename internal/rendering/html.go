package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/jonathan/buildmyfolio/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	parseOnce sync.Once
	parsed    *template.Template
	parseErr  error
)

// Fallback text shown when optional fields are absent.
const (
	DefaultDisplayName = "Your Name"
	DefaultTargetRole  = "Software Developer"
	DefaultSubject     = "Application Letter"
	DefaultCardColor   = "#b794f6"
	DefaultCategory    = "Engineering"
	DefaultHeadline    = "Developer"
	ProjectCardLimit   = 6
	CardDescLimit      = 120
)

// parseTemplates parses the embedded template set once.
func parseTemplates() (*template.Template, error) {
	parseOnce.Do(func() {
		parsed, parseErr = template.ParseFS(templateFS, "templates/*.html")
		if parseErr != nil {
			parseErr = &TemplateError{Cause: parseErr}
		}
	})
	return parsed, parseErr
}

func execute(name string, data any) (template.HTML, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", &TemplateError{Template: name, Cause: err}
	}
	// #nosec G203 -- produced by html/template, which escaped every interpolated value
	return template.HTML(buf.String()), nil
}

type skillTag struct {
	Category string
	Name     string
}

type experienceView struct {
	Role         string
	Company      string
	StartDate    string
	EndDate      string
	Bullets      []string
	Technologies []string
}

type projectView struct {
	Name         string
	Highlight    bool
	Description  string
	Technologies []string
	GitHubURL    string
	LiveURL      string
}

type educationView struct {
	Degree      string
	Field       string
	Institution string
	Years       string
	GPA         string
}

type resumeView struct {
	Name           string
	TargetRole     string
	Contacts       []string
	Summary        string
	Skills         []skillTag
	Experience     []experienceView
	Projects       []projectView
	Education      []educationView
	Certifications []string
}

// RenderResume renders the resume artifact. targetRole is shown under the name; when
// empty the resume's metadata role is used, then a fixed default.
func RenderResume(resume *types.Resume, targetRole string) (template.HTML, error) {
	if resume == nil {
		return RenderNotGenerated()
	}

	view := resumeView{
		Name:           orDefault(resume.Header.Name, DefaultDisplayName),
		TargetRole:     targetRole,
		Contacts:       contactItems(resume.Header),
		Summary:        resume.Summary,
		Certifications: resume.Certifications,
	}
	if view.TargetRole == "" && resume.Metadata != nil {
		view.TargetRole = resume.Metadata.TargetRole
	}
	view.TargetRole = orDefault(view.TargetRole, DefaultTargetRole)

	for _, entry := range resume.Skills {
		for _, s := range entry.Value {
			view.Skills = append(view.Skills, skillTag{Category: entry.Key, Name: s})
		}
	}

	for _, e := range resume.Experience {
		bullets := e.Bullets
		if len(bullets) == 0 {
			bullets = []string{e.Description}
		}
		view.Experience = append(view.Experience, experienceView{
			Role:         e.Role,
			Company:      e.Company,
			StartDate:    e.StartDate,
			EndDate:      orDefault(e.EndDate, types.PresentEndDate),
			Bullets:      nonBlank(bullets),
			Technologies: e.Technologies,
		})
	}

	for _, p := range resume.Projects {
		view.Projects = append(view.Projects, projectView{
			Name:         p.Name,
			Highlight:    p.Highlight,
			Description:  orDefault(p.Description, p.GeneratedImpact),
			Technologies: p.Technologies,
			GitHubURL:    NormalizeURL(p.GitHubURL),
			LiveURL:      NormalizeURL(p.LiveURL),
		})
	}

	for _, e := range resume.Education {
		view.Education = append(view.Education, educationView{
			Degree:      e.Degree,
			Field:       e.Field,
			Institution: e.Institution,
			Years:       yearRange(e.StartYear, e.EndYear),
			GPA:         formatGPA(e.GPA),
		})
	}

	return execute("resume", view)
}

func contactItems(h types.ContactInfo) []string {
	var items []string
	if h.Email != "" {
		items = append(items, "📧 "+h.Email)
	}
	if h.Phone != "" {
		items = append(items, "📱 "+h.Phone)
	}
	if h.Location != "" {
		items = append(items, "📍 "+h.Location)
	}
	if h.LinkedIn != "" {
		items = append(items, "🔗 LinkedIn")
	}
	if h.GitHub != "" {
		items = append(items, "💻 GitHub")
	}
	return items
}

func yearRange(start int, end *int) string {
	from := ""
	if start != 0 {
		from = strconv.Itoa(start)
	}
	to := types.PresentEndDate
	if end != nil && *end != 0 {
		to = strconv.Itoa(*end)
	}
	return from + " — " + to
}

func formatGPA(gpa *float64) string {
	if gpa == nil || *gpa == 0 {
		return ""
	}
	return strconv.FormatFloat(*gpa, 'f', -1, 64)
}

// RenderCoverLetter renders the cover letter, or its own empty state when absent.
func RenderCoverLetter(cl *types.CoverLetter) (template.HTML, error) {
	if cl == nil {
		return RenderEmpty(EmptyState{
			Icon:     "✉️",
			Title:    "No cover letter generated",
			Subtitle: "Enter a company name and regenerate.",
		})
	}
	view := struct {
		Subject    string
		Recipient  string
		Paragraphs []string
		Signature  string
		WordCount  int
	}{
		Subject:    orDefault(cl.Subject, DefaultSubject),
		Recipient:  cl.Recipient,
		Paragraphs: nonBlank(cl.Paragraphs),
		Signature:  orDefault(cl.Signature, DefaultDisplayName),
		WordCount:  cl.WordCount,
	}
	return execute("cover", view)
}

type statView struct {
	Value string
	Label string
}

type cardView struct {
	Color       string
	Category    string
	Name        string
	Description string
	Tags        []string
}

type skillBarView struct {
	Category    string
	Sample      string
	Proficiency int
}

// RenderPortfolio renders the in-app portfolio preview.
func RenderPortfolio(pf *types.Portfolio) (template.HTML, error) {
	if pf == nil {
		return RenderNotGenerated()
	}

	yearsCoding := pf.Stats.YearsCoding
	if yearsCoding == 0 {
		yearsCoding = 1
	}
	view := struct {
		Headline  string
		Tagline   string
		About     string
		Interests []string
		Stats     []statView
		Projects  []cardView
		Skills    []skillBarView
	}{
		Headline:  orDefault(pf.Bio.Headline, DefaultHeadline),
		Tagline:   pf.Bio.Tagline,
		About:     pf.Bio.About,
		Interests: pf.Bio.Interests,
		Stats: []statView{
			{strconv.Itoa(pf.Stats.ProjectsBuilt), "Projects Built"},
			{strconv.Itoa(pf.Stats.Technologies), "Technologies"},
			{strconv.Itoa(yearsCoding) + "+", "Years Coding"},
			{strconv.Itoa(pf.Stats.Certifications), "Certifications"},
		},
	}

	projects := pf.FeaturedProjects
	if len(projects) > ProjectCardLimit {
		projects = projects[:ProjectCardLimit]
	}
	for _, p := range projects {
		tags := p.Tags
		if len(tags) == 0 {
			tags = p.Technologies
		}
		view.Projects = append(view.Projects, cardView{
			Color:       orDefault(p.CardColor, DefaultCardColor),
			Category:    orDefault(p.Category, DefaultCategory),
			Name:        p.Name,
			Description: Ellipsize(p.Description, CardDescLimit),
			Tags:        head(tags, 4),
		})
	}

	for _, s := range pf.SkillsVisualization {
		view.Skills = append(view.Skills, skillBarView{
			Category:    s.Category,
			Sample:      strings.Join(head(s.Skills, 3), ", "),
			Proficiency: s.Proficiency,
		})
	}

	return execute("portfolio", view)
}

// RenderAnalysis renders the skills analysis with its match classification.
func RenderAnalysis(a *types.SkillsAnalysis) (template.HTML, error) {
	if a == nil {
		return RenderNotGenerated()
	}
	class := Classify(a.MatchPercentage)
	view := struct {
		Class          ScoreClass
		Color          string
		Message        string
		Percent        int
		TotalSkills    int
		MatchingSkills []string
		SkillGaps      []string
		TopSkills      []string
		Suggestions    []string
	}{
		Class:          class,
		Color:          class.Color(),
		Message:        class.Message(),
		Percent:        int(math.Round(a.MatchPercentage)),
		TotalSkills:    a.TotalSkills,
		MatchingSkills: a.MatchingSkills,
		SkillGaps:      a.SkillGaps,
		TopSkills:      a.TopSkills,
		Suggestions:    a.LearningSuggestions,
	}
	return execute("analysis", view)
}

type breakdownView struct {
	Label   string
	Color   string
	Percent int
}

// RenderATSScore renders an ATS score with per-component classification.
func RenderATSScore(score *types.ATSScore) (template.HTML, error) {
	if score == nil {
		return RenderNotGenerated()
	}
	class := Classify(score.OverallScore)
	view := struct {
		Class           ScoreClass
		Color           string
		Overall         string
		Breakdown       []breakdownView
		Matched         []string
		Missing         []string
		Recommendations []string
	}{
		Class:           class,
		Color:           class.Color(),
		Overall:         strconv.FormatFloat(score.OverallScore, 'f', -1, 64),
		Matched:         score.MatchedKeywords,
		Missing:         score.MissingKeywords,
		Recommendations: score.Recommendations,
	}
	for _, entry := range score.Breakdown {
		view.Breakdown = append(view.Breakdown, breakdownView{
			Label:   strings.ReplaceAll(entry.Key, "_", " "),
			Color:   Classify(entry.Value).Color(),
			Percent: int(math.Round(entry.Value)),
		})
	}
	return execute("ats", view)
}

// EmptyState is the placeholder shown instead of an absent artifact.
type EmptyState struct {
	Icon     string
	Title    string
	Subtitle string
}

// NotGenerated is the generic empty state for disabled artifacts.
var NotGenerated = EmptyState{
	Icon:     "ℹ️",
	Title:    "Not generated",
	Subtitle: "Enable this option and regenerate.",
}

// RenderEmpty renders an empty state block.
func RenderEmpty(state EmptyState) (template.HTML, error) {
	return execute("empty", state)
}

// RenderNotGenerated renders the generic empty state.
func RenderNotGenerated() (template.HTML, error) {
	return RenderEmpty(NotGenerated)
}

// RenderNotice renders a one-line warning, such as a missing-input prompt.
func RenderNotice(message string) (template.HTML, error) {
	return execute("notice", message)
}

// Ellipsize cuts s to n runes and appends "..." when anything was cut.
func Ellipsize(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func nonBlank(items []string) []string {
	var out []string
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
