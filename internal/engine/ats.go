package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/buildmyfolio/internal/types"
)

// ATS score weights.
const (
	keywordWeight        = 0.4
	formatWeight         = 0.25
	verbWeight           = 0.2
	quantificationWeight = 0.15
)

const (
	minResumeWords       = 400
	maxResumeWords       = 800
	pointsPerVerb        = 10
	pointsPerNumber      = 15
	keywordScoreWanted   = 60
	verbScoreWanted      = 50
	matchedKeywordLimit  = 15
	missingKeywordLimit  = 10
	recommendMissedLimit = 5
	skillGapLimit        = 8
	topSkillLimit        = 8
	learnSuggestLimit    = 3
	suggestionLimit      = 8
	highPriorityCount    = 3
)

// ScoreATS scores resume text against a job description: 40% keyword coverage, 25% format
// checks, 20% action verbs and 15% quantification.
func ScoreATS(resumeText, jobDescription string) *types.ATSScore {
	keywords := ExtractKeywords(jobDescription)
	lower := strings.ToLower(resumeText)

	matched, missed := []string{}, []string{}
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		} else {
			missed = append(missed, kw)
		}
	}
	var keywordScore float64
	if len(keywords) > 0 {
		keywordScore = float64(len(matched)) / float64(len(keywords)) * 100
	}

	wordCount := len(strings.Fields(resumeText))
	var checks types.Ordered[bool]
	checks.Set("has_email", emailPattern.MatchString(resumeText))
	checks.Set("has_phone", phonePattern.MatchString(resumeText))
	checks.Set("has_linkedin", strings.Contains(lower, "linkedin"))
	checks.Set("has_github", strings.Contains(lower, "github"))
	checks.Set("word_count_ok", wordCount >= minResumeWords && wordCount <= maxResumeWords)
	checks.Set("no_tables", !strings.Contains(lower, "<table"))
	checks.Set("has_summary", anyContainsFold(lower, []string{"summary", "objective", "profile"}))
	checks.Set("has_education", strings.Contains(lower, "education") || strings.Contains(lower, "university"))
	checks.Set("has_experience", strings.Contains(lower, "experience") || strings.Contains(lower, "work"))
	checks.Set("has_skills", strings.Contains(lower, "skill"))

	passed := 0
	for _, c := range checks {
		if c.Value {
			passed++
		}
	}
	formatScore := float64(passed) / float64(len(checks)) * 100

	verbsUsed := 0
	for _, v := range allActionVerbs {
		if strings.Contains(lower, strings.ToLower(v)) {
			verbsUsed++
		}
	}
	verbScore := float64(min(100, verbsUsed*pointsPerVerb))
	quantScore := float64(min(100, len(numberPattern.FindAllString(resumeText, -1))*pointsPerNumber))

	total := math.Floor(keywordScore*keywordWeight + formatScore*formatWeight + verbScore*verbWeight + quantScore*quantificationWeight)

	var breakdown types.Ordered[float64]
	breakdown.Set("keyword_match", round1(keywordScore))
	breakdown.Set("format_score", round1(formatScore))
	breakdown.Set("action_verbs", round1(verbScore))
	breakdown.Set("quantification", round1(quantScore))

	return &types.ATSScore{
		OverallScore:    total,
		Breakdown:       breakdown,
		MatchedKeywords: head(matched, matchedKeywordLimit),
		MissingKeywords: head(missed, missingKeywordLimit),
		FormatChecks:    checks,
		Recommendations: atsRecommendations(keywordScore, checks, verbScore, missed),
	}
}

func atsRecommendations(keywordScore float64, checks types.Ordered[bool], verbScore float64, missed []string) []string {
	var recs []string
	if keywordScore < keywordScoreWanted {
		recs = append(recs, "Add more keywords from the job description: "+strings.Join(head(missed, recommendMissedLimit), ", "))
	}
	if ok, _ := checks.Get("has_linkedin"); !ok {
		recs = append(recs, "Add your LinkedIn profile URL")
	}
	if ok, _ := checks.Get("word_count_ok"); !ok {
		recs = append(recs, "Aim for 400-800 words in your resume")
	}
	if ok, _ := checks.Get("has_summary"); !ok {
		recs = append(recs, "Add a professional summary section")
	}
	if verbScore < verbScoreWanted {
		recs = append(recs, "Use more action verbs (Led, Built, Achieved, Optimized...)")
	}
	return append(recs, "Quantify your achievements with numbers and percentages")
}

// AnalyzeSkills relates a profile's skills to job keywords. Without keywords every skill
// counts as a match at 100%.
func AnalyzeSkills(p types.Profile, keywords []string) *types.SkillsAnalysis {
	matching := []string{}
	for _, s := range p.Skills {
		for _, kw := range keywords {
			if relatedTerms(s, kw) {
				matching = append(matching, s)
				break
			}
		}
	}

	gaps := []string{}
	for _, kw := range keywords {
		if !coveredBySkills(kw, p.Skills) {
			gaps = append(gaps, kw)
		}
	}
	gaps = head(gaps, skillGapLimit)

	pct := 100.0
	if len(keywords) > 0 {
		pct = round1(float64(len(matching)) / float64(len(keywords)) * 100)
	}

	suggestions := []string{}
	for _, g := range head(gaps, learnSuggestLimit) {
		suggestions = append(suggestions, "Consider learning "+g)
	}

	return &types.SkillsAnalysis{
		TotalSkills:         len(p.Skills),
		MatchingSkills:      matching,
		SkillGaps:           gaps,
		MatchPercentage:     min(pct, 100),
		TopSkills:           nonNil(head(p.Skills, topSkillLimit)),
		LearningSuggestions: suggestions,
	}
}

func coveredBySkills(keyword string, skills []string) bool {
	for _, s := range skills {
		if containsFold(s, keyword) {
			return true
		}
	}
	return false
}

var roleSkills = []wordList{
	{"frontend", []string{"TypeScript", "React", "Next.js", "Tailwind CSS", "GraphQL", "Webpack", "Jest"}},
	{"backend", []string{"Docker", "PostgreSQL", "Redis", "Kubernetes", "Kafka", "gRPC", "Terraform"}},
	{"fullstack", []string{"TypeScript", "Docker", "PostgreSQL", "Redis", "GraphQL", "Jest", "CI/CD"}},
	{"data", []string{"PySpark", "Airflow", "DBT", "Snowflake", "Tableau", "BigQuery", "MLflow"}},
	{"ml", []string{"PyTorch", "Hugging Face", "MLflow", "LangChain", "ONNX", "Triton", "Ray"}},
	{"devops", []string{"Terraform", "Ansible", "Prometheus", "Grafana", "ArgoCD", "Helm", "Vault"}},
}

var genericSkills = []string{"Docker", "Git", "PostgreSQL", "REST API", "Unit Testing", "CI/CD", "Agile"}

// SuggestSkills recommends skills the profile lacks for its target role. Role families
// are matched as substrings of the lower-cased role; unknown roles get generic suggestions.
func SuggestSkills(p types.Profile) []types.SkillSuggestion {
	role := strings.ToLower(p.TargetRole)
	have := make(map[string]bool, len(p.Skills))
	for _, s := range p.Skills {
		have[strings.ToLower(s)] = true
	}

	out := []types.SkillSuggestion{}
	for _, family := range roleSkills {
		if !strings.Contains(role, family.name) {
			continue
		}
		for _, s := range family.words {
			if have[strings.ToLower(s)] {
				continue
			}
			priority := "medium"
			if len(out) < highPriorityCount {
				priority = "high"
			}
			out = append(out, types.SkillSuggestion{
				Skill:    s,
				Reason:   fmt.Sprintf("Commonly required for %s roles", role),
				Priority: priority,
			})
		}
	}

	if len(out) == 0 {
		for _, s := range genericSkills {
			if !have[strings.ToLower(s)] {
				out = append(out, types.SkillSuggestion{Skill: s, Reason: "Widely used across all roles", Priority: "medium"})
			}
		}
	}
	return head(out, suggestionLimit)
}

// ImproveBullets prefixes each bullet with an action verb unless it already starts with
// one, and appends a metric prompt to bullets without a number.
func ImproveBullets(bullets []string, role string) []string {
	verbs := verbCategory(role)
	improved := make([]string, 0, len(bullets))
	for _, b := range bullets {
		words := strings.Fields(b)
		if len(words) == 0 {
			continue
		}
		if !isActionVerb(words[0]) {
			words[0] = strings.ToLower(words[0])
			b = verbs[len(improved)%len(verbs)] + " " + strings.Join(words, " ")
		}
		if !digitPattern.MatchString(b) {
			b += " — [Add specific metric: X%, $Y, N users]"
		}
		improved = append(improved, b)
	}
	return improved
}

// Templates lists the selectable resume layouts.
func Templates() []types.ResumeTemplate {
	return []types.ResumeTemplate{
		{ID: "modern", Name: "Modern", Description: "Clean, contemporary design"},
		{ID: "technical", Name: "Technical", Description: "Optimized for tech roles"},
		{ID: "creative", Name: "Creative", Description: "Bold, artistic layout"},
		{ID: "executive", Name: "Executive", Description: "Professional corporate style"},
		{ID: "minimal", Name: "Minimal", Description: "Clean and simple"},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
