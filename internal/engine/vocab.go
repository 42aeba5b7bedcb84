package engine

import (
	"regexp"
	"strings"
)

type wordList struct {
	name  string
	words []string
}

// Action verb groups, in lookup order.
var actionVerbs = []wordList{
	{"leadership", []string{"Led", "Managed", "Directed", "Coordinated", "Supervised", "Spearheaded", "Orchestrated"}},
	{"development", []string{"Built", "Developed", "Engineered", "Architected", "Implemented", "Deployed", "Designed"}},
	{"achievement", []string{"Achieved", "Delivered", "Exceeded", "Surpassed", "Accomplished", "Attained"}},
	{"improvement", []string{"Optimized", "Enhanced", "Streamlined", "Improved", "Reduced", "Increased", "Boosted"}},
	{"collaboration", []string{"Collaborated", "Partnered", "Contributed", "Supported", "Assisted", "Facilitated"}},
	{"research", []string{"Researched", "Analyzed", "Investigated", "Evaluated", "Assessed", "Studied"}},
	{"communication", []string{"Presented", "Communicated", "Authored", "Published", "Documented", "Trained"}},
}

// Known skill vocabulary by category. Wider than the fallback buckets.
var skillCategories = []wordList{
	{"languages", []string{"Python", "JavaScript", "TypeScript", "Java", "C++", "C#", "Go", "Rust", "Swift", "Kotlin", "R", "MATLAB", "PHP", "Ruby", "Scala"}},
	{"frameworks", []string{"React", "Next.js", "Vue", "Angular", "FastAPI", "Django", "Flask", "Spring", "Express", "Node.js", "TensorFlow", "PyTorch", "Scikit-learn", "Keras"}},
	{"databases", []string{"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch", "SQLite", "Cassandra", "DynamoDB", "Firebase"}},
	{"cloud", []string{"AWS", "Azure", "GCP", "Docker", "Kubernetes", "CI/CD", "Terraform", "Jenkins"}},
	{"tools", []string{"Git", "GitHub", "Jira", "Figma", "VS Code", "Linux", "Bash", "REST API", "GraphQL"}},
	{"soft_skills", []string{"Problem-solving", "Communication", "Teamwork", "Leadership", "Adaptability", "Critical Thinking"}},
}

const otherCategory = "other"

var stopwords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true, "our": true, "will": true,
	"have": true, "are": true, "this": true, "that": true, "from": true, "your": true, "we": true,
	"in": true, "of": true, "to": true, "a": true, "an": true, "is": true, "be": true, "or": true,
	"as": true, "at": true, "by": true, "it": true, "on": true, "if": true, "no": true, "up": true,
	"do": true, "so": true,
}

var (
	wordPattern     = regexp.MustCompile(`\b[A-Za-z][A-Za-z0-9+#.-]{2,}\b`)
	sentenceSplit   = regexp.MustCompile(`[.;,\n]`)
	metricPattern   = regexp.MustCompile(`\d+%?|\d+x|million|thousand`)
	numberPattern   = regexp.MustCompile(`\d+%?|\d+x`)
	digitPattern    = regexp.MustCompile(`\d+`)
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	allActionVerbs  = flatten(actionVerbs)
	allKnownSkills  = flatten(skillCategories)
)

const minSubstringLen = 3

func flatten(lists []wordList) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l.words...)
	}
	return out
}

func verbsFor(name string) []string {
	for _, l := range actionVerbs {
		if l.name == name {
			return l.words
		}
	}
	return actionVerbs[1].words
}

// verbCategory picks development verbs for engineering roles.
func verbCategory(role string) []string {
	r := strings.ToLower(role)
	if strings.Contains(r, "develop") || strings.Contains(r, "engineer") {
		return verbsFor("development")
	}
	return verbsFor("achievement")
}

func isActionVerb(word string) bool {
	for _, v := range allActionVerbs {
		if strings.EqualFold(word, v) {
			return true
		}
	}
	return false
}

// relatedTerms reports whether a and b overlap case-insensitively: equal, or one contains
// the other when the contained term has at least three characters.
func relatedTerms(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return true
	}
	if len(lb) >= minSubstringLen && strings.Contains(la, lb) {
		return true
	}
	return len(la) >= minSubstringLen && strings.Contains(lb, la)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyContainsFold(s string, terms []string) bool {
	for _, t := range terms {
		if containsFold(s, t) {
			return true
		}
	}
	return false
}
