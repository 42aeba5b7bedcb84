package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/buildmyfolio/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	featuredLimit       = 6
	portfolioTagLimit   = 4
	interestLimit       = 5
	chartSkillLimit     = 5
	proficiencyCeiling  = 95
	proficiencyFloor    = 40
	proficiencyStep     = 5
	defaultPortfolioWho = "Developer"
	aboutSkillLimit     = 4
)

// CardColors are assigned to projects by name length.
var CardColors = []string{"#6366f1", "#8b5cf6", "#ec4899", "#f59e0b", "#10b981", "#3b82f6", "#ef4444"}

type projectCategory struct {
	name  string
	techs []string
}

var projectCategories = []projectCategory{
	{"Web Development", []string{"react", "vue", "angular", "html", "css", "next.js"}},
	{"Machine Learning", []string{"tensorflow", "pytorch", "sklearn", "pandas", "ml", "ai"}},
	{"Mobile App", []string{"android", "ios", "flutter", "react native", "swift"}},
	{"DevOps / Cloud", []string{"docker", "kubernetes", "aws", "gcp", "azure"}},
}

var backendTechs = []string{"fastapi", "django", "flask", "express"}

type interestRule struct {
	interest string
	skills   []string
}

var interestRules = []interestRule{
	{"Artificial Intelligence", []string{"tensorflow", "pytorch", "ml", "ai"}},
	{"UI/UX Design", []string{"react", "vue", "frontend", "ui"}},
	{"Cloud Architecture", []string{"aws", "docker", "kubernetes"}},
	{"Blockchain Technology", []string{"blockchain", "web3", "solidity"}},
}

// BuildPortfolio builds the portfolio artifact.
func BuildPortfolio(p types.Profile) *types.Portfolio {
	role := p.TargetRole
	name := orDefault(p.Name, defaultPortfolioWho)

	first := "code"
	if len(p.Skills) > 0 {
		first = p.Skills[0]
	}
	taglines := []string{
		"Building tomorrow's solutions with " + first,
		fmt.Sprintf("Turning ideas into %s reality", strings.ToLower(role)),
		fmt.Sprintf("Passionate %s • Problem Solver • Innovator", role),
		"Code. Create. Impact.",
	}

	featured := make([]types.EnhancedProject, 0, featuredLimit)
	for _, proj := range head(p.Projects, featuredLimit) {
		featured = append(featured, types.EnhancedProject{
			Project:   proj,
			Tags:      nonNil(head(proj.Technologies, portfolioTagLimit)),
			Category:  CategorizeProject(proj),
			CardColor: CardColors[len([]rune(proj.Name))%len(CardColors)],
		})
	}

	testimonial := "Ask colleagues to highlight your work on your projects"
	if len(p.Projects) > 0 {
		testimonial = "Ask colleagues to highlight your work on " + orDefault(p.Projects[0].Name, "your key projects")
	}

	return &types.Portfolio{
		Bio: types.Bio{
			Headline:  role + " & Problem Solver",
			Tagline:   taglines[len([]rune(name))%len(taglines)],
			About:     aboutSection(p),
			Interests: InferInterests(p.Skills),
		},
		FeaturedProjects:    featured,
		SkillsVisualization: SkillChart(p.Skills),
		Stats: types.PortfolioStats{
			ProjectsBuilt:  len(p.Projects),
			Technologies:   distinct(p.Skills),
			YearsCoding:    max(1, len(p.Experience)) + 1,
			Certifications: len(p.Certifications),
		},
		Contact:           Header(p),
		TestimonialPrompt: testimonial,
	}
}

// CategorizeProject labels a project from its technologies, falling back to its description.
func CategorizeProject(proj types.Project) string {
	techs := make([]string, 0, len(proj.Technologies))
	for _, t := range proj.Technologies {
		techs = append(techs, strings.ToLower(t))
	}
	hasAny := func(want []string) bool {
		for _, w := range want {
			if slices.Contains(techs, w) {
				return true
			}
		}
		return false
	}

	for _, c := range projectCategories {
		if hasAny(c.techs) {
			return c.name
		}
	}
	if containsFold(proj.Description, "api") || hasAny(backendTechs) {
		return "Backend / API"
	}
	return "Software Engineering"
}

// SkillChart builds one bar per vocabulary category that any skill relates to. Proficiency
// falls by five points for each position the category's first skill sits down the list.
func SkillChart(skills []string) []types.SkillViz {
	title := cases.Title(language.English)
	out := []types.SkillViz{}
	for _, c := range skillCategories {
		var matching []string
		firstIdx := -1
		for i, s := range skills {
			for _, term := range c.words {
				if relatedTerms(s, term) {
					matching = append(matching, s)
					if firstIdx < 0 {
						firstIdx = i
					}
					break
				}
			}
		}
		if len(matching) == 0 {
			continue
		}
		out = append(out, types.SkillViz{
			Category:    title.String(strings.ReplaceAll(c.name, "_", " ")),
			Skills:      head(matching, chartSkillLimit),
			Proficiency: min(proficiencyCeiling, max(proficiencyFloor, 100-firstIdx*proficiencyStep)),
			Count:       len(matching),
		})
	}
	return out
}

// InferInterests maps skills to interest tags, then adds the two generic ones, capped at five.
func InferInterests(skills []string) []string {
	lower := make([]string, 0, len(skills))
	for _, s := range skills {
		lower = append(lower, strings.ToLower(s))
	}

	var interests []string
	for _, rule := range interestRules {
		for _, s := range rule.skills {
			if slices.Contains(lower, s) {
				interests = append(interests, rule.interest)
				break
			}
		}
	}
	interests = append(interests, "Open Source", "Tech Innovation")
	return head(interests, interestLimit)
}

func aboutSection(p types.Profile) string {
	var degree, field string
	if len(p.Education) > 0 {
		degree, field = p.Education[0].Degree, p.Education[0].Field
	}
	return fmt.Sprintf("Hi, I'm %s — a %s passionate about building impactful software. I hold a %s in %s and have built %d+ projects using technologies like %s. I thrive at the intersection of technical excellence and creative problem-solving, always looking for opportunities to learn and grow. When I'm not coding, I'm exploring new technologies and contributing to open-source projects.",
		orDefault(p.Name, "I"), orDefault(p.TargetRole, "developer"), degree, field, len(p.Projects),
		strings.Join(head(p.Skills, aboutSkillLimit), ", "))
}

func distinct(s []string) int {
	seen := make(map[string]bool, len(s))
	for _, v := range s {
		seen[v] = true
	}
	return len(seen)
}
