package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/buildmyfolio/internal/types"
)

const (
	maxExperienceBullets = 5
	minExperienceBullets = 3
	minSentenceLen       = 10
	metricPromptBullets  = 2
	highlightRelevance   = 2
	highlightGPA         = 3.5
	summarySkillCount    = 4
	summaryKeywordCount  = 3
	bulletTechCount      = 4
)

var summaryOpeners = map[types.Tone]string{
	types.ToneProfessional: "Results-driven %[1]s with a %[2]s in %[3]s",
	types.ToneCreative:     "Innovative and passionate %[1]s with a %[2]s in %[3]s",
	types.ToneTechnical:    "Technical %[1]s with expertise in %[3]s and a %[2]s degree",
}

// BuildResume builds the resume artifact for a profile and job keywords.
func BuildResume(p types.Profile, keywords []string, tone types.Tone) *types.Resume {
	tone = tone.Normalize()
	return &types.Resume{
		Header:          Header(p),
		Summary:         Summary(p, keywords, tone),
		Skills:          OrganizeSkills(p.Skills, keywords),
		Experience:      enhanceExperience(p.Experience, keywords),
		Projects:        enhanceProjects(p.Projects, keywords),
		Education:       formatEducation(p.Education),
		Certifications:  nonNil(p.Certifications),
		ATSKeywordsUsed: nonNil(head(keywords, atsKeywordLimit)),
		Metadata: &types.ResumeMetadata{
			TargetRole:     p.TargetRole,
			TargetIndustry: p.TargetIndustry,
			Tone:           tone,
		},
	}
}

// Header copies the contact fields of a profile.
func Header(p types.Profile) types.ContactInfo {
	return types.ContactInfo{
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		Location: p.Location,
		LinkedIn: p.LinkedIn,
		GitHub:   p.GitHub,
		Website:  p.Website,
	}
}

// Summary composes the tone-specific summary paragraph. Job keywords not already named
// among the first four skills are appended as an extra sentence.
func Summary(p types.Profile, keywords []string, tone types.Tone) string {
	role := orDefault(p.TargetRole, defaultRole)
	industry := orDefault(p.TargetIndustry, defaultIndustry)
	degree, field := defaultDegree, defaultField
	if len(p.Education) > 0 {
		degree = orDefault(p.Education[0].Degree, defaultDegree)
		field = orDefault(p.Education[0].Field, defaultField)
	}

	opener := fmt.Sprintf(summaryOpeners[tone.Normalize()], role, degree, field)

	var expClause string
	switch n := len(p.Experience); n {
	case 0:
		expClause = "and strong academic foundation"
	case 1:
		expClause = "and 1 year of hands-on experience"
	default:
		expClause = fmt.Sprintf("and %d+ years of hands-on experience", n)
	}

	skillStr := industry + " technologies"
	if len(p.Skills) > 0 {
		skillStr = strings.Join(head(p.Skills, summarySkillCount), ", ")
	}

	var kwClause string
	var extra []string
	for _, k := range head(keywords, summaryKeywordCount) {
		if !containsFold(skillStr, k) {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		kwClause = " Experienced with " + strings.Join(extra, ", ") + "."
	}

	return fmt.Sprintf("%s %s in the %s industry. Proficient in %s, with a proven track record of delivering impactful solutions. Seeking to leverage technical expertise and problem-solving abilities as a %s.%s",
		opener, expClause, industry, skillStr, role, kwClause)
}

// OrganizeSkills groups skills by category with job-matching skills first. A skill lands
// in the first category holding an equal or containing term, else in "other"; empty
// categories are omitted.
func OrganizeSkills(skills, keywords []string) types.SkillCategories {
	var priority, regular []string
	for _, s := range skills {
		matched := false
		for _, kw := range keywords {
			if relatedTerms(s, kw) {
				matched = true
				break
			}
		}
		if matched {
			priority = append(priority, s)
		} else {
			regular = append(regular, s)
		}
	}

	grouped := make(map[string][]string)
	for _, s := range append(priority, regular...) {
		grouped[categoryOf(s)] = append(grouped[categoryOf(s)], s)
	}

	var out types.SkillCategories
	for _, c := range skillCategories {
		if v := grouped[c.name]; len(v) > 0 {
			out.Set(c.name, v)
		}
	}
	if v := grouped[otherCategory]; len(v) > 0 {
		out.Set(otherCategory, v)
	}
	return out
}

func categoryOf(skill string) string {
	ls := strings.ToLower(skill)
	for _, c := range skillCategories {
		for _, term := range c.words {
			lt := strings.ToLower(term)
			if lt == ls || (len(ls) >= minSubstringLen && strings.Contains(lt, ls)) {
				return c.name
			}
		}
	}
	return otherCategory
}

func enhanceExperience(exps []types.Experience, keywords []string) []types.EnhancedExperience {
	out := make([]types.EnhancedExperience, 0, len(exps))
	for _, exp := range exps {
		var highlighted []string
		for _, tech := range exp.Technologies {
			if anyKeywordIn(tech, keywords) {
				highlighted = append(highlighted, tech)
			}
		}
		out = append(out, types.EnhancedExperience{
			Experience:              exp,
			Bullets:                 ExperienceBullets(exp.Description, exp.Role, exp.Technologies),
			TechnologiesHighlighted: highlighted,
		})
	}
	return out
}

// ExperienceBullets splits a description into sentences and turns up to five of them into
// action-verb bullets. The first two gain a metric prompt when they carry no number. A
// technology bullet is appended when fewer than three bullets result.
func ExperienceBullets(description, role string, technologies []string) []string {
	var sentences []string
	for _, s := range sentenceSplit.Split(description, -1) {
		s = strings.TrimSpace(s)
		if len([]rune(s)) > minSentenceLen {
			sentences = append(sentences, s)
		}
	}

	verbs := verbCategory(role)
	var bullets []string
	for i, sentence := range head(sentences, maxExperienceBullets) {
		words := strings.Fields(sentence)
		if !isActionVerb(words[0]) {
			words[0] = strings.ToLower(words[0])
			sentence = verbs[i%len(verbs)] + " " + strings.Join(words, " ")
		}
		if i < metricPromptBullets && !metricPattern.MatchString(sentence) {
			sentence += " (quantify impact with metrics)"
		}
		bullets = append(bullets, sentence)
	}

	if len(technologies) > 0 && len(bullets) < minExperienceBullets {
		bullets = append(bullets, fmt.Sprintf("Utilized %s to build scalable and maintainable solutions",
			strings.Join(head(technologies, bulletTechCount), ", ")))
	}
	return bullets
}

func anyKeywordIn(s string, keywords []string) bool {
	for _, kw := range keywords {
		if containsFold(s, kw) {
			return true
		}
	}
	return false
}

// enhanceProjects scores projects by the number of keywords in their description and
// technologies, highlights those above two, and orders them by score (stable).
func enhanceProjects(projects []types.Project, keywords []string) []types.EnhancedProject {
	out := make([]types.EnhancedProject, 0, len(projects))
	for _, proj := range projects {
		text := strings.ToLower(proj.Description + strings.Join(proj.Technologies, " "))
		score := 0
		for _, kw := range keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				score++
			}
		}
		ep := types.EnhancedProject{
			Project:        proj,
			Highlight:      score > highlightRelevance,
			RelevanceScore: score,
			Tags:           nonNil(head(proj.Technologies, bulletTechCount)),
		}
		if proj.Impact == "" {
			ep.GeneratedImpact = fmt.Sprintf("Implemented using %d technologies, demonstrating full-stack development capabilities", len(proj.Technologies))
		}
		out = append(out, ep)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})
	return out
}

func formatEducation(edu []types.Education) []types.Education {
	out := make([]types.Education, 0, len(edu))
	for _, e := range edu {
		e.HighlightGPA = e.GPA != nil && *e.GPA >= highlightGPA
		out = append(out, e)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
