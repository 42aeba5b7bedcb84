package engine

import (
	"fmt"
	"strings"

	"github.com/jonathan/buildmyfolio/internal/types"
)

const (
	coverSkillLimit   = 6
	descEchoLimit     = 100
	projectEchoLimit  = 120
	defaultCandidate  = "Candidate"
	defaultExpSummary = "developed strong technical skills"
)

type tonePhrases struct {
	opener  string
	closing string
}

var coverPhrases = map[types.Tone]tonePhrases{
	types.ToneProfessional: {"I am writing to express my strong interest", "I look forward to discussing how my skills align"},
	types.ToneCreative:     {"I was thrilled to discover", "I'm excited about the possibility of bringing my unique perspective"},
	types.ToneTechnical:    {"I am applying for the position of", "I would welcome the opportunity to discuss my technical background"},
}

// BuildCoverLetter builds a cover letter addressed to company. Paragraphs that have
// nothing to say are dropped; the word count is computed from the final text.
func BuildCoverLetter(p types.Profile, company string, keywords []string, tone types.Tone) *types.CoverLetter {
	role := orDefault(p.TargetRole, defaultRole)
	skills := head(p.Skills, coverSkillLimit)
	phrases := coverPhrases[tone.Normalize()]

	degree, field := defaultDegree, ""
	if len(p.Education) > 0 {
		degree = orDefault(p.Education[0].Degree, defaultDegree)
		field = p.Education[0].Field
	}

	intro := fmt.Sprintf("%s in the %s position at %s. With a %s in %s and hands-on experience in %s, I am confident in my ability to make a meaningful contribution to your team.",
		phrases.opener, role, company, degree, field, strings.Join(head(skills, 3), ", "))

	var body1 string
	if len(p.Experience) > 0 {
		exp := p.Experience[0]
		techs := exp.Technologies
		if len(techs) == 0 {
			techs = head(skills, 2)
		}
		body1 = fmt.Sprintf("In my role as %s at %s, I %s... This experience strengthened my expertise in %s.",
			exp.Role, exp.Company, truncate(orDefault(exp.Description, defaultExpSummary), descEchoLimit), strings.Join(head(techs, 3), ", "))
	} else {
		body1 = fmt.Sprintf("Through my academic projects and self-directed learning, I have developed proficiency in %s. My coursework has given me a solid theoretical foundation that I am eager to apply in a professional setting.",
			strings.Join(head(skills, 5), ", "))
	}

	var body2 string
	if proj, ok := bestProject(p.Projects, keywords); ok {
		body2 = fmt.Sprintf("One of my key projects, %s, involved %s. Built using %s, this project demonstrates my ability to deliver end-to-end solutions. ",
			proj.Name, truncate(proj.Description, projectEchoLimit), strings.Join(head(proj.Technologies, 4), ", "))
		if proj.Impact != "" {
			body2 += proj.Impact + "."
		}
		body2 = strings.TrimSpace(body2)
	}

	var jdPara string
	if len(keywords) > 0 {
		var matching []string
		for _, s := range skills {
			if anyContainsFold(s, keywords) {
				matching = append(matching, s)
			}
		}
		if len(matching) > 0 {
			jdPara = fmt.Sprintf("I noticed %s is looking for expertise in %s. My experience with %s makes me particularly well-suited for this role.",
				company, strings.Join(head(keywords, 3), ", "), strings.Join(head(matching, 3), ", "))
		}
	}

	closing := fmt.Sprintf("%s with the %s team. I am particularly drawn to %s's work and believe my background in %s would enable me to contribute effectively from day one. Thank you for considering my application.",
		phrases.closing, company, company, strings.Join(head(skills, 2), ", "))

	var paragraphs []string
	for _, para := range []string{intro, body1, body2, jdPara, closing} {
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
	}

	return &types.CoverLetter{
		Recipient:  "Hiring Manager, " + company,
		Subject:    fmt.Sprintf("Application for %s Position", role),
		Paragraphs: paragraphs,
		Signature:  orDefault(p.Name, defaultCandidate),
		WordCount:  len(strings.Fields(strings.Join(paragraphs, " "))),
	}
}

// bestProject returns the first project whose description or technologies mention a
// keyword, else the first project.
func bestProject(projects []types.Project, keywords []string) (types.Project, bool) {
	if len(projects) == 0 {
		return types.Project{}, false
	}
	for _, proj := range projects {
		text := proj.Description + strings.Join(proj.Technologies, " ")
		for _, kw := range keywords {
			if containsFold(text, kw) {
				return proj, true
			}
		}
	}
	return projects[0], true
}
