// Package profile holds the editable profile draft and turns it into the immutable
// Profile snapshot submitted for generation.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/buildmyfolio/internal/types"
)

// Form defaults applied when a draft field is left blank.
const (
	DefaultName        = "Student"
	DefaultEmail       = "email@example.com"
	DefaultTargetRole  = "Software Developer"
	DefaultInstitution = "University"
	DefaultDegree      = "Bachelor's"
	DefaultField       = "Computer Science"
	DefaultStartYear   = 2021
	DefaultProjectName = "Project"

	PlaceholderInstitution = "Your University"
)

// EducationEntry is an education row as entered; zero values mean "not filled in".
type EducationEntry struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field"`
	StartYear   int      `json:"start_year"`
	EndYear     *int     `json:"end_year,omitempty"`
	GPA         *float64 `json:"gpa,omitempty"`
}

// ExperienceEntry is an experience row as entered.
type ExperienceEntry struct {
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// ProjectEntry is a project row as entered.
type ProjectEntry struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	GitHubURL    string   `json:"github_url,omitempty"`
	LiveURL      string   `json:"live_url,omitempty"`
	Impact       string   `json:"impact,omitempty"`
}

// Identity holds the single-valued form fields.
type Identity struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Location       string `json:"location,omitempty"`
	LinkedIn       string `json:"linkedin,omitempty"`
	GitHub         string `json:"github,omitempty"`
	Website        string `json:"website,omitempty"`
	TargetRole     string `json:"target_role"`
	TargetIndustry string `json:"target_industry"`
}

// Draft is the editable profile. List entries live in arenas keyed by UUID so that
// identifiers stay stable across edits and never collide within a session.
type Draft struct {
	Identity

	skills         []string
	certifications []string
	education      arena[EducationEntry]
	experience     arena[ExperienceEntry]
	projects       arena[ProjectEntry]
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{}
}

// Skills returns the skills in insertion order.
func (d *Draft) Skills() []string {
	return append([]string(nil), d.skills...)
}

// AddSkill appends a trimmed, non-duplicate skill. It reports whether the skill was added.
func (d *Draft) AddSkill(skill string) bool {
	return addTag(&d.skills, skill)
}

// RemoveSkill removes a skill by value.
func (d *Draft) RemoveSkill(skill string) {
	removeTag(&d.skills, skill)
}

// Certifications returns the certifications in insertion order.
func (d *Draft) Certifications() []string {
	return append([]string(nil), d.certifications...)
}

// AddCertification appends a trimmed, non-duplicate certification.
func (d *Draft) AddCertification(cert string) bool {
	return addTag(&d.certifications, cert)
}

// RemoveCertification removes a certification by value.
func (d *Draft) RemoveCertification(cert string) {
	removeTag(&d.certifications, cert)
}

// AddEducation stores an education row and returns its id.
func (d *Draft) AddEducation(e EducationEntry) uuid.UUID { return d.education.add(e) }

// UpdateEducation replaces the education row with the given id.
func (d *Draft) UpdateEducation(id uuid.UUID, e EducationEntry) error {
	return d.education.update(id, e)
}

// RemoveEducation deletes the education row with the given id.
func (d *Draft) RemoveEducation(id uuid.UUID) { d.education.remove(id) }

// Education returns the education rows in insertion order.
func (d *Draft) Education() []Keyed[EducationEntry] { return d.education.list() }

// AddExperience stores an experience row and returns its id.
func (d *Draft) AddExperience(e ExperienceEntry) uuid.UUID { return d.experience.add(e) }

// UpdateExperience replaces the experience row with the given id.
func (d *Draft) UpdateExperience(id uuid.UUID, e ExperienceEntry) error {
	return d.experience.update(id, e)
}

// RemoveExperience deletes the experience row with the given id.
func (d *Draft) RemoveExperience(id uuid.UUID) { d.experience.remove(id) }

// Experience returns the experience rows in insertion order.
func (d *Draft) Experience() []Keyed[ExperienceEntry] { return d.experience.list() }

// AddProject stores a project row and returns its id.
func (d *Draft) AddProject(p ProjectEntry) uuid.UUID { return d.projects.add(p) }

// UpdateProject replaces the project row with the given id.
func (d *Draft) UpdateProject(id uuid.UUID, p ProjectEntry) error {
	return d.projects.update(id, p)
}

// RemoveProject deletes the project row with the given id.
func (d *Draft) RemoveProject(id uuid.UUID) { d.projects.remove(id) }

// Projects returns the project rows in insertion order.
func (d *Draft) Projects() []Keyed[ProjectEntry] { return d.projects.list() }

// Snapshot builds the immutable Profile from the draft rows and normalizes it.
func (d *Draft) Snapshot() types.Profile {
	p := types.Profile{
		Name:           d.Name,
		Email:          d.Email,
		Phone:          d.Phone,
		Location:       d.Location,
		LinkedIn:       d.LinkedIn,
		GitHub:         d.GitHub,
		Website:        d.Website,
		TargetRole:     d.TargetRole,
		TargetIndustry: d.TargetIndustry,
		Skills:         d.Skills(),
		Certifications: d.Certifications(),
	}
	for _, row := range d.education.list() {
		e := row.Value
		p.Education = append(p.Education, types.Education{
			Institution: e.Institution,
			Degree:      e.Degree,
			Field:       e.Field,
			StartYear:   e.StartYear,
			EndYear:     e.EndYear,
			GPA:         e.GPA,
		})
	}
	for _, row := range d.experience.list() {
		p.Experience = append(p.Experience, types.Experience(row.Value))
	}
	for _, row := range d.projects.list() {
		p.Projects = append(p.Projects, types.Project(row.Value))
	}
	return Normalize(p)
}

// Normalize applies form defaults to p and drops list entries that carry no substantive
// fields. Every profile passes through it before a generation request is built.
func Normalize(p types.Profile) types.Profile {
	out := types.Profile{
		Name:           orDefault(p.Name, DefaultName),
		Email:          orDefault(p.Email, DefaultEmail),
		Phone:          strings.TrimSpace(p.Phone),
		Location:       strings.TrimSpace(p.Location),
		LinkedIn:       strings.TrimSpace(p.LinkedIn),
		GitHub:         strings.TrimSpace(p.GitHub),
		Website:        strings.TrimSpace(p.Website),
		Summary:        strings.TrimSpace(p.Summary),
		TargetRole:     orDefault(p.TargetRole, DefaultTargetRole),
		TargetIndustry: strings.TrimSpace(p.TargetIndustry),
		Skills:         tags(p.Skills),
		Certifications: tags(p.Certifications),
		Education:      []types.Education{},
		Experience:     []types.Experience{},
		Projects:       []types.Project{},
	}

	for _, e := range p.Education {
		edu := types.Education{
			Institution:  orDefault(e.Institution, DefaultInstitution),
			Degree:       orDefault(e.Degree, DefaultDegree),
			Field:        orDefault(e.Field, DefaultField),
			StartYear:    e.StartYear,
			EndYear:      e.EndYear,
			GPA:          e.GPA,
			Achievements: nonNil(e.Achievements),
			HighlightGPA: e.HighlightGPA,
		}
		if edu.StartYear == 0 {
			edu.StartYear = DefaultStartYear
		}
		if edu.Institution == DefaultInstitution && len(p.Education) != 1 {
			continue
		}
		out.Education = append(out.Education, edu)
	}

	for _, e := range p.Experience {
		if strings.TrimSpace(e.Company) == "" && strings.TrimSpace(e.Role) == "" {
			continue
		}
		out.Experience = append(out.Experience, types.Experience{
			Company:      strings.TrimSpace(e.Company),
			Role:         strings.TrimSpace(e.Role),
			StartDate:    strings.TrimSpace(e.StartDate),
			EndDate:      orDefault(e.EndDate, types.PresentEndDate),
			Description:  e.Description,
			Technologies: nonNil(e.Technologies),
		})
	}

	for _, pr := range p.Projects {
		name := orDefault(pr.Name, DefaultProjectName)
		if name == DefaultProjectName && strings.TrimSpace(pr.Description) == "" {
			continue
		}
		out.Projects = append(out.Projects, types.Project{
			Name:         name,
			Description:  pr.Description,
			Technologies: nonNil(pr.Technologies),
			GitHubURL:    strings.TrimSpace(pr.GitHubURL),
			LiveURL:      strings.TrimSpace(pr.LiveURL),
			Impact:       strings.TrimSpace(pr.Impact),
		})
	}

	return out
}

// EnsureEducation returns p with a placeholder education entry when it has none.
func EnsureEducation(p types.Profile) types.Profile {
	if len(p.Education) > 0 {
		return p
	}
	p.Education = []types.Education{{
		Institution:  PlaceholderInstitution,
		Degree:       DefaultDegree,
		Field:        DefaultField,
		StartYear:    DefaultStartYear,
		Achievements: []string{},
	}}
	return p
}

// draftFile is the on-disk JSON shape of a Draft.
type draftFile struct {
	Identity
	Skills         []string          `json:"skills"`
	Certifications []string          `json:"certifications"`
	Education      []EducationEntry  `json:"education"`
	Experience     []ExperienceEntry `json:"experience"`
	Projects       []ProjectEntry    `json:"projects"`
}

// UnmarshalJSON fills the draft from the file shape, assigning fresh ids to every row.
func (d *Draft) UnmarshalJSON(data []byte) error {
	var f draftFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*d = Draft{Identity: f.Identity}
	for _, s := range f.Skills {
		d.AddSkill(s)
	}
	for _, c := range f.Certifications {
		d.AddCertification(c)
	}
	for _, e := range f.Education {
		d.AddEducation(e)
	}
	for _, e := range f.Experience {
		d.AddExperience(e)
	}
	for _, p := range f.Projects {
		d.AddProject(p)
	}
	return nil
}

// MarshalJSON writes the draft in the file shape.
func (d *Draft) MarshalJSON() ([]byte, error) {
	f := draftFile{
		Identity:       d.Identity,
		Skills:         d.Skills(),
		Certifications: d.Certifications(),
	}
	for _, e := range d.education.list() {
		f.Education = append(f.Education, e.Value)
	}
	for _, e := range d.experience.list() {
		f.Experience = append(f.Experience, e.Value)
	}
	for _, p := range d.projects.list() {
		f.Projects = append(f.Projects, p.Value)
	}
	return json.Marshal(f)
}

// LoadDraft reads a JSON draft file.
func LoadDraft(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}
	d := NewDraft()
	if err := json.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return d, nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}

// tags trims values and drops blanks and duplicates, keeping first-seen order.
func tags(values []string) []string {
	out := []string{}
	for _, v := range values {
		addTag(&out, v)
	}
	return out
}

func addTag(list *[]string, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, existing := range *list {
		if existing == value {
			return false
		}
	}
	*list = append(*list, value)
	return true
}

func removeTag(list *[]string, value string) {
	out := (*list)[:0]
	for _, existing := range *list {
		if existing != value {
			out = append(out, existing)
		}
	}
	*list = out
}
