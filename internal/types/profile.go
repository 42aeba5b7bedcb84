// Package types provides type definitions for structured data used throughout the buildmyfolio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Profile is the immutable snapshot of a candidate submitted for generation.
type Profile struct {
	Name           string       `json:"name" validate:"required"`
	Email          string       `json:"email" validate:"required"`
	Phone          string       `json:"phone,omitempty"`
	Location       string       `json:"location,omitempty"`
	LinkedIn       string       `json:"linkedin,omitempty"`
	GitHub         string       `json:"github,omitempty"`
	Website        string       `json:"website,omitempty"`
	Summary        string       `json:"summary,omitempty"`
	Education      []Education  `json:"education" validate:"dive"`
	Experience     []Experience `json:"experience" validate:"dive"`
	Projects       []Project    `json:"projects" validate:"dive"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications"`
	TargetRole     string       `json:"target_role"`
	TargetIndustry string       `json:"target_industry"`
}

// Education is one academic entry. EndYear and GPA are optional.
type Education struct {
	Institution  string   `json:"institution" validate:"required"`
	Degree       string   `json:"degree" validate:"required"`
	Field        string   `json:"field" validate:"required"`
	StartYear    int      `json:"start_year" validate:"required"`
	EndYear      *int     `json:"end_year,omitempty"`
	GPA          *float64 `json:"gpa,omitempty"`
	Achievements []string `json:"achievements"`
	HighlightGPA bool     `json:"highlight_gpa,omitempty"`
}

// Experience is one work entry. EndDate defaults to "Present".
type Experience struct {
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Project is one portfolio entry.
type Project struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	GitHubURL    string   `json:"github_url,omitempty"`
	LiveURL      string   `json:"live_url,omitempty"`
	Impact       string   `json:"impact,omitempty"`
}

// PresentEndDate is the end date shown for ongoing roles.
const PresentEndDate = "Present"

// Validate validates the Profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// FirstEducation returns the first education entry, or a zero value when none exists.
func (p *Profile) FirstEducation() Education {
	if len(p.Education) == 0 {
		return Education{}
	}
	return p.Education[0]
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 {
	return &v
}
