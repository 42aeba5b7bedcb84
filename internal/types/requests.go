package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tone selects the voice of generated prose.
type Tone string

// Supported tones. Unknown values behave as ToneProfessional.
const (
	ToneProfessional Tone = "professional"
	ToneCreative     Tone = "creative"
	ToneTechnical    Tone = "technical"
)

// Normalize returns the tone, mapping unknown or empty values to ToneProfessional.
func (t Tone) Normalize() Tone {
	switch t {
	case ToneCreative, ToneTechnical:
		return t
	default:
		return ToneProfessional
	}
}

// GenerateOptions selects which artifacts a generation cycle should produce.
type GenerateOptions struct {
	Resume    bool `json:"resume"`
	Cover     bool `json:"cover"`
	Portfolio bool `json:"portfolio"`
}

// DefaultOptions enables every artifact.
func DefaultOptions() GenerateOptions {
	return GenerateOptions{Resume: true, Cover: true, Portfolio: true}
}

// GenerateRequest is the JSON body sent to the generation service.
type GenerateRequest struct {
	Profile             Profile `json:"profile" validate:"required"`
	GenerateResume      bool    `json:"generate_resume"`
	GenerateCoverLetter bool    `json:"generate_cover_letter"`
	GeneratePortfolio   bool    `json:"generate_portfolio"`
	JobDescription      *string `json:"job_description"`
	CompanyName         *string `json:"company_name"`
	Tone                Tone    `json:"tone"`
}

// NewGenerateRequest builds the wire request for a profile and options.
// The cover letter flag is the conjunction of the cover option and a non-empty company.
func NewGenerateRequest(profile Profile, opts GenerateOptions, jobDescription, companyName string, tone Tone) GenerateRequest {
	return GenerateRequest{
		Profile:             profile,
		GenerateResume:      opts.Resume,
		GenerateCoverLetter: WantsCoverLetter(opts, companyName),
		GeneratePortfolio:   opts.Portfolio,
		JobDescription:      optionalString(jobDescription),
		CompanyName:         optionalString(companyName),
		Tone:                tone.Normalize(),
	}
}

// WantsCoverLetter reports whether a cover letter should be produced.
func WantsCoverLetter(opts GenerateOptions, companyName string) bool {
	return opts.Cover && strings.TrimSpace(companyName) != ""
}

// JD returns the job description or "" when absent.
func (r *GenerateRequest) JD() string {
	if r.JobDescription == nil {
		return ""
	}
	return *r.JobDescription
}

// Company returns the company name or "" when absent.
func (r *GenerateRequest) Company() string {
	if r.CompanyName == nil {
		return ""
	}
	return *r.CompanyName
}

// Validate validates the GenerateRequest using the validator.
func (r *GenerateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// GenerateResponse is the envelope returned by the generation service.
type GenerateResponse struct {
	Success bool             `json:"success"`
	Data    *GeneratedBundle `json:"data"`
}

// ATSRequest asks the service to score raw resume text against a job description.
type ATSRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

// Validate validates the ATSRequest using the validator.
func (r *ATSRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ATSScore is the applicant-tracking compatibility score of a resume.
type ATSScore struct {
	OverallScore    float64          `json:"overall_score"`
	Breakdown       Ordered[float64] `json:"breakdown"`
	MatchedKeywords []string         `json:"matched_keywords"`
	MissingKeywords []string         `json:"missing_keywords"`
	FormatChecks    Ordered[bool]    `json:"format_checks,omitempty"`
	Recommendations []string         `json:"recommendations"`
}

// ATSResponse is the envelope returned by the ATS endpoint.
type ATSResponse struct {
	Success bool      `json:"success"`
	Data    *ATSScore `json:"data"`
}

// ImproveBulletsRequest asks the service to rewrite bullet points for a role.
type ImproveBulletsRequest struct {
	Bullets []string `json:"bullets" validate:"required,min=1"`
	Role    string   `json:"role"`
}

// Validate validates the ImproveBulletsRequest using the validator.
func (r *ImproveBulletsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// SkillSuggestion is one recommended skill with a reason.
type SkillSuggestion struct {
	Skill    string `json:"skill"`
	Reason   string `json:"reason"`
	Priority string `json:"priority"`
}

// ResumeTemplate describes a selectable resume layout.
type ResumeTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
