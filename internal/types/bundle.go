package types

// SkillCategories maps a category name to its skills, in category insertion order.
type SkillCategories = Ordered[[]string]

// GeneratedBundle is the output of one generation cycle. Every artifact is optional.
type GeneratedBundle struct {
	Resume         *Resume         `json:"resume,omitempty"`
	CoverLetter    *CoverLetter    `json:"cover_letter,omitempty"`
	Portfolio      *Portfolio      `json:"portfolio,omitempty"`
	SkillsAnalysis *SkillsAnalysis `json:"skills_analysis,omitempty"`
}

// ContactInfo holds identity and link fields shown in headers and contact blocks.
type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Resume is the structured resume artifact.
type Resume struct {
	Header          ContactInfo          `json:"header"`
	Summary         string               `json:"summary"`
	Skills          SkillCategories      `json:"skills"`
	Experience      []EnhancedExperience `json:"experience"`
	Projects        []EnhancedProject    `json:"projects"`
	Education       []Education          `json:"education"`
	Certifications  []string             `json:"certifications"`
	ATSKeywordsUsed []string             `json:"ats_keywords_used,omitempty"`
	Metadata        *ResumeMetadata      `json:"metadata,omitempty"`
}

// ResumeMetadata records the targeting inputs the resume was generated for.
type ResumeMetadata struct {
	TargetRole     string `json:"target_role"`
	TargetIndustry string `json:"target_industry"`
	Tone           Tone   `json:"tone"`
}

// EnhancedExperience is an experience entry with synthesized bullet points.
// When Bullets is empty renderers fall back to the original description.
type EnhancedExperience struct {
	Experience
	Bullets                 []string `json:"bullets,omitempty"`
	TechnologiesHighlighted []string `json:"technologies_highlighted,omitempty"`
}

// EnhancedProject is a project entry with display enrichment.
type EnhancedProject struct {
	Project
	Highlight       bool     `json:"highlight"`
	RelevanceScore  int      `json:"relevance_score"`
	CardColor       string   `json:"card_color,omitempty"`
	Category        string   `json:"category,omitempty"`
	Tags            []string `json:"tags"`
	GeneratedImpact string   `json:"generated_impact,omitempty"`
}

// CoverLetter is present only when a company name was supplied.
type CoverLetter struct {
	Recipient  string   `json:"recipient"`
	Subject    string   `json:"subject"`
	Paragraphs []string `json:"paragraphs"`
	Signature  string   `json:"signature"`
	WordCount  int      `json:"word_count"`
}

// Portfolio is the micro-site artifact.
type Portfolio struct {
	Bio                 Bio               `json:"bio"`
	FeaturedProjects    []EnhancedProject `json:"featured_projects"`
	SkillsVisualization []SkillViz        `json:"skills_visualization"`
	Stats               PortfolioStats    `json:"stats"`
	Contact             ContactInfo       `json:"contact"`
	TestimonialPrompt   string            `json:"testimonial_prompt,omitempty"`
}

// Bio is the hero block of the portfolio.
type Bio struct {
	Headline  string   `json:"headline"`
	Tagline   string   `json:"tagline"`
	About     string   `json:"about"`
	Interests []string `json:"interests"`
}

// SkillViz is one bar of the skills overview.
type SkillViz struct {
	Category    string   `json:"category"`
	Skills      []string `json:"skills"`
	Proficiency int      `json:"proficiency"`
	Count       int      `json:"count"`
}

// PortfolioStats are the aggregate counters shown on the portfolio.
type PortfolioStats struct {
	ProjectsBuilt  int `json:"projects_built"`
	Technologies   int `json:"technologies"`
	YearsCoding    int `json:"years_coding"`
	Certifications int `json:"certifications"`
}

// SkillsAnalysis summarizes how the profile's skills relate to a job description.
type SkillsAnalysis struct {
	TotalSkills         int      `json:"total_skills"`
	MatchingSkills      []string `json:"matching_skills"`
	SkillGaps           []string `json:"skill_gaps"`
	MatchPercentage     float64  `json:"match_percentage"`
	TopSkills           []string `json:"top_skills"`
	LearningSuggestions []string `json:"learning_suggestions"`
}
