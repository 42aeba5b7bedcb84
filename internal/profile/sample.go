package profile

import "github.com/jonathan/buildmyfolio/internal/types"

// Sample inputs used by the "load sample" action and the CLI's --sample flag.
const (
	SampleCompany        = "Google"
	SampleJobDescription = "We are looking for a Full Stack Developer with expertise in React, Python, and cloud services. " +
		"Experience with Docker, REST APIs, and PostgreSQL required. Knowledge of machine learning is a plus."
)

// SampleDraft returns a filled-in draft for a final-year student.
func SampleDraft() *Draft {
	d := NewDraft()
	d.Identity = Identity{
		Name:           "Priya Sharma",
		Email:          "priya.sharma@email.com",
		Phone:          "+91 9876543210",
		Location:       "Hyderabad, India",
		LinkedIn:       "linkedin.com/in/priya-sharma",
		GitHub:         "github.com/priya-sharma",
		TargetRole:     "Full Stack Developer",
		TargetIndustry: "Software",
	}
	for _, s := range []string{"Python", "React", "JavaScript", "FastAPI", "PostgreSQL", "Docker", "Machine Learning", "Git"} {
		d.AddSkill(s)
	}
	d.AddEducation(EducationEntry{
		Institution: "IIT Hyderabad",
		Degree:      "B.Tech",
		Field:       "Computer Science",
		StartYear:   2021,
		EndYear:     types.IntPtr(2025),
		GPA:         types.FloatPtr(8.7),
	})
	d.AddExperience(ExperienceEntry{
		Company:      "TechStartup",
		Role:         "Software Intern",
		StartDate:    "May 2024",
		EndDate:      "Aug 2024",
		Description:  "Built REST APIs using FastAPI and deployed to AWS. Improved API response time by 40% through Redis caching. Collaborated with 5-member team using Agile methodology.",
		Technologies: []string{"Python", "FastAPI", "AWS", "Redis", "PostgreSQL"},
	})
	d.AddProject(ProjectEntry{
		Name:         "BuildMyFolio Assistant",
		Description:  "AI-powered career document builder using NLP and machine learning. Analyzes job descriptions and generates tailored resumes with ATS optimization.",
		Technologies: []string{"Python", "React", "FastAPI", "TensorFlow", "PostgreSQL"},
		GitHubURL:    "github.com/priya-sharma/buildmyfolio",
		Impact:       "Used by 200+ students, improved interview callback rate by 35%",
	})
	return d
}
