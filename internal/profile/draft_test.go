package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/buildmyfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraft_AddSkillTrimsAndDeduplicates(t *testing.T) {
	d := NewDraft()
	assert.True(t, d.AddSkill("  Python "))
	assert.False(t, d.AddSkill("Python"))
	assert.False(t, d.AddSkill("   "))
	assert.True(t, d.AddSkill("React"))

	assert.Equal(t, []string{"Python", "React"}, d.Skills())

	d.RemoveSkill("Python")
	assert.Equal(t, []string{"React"}, d.Skills())
}

func TestDraft_ArenaIDsStableAcrossEdits(t *testing.T) {
	d := NewDraft()
	first := d.AddProject(ProjectEntry{Name: "Folio"})
	second := d.AddProject(ProjectEntry{Name: "Tracker"})
	assert.NotEqual(t, first, second)

	require.NoError(t, d.UpdateProject(first, ProjectEntry{Name: "Folio v2"}))
	d.RemoveProject(second)
	third := d.AddProject(ProjectEntry{Name: "Chat"})

	rows := d.Projects()
	require.Len(t, rows, 2)
	assert.Equal(t, first, rows[0].ID)
	assert.Equal(t, "Folio v2", rows[0].Value.Name)
	assert.Equal(t, third, rows[1].ID)
	assert.NotEqual(t, second, third)
}

func TestDraft_UpdateUnknownID(t *testing.T) {
	d := NewDraft()
	err := d.UpdateExperience(uuid.New(), ExperienceEntry{Company: "X"})
	assert.Error(t, err)
}

func TestSnapshot_AppliesIdentityDefaults(t *testing.T) {
	p := NewDraft().Snapshot()

	assert.Equal(t, DefaultName, p.Name)
	assert.Equal(t, DefaultEmail, p.Email)
	assert.Equal(t, DefaultTargetRole, p.TargetRole)
	assert.Empty(t, p.Education)
	assert.NotNil(t, p.Skills)
}

func TestSnapshot_EducationDefaults(t *testing.T) {
	t.Run("single defaulted row is kept", func(t *testing.T) {
		d := NewDraft()
		d.AddEducation(EducationEntry{})
		p := d.Snapshot()

		require.Len(t, p.Education, 1)
		assert.Equal(t, types.Education{
			Institution:  DefaultInstitution,
			Degree:       DefaultDegree,
			Field:        DefaultField,
			StartYear:    DefaultStartYear,
			Achievements: []string{},
		}, p.Education[0])
	})

	t.Run("defaulted rows dropped when several exist", func(t *testing.T) {
		d := NewDraft()
		d.AddEducation(EducationEntry{})
		d.AddEducation(EducationEntry{Institution: "IIT Hyderabad", Degree: "B.Tech", StartYear: 2020})
		p := d.Snapshot()

		require.Len(t, p.Education, 1)
		assert.Equal(t, "IIT Hyderabad", p.Education[0].Institution)
		assert.Equal(t, DefaultField, p.Education[0].Field)
		assert.Equal(t, 2020, p.Education[0].StartYear)
	})
}

func TestSnapshot_FiltersEmptyRows(t *testing.T) {
	d := NewDraft()
	d.AddExperience(ExperienceEntry{Description: "orphan"})
	d.AddExperience(ExperienceEntry{Role: "Intern"})
	d.AddProject(ProjectEntry{})
	d.AddProject(ProjectEntry{Description: "unnamed but described"})
	d.AddProject(ProjectEntry{Name: "Folio"})

	p := d.Snapshot()

	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Intern", p.Experience[0].Role)
	assert.Equal(t, types.PresentEndDate, p.Experience[0].EndDate)
	assert.Equal(t, []string{}, p.Experience[0].Technologies)

	require.Len(t, p.Projects, 2)
	assert.Equal(t, DefaultProjectName, p.Projects[0].Name)
	assert.Equal(t, "Folio", p.Projects[1].Name)
}

func TestNormalize_RawProfile(t *testing.T) {
	p := Normalize(types.Profile{
		Name:       "  Sam Lee ",
		Skills:     []string{"Go", " ", "Go", "SQL"},
		Experience: []types.Experience{{}, {Company: "Acme"}},
		Projects:   []types.Project{{}, {Name: "Ledger"}},
		Education: []types.Education{
			{},
			{Institution: "MIT", StartYear: 2020},
		},
	})

	assert.Equal(t, "Sam Lee", p.Name)
	assert.Equal(t, DefaultEmail, p.Email)
	assert.Equal(t, DefaultTargetRole, p.TargetRole)
	assert.Equal(t, []string{"Go", "SQL"}, p.Skills)
	assert.Equal(t, []string{}, p.Certifications)

	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Acme", p.Experience[0].Company)
	assert.Equal(t, types.PresentEndDate, p.Experience[0].EndDate)
	require.Len(t, p.Projects, 1)
	assert.Equal(t, "Ledger", p.Projects[0].Name)
	require.Len(t, p.Education, 1)
	assert.Equal(t, "MIT", p.Education[0].Institution)
	assert.Equal(t, []string{}, p.Education[0].Achievements)

	empty := Normalize(types.Profile{Experience: []types.Experience{{}}, Projects: []types.Project{{}}})
	assert.Empty(t, empty.Experience)
	assert.Empty(t, empty.Projects)
	assert.NotNil(t, empty.Experience)
}

func TestEnsureEducation(t *testing.T) {
	p := EnsureEducation(types.Profile{Name: "A"})
	require.Len(t, p.Education, 1)
	assert.Equal(t, PlaceholderInstitution, p.Education[0].Institution)

	existing := types.Profile{Education: []types.Education{{Institution: "MIT"}}}
	assert.Equal(t, existing, EnsureEducation(existing))
}

func TestLoadDraft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	content := `{
		"name": "Priya Sharma",
		"email": "priya@example.com",
		"target_role": "Backend Engineer",
		"skills": ["Python", "Python", "Go"],
		"experience": [{"company": "TechStartup", "role": "Intern", "technologies": ["Go"]}],
		"projects": [{"name": "Folio", "description": "Portfolio builder"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	d, err := LoadDraft(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "Go"}, d.Skills())

	p := d.Snapshot()
	assert.Equal(t, "Backend Engineer", p.TargetRole)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, []string{"Go"}, p.Experience[0].Technologies)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"skills":["Python","Go"]`)
}

func TestLoadDraft_Errors(t *testing.T) {
	_, err := LoadDraft(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadDraft(path)
	assert.Error(t, err)
}

func TestSampleDraft(t *testing.T) {
	p := SampleDraft().Snapshot()

	assert.Equal(t, "Priya Sharma", p.Name)
	assert.Equal(t, "Full Stack Developer", p.TargetRole)
	assert.Len(t, p.Skills, 8)
	require.Len(t, p.Education, 1)
	assert.Equal(t, "IIT Hyderabad", p.Education[0].Institution)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, "Aug 2024", p.Experience[0].EndDate)
	require.Len(t, p.Projects, 1)
	assert.Contains(t, p.Projects[0].Impact, "200+ students")

	assert.NotSame(t, SampleDraft(), SampleDraft())
}
