package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"html/template"
	"io"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/buildmyfolio/internal/rendering"
	"github.com/jonathan/buildmyfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePortfolio() *types.Portfolio {
	return &types.Portfolio{
		Bio: types.Bio{
			Headline:  "Priya Sharma",
			Tagline:   "Building tomorrow's solutions with Python",
			About:     "Hi, I'm Priya <dev> & builder.",
			Interests: []string{"Artificial Intelligence", "Open Source"},
		},
		FeaturedProjects: []types.EnhancedProject{
			{
				Project:   types.Project{Name: "Folio", Description: "Resume builder", Technologies: []string{"Python", "React"}, GitHubURL: "github.com/priya/folio", LiveURL: "javascript:alert(1)"},
				CardColor: "#6366f1",
				Category:  "Web Development",
				Tags:      []string{"Python", "React"},
			},
			{Project: types.Project{Technologies: []string{"Go"}}},
		},
		SkillsVisualization: []types.SkillViz{
			{Category: "Languages", Skills: []string{"Python", "JavaScript", "Go", "Rust"}, Proficiency: 120, Count: 4},
			{Skills: []string{"Docker"}, Proficiency: -5, Count: 1},
		},
		Stats:   types.PortfolioStats{Technologies: 8, Certifications: 1},
		Contact: types.ContactInfo{Name: "Priya Sharma", Email: "priya@example.com", GitHub: "github.com/priya"},
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		value    string
		fallback string
		want     string
	}{
		{"Priya Sharma!!", DefaultBaseName, "priya-sharma"},
		{"", DefaultBaseName, "resume"},
		{"  --Dev__Portfolio--  ", DefaultSiteRoot, "dev-portfolio"},
		{"!!!", DefaultBaseName, "resume"},
		{"", DefaultSiteRoot, "portfolio-site"},
		{"Ana María", DefaultBaseName, "ana-mar-a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.value, tt.fallback), "value %q", tt.value)
	}
}

func TestExportResumeDoc(t *testing.T) {
	markup, err := rendering.RenderResume(&types.Resume{
		Header:  types.ContactInfo{Name: "Priya Sharma", Email: "priya@example.com"},
		Summary: "Results-driven engineer",
	}, "Full Stack Developer")
	require.NoError(t, err)

	file, err := ExportResumeDoc(markup, "")
	require.NoError(t, err)

	assert.Equal(t, "priya-sharma-buildmyfolio-resume.doc", file.Name)
	assert.Equal(t, ResumeDocType, file.ContentType)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma Resume", doc.Find("title").Text())
	assert.Equal(t, "Priya Sharma", doc.Find(".resume-doc .resume-name").Text())
	assert.Equal(t, 0, doc.Find(".export-bar").Length())
	assert.Contains(t, doc.Find("style").Text(), "Calibri")
}

func TestExportResumeDoc_ProductAndDefaultName(t *testing.T) {
	file, err := ExportResumeDoc(`<div id="resumeDoc"><p>content</p></div>`, "folio")
	require.NoError(t, err)
	assert.Equal(t, "candidate-folio-resume.doc", file.Name)
}

func TestExportResumeDoc_NoResume(t *testing.T) {
	for _, markup := range []string{"", `<div class="empty-state">Not generated</div>`} {
		file, err := ExportResumeDoc(template.HTML(markup), "")
		assert.Nil(t, file)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoResume))

		var pe *PreconditionError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "Generate a resume first.", pe.UserMessage())
	}
}

func TestSiteFiles(t *testing.T) {
	files, err := SiteFiles(samplePortfolio())
	require.NoError(t, err)

	var names []string
	byName := map[string][]byte{}
	for _, f := range files {
		names = append(names, f.Path)
		byName[f.Path] = f.Content
	}
	assert.Equal(t, []string{"index.html", "styles.css", "script.js", "README.md", ".nojekyll", ".gitignore"}, names)
	assert.Empty(t, byName[".nojekyll"])
	assert.Equal(t, ".DS_Store\n", string(byName[".gitignore"]))
	assert.True(t, strings.HasPrefix(string(byName["README.md"]), "# Priya Sharma Portfolio"))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(byName["index.html"]))
	require.NoError(t, err)

	assert.Equal(t, "Priya Sharma", doc.Find("title").Text())
	assert.Equal(t, "Hi, I'm Priya <dev> & builder.", doc.Find(".about").Text())
	assert.NotContains(t, string(byName["index.html"]), "<dev>")
	assert.Equal(t, 2, doc.Find(".chip").Length())

	stats := doc.Find(".stat-num")
	require.Equal(t, 4, stats.Length())
	assert.Equal(t, "2", stats.Eq(0).Text())
	assert.Equal(t, "1+", stats.Eq(2).Text())

	projects := doc.Find(".project")
	require.Equal(t, 2, projects.Length())
	links := projects.Eq(0).Find(".link")
	require.Equal(t, 1, links.Length())
	href, _ := links.Attr("href")
	assert.Equal(t, "https://github.com/priya/folio", href)

	style, _ := projects.Eq(1).Attr("style")
	assert.Equal(t, "--card-color:#93c5fd", style)
	assert.Equal(t, "Project", projects.Eq(1).Find(".project-name").Text())
	assert.Equal(t, DefaultProjectDesc, projects.Eq(1).Find(".project-desc").Text())
	assert.Equal(t, "Engineering", projects.Eq(1).Find(".project-cat").Text())
	assert.Equal(t, "Go", projects.Eq(1).Find(".tag").Text())

	skills := doc.Find(".skill-item")
	require.Equal(t, 2, skills.Length())
	assert.Equal(t, "(Python, JavaScript, Go)", skills.Eq(0).Find(".skill-names").Text())
	assert.Equal(t, "100%", skills.Eq(0).Find("strong").Text())
	assert.Equal(t, "0%", skills.Eq(1).Find("strong").Text())
	assert.Contains(t, skills.Eq(1).Text(), "Skill")

	mail, _ := doc.Find(".contact-links a").First().Attr("href")
	assert.Equal(t, "mailto:priya@example.com", mail)
}

func TestSiteFiles_Defaults(t *testing.T) {
	files, err := SiteFiles(&types.Portfolio{})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(files[0].Content))
	require.NoError(t, err)
	assert.Equal(t, DefaultSiteTitle, doc.Find("title").Text())
	assert.Equal(t, DefaultSiteName, doc.Find(".name").Text())
	assert.Equal(t, DefaultSiteTagline, doc.Find(".tagline").Text())
	assert.Equal(t, DefaultSiteAbout, doc.Find(".about").Text())
	assert.Equal(t, 0, doc.Find(".projects").Length())
	assert.Equal(t, 0, doc.Find(".contact-links a").Length())
}

func TestSiteFiles_Limits(t *testing.T) {
	pf := &types.Portfolio{}
	for i := 0; i < 12; i++ {
		pf.FeaturedProjects = append(pf.FeaturedProjects, types.EnhancedProject{
			Project: types.Project{Name: "P", Technologies: []string{"a", "b", "c", "d", "e", "f", "g"}},
		})
		pf.SkillsVisualization = append(pf.SkillsVisualization, types.SkillViz{Category: "C", Proficiency: 50})
		pf.Bio.Interests = append(pf.Bio.Interests, "I")
	}

	files, err := SiteFiles(pf)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(files[0].Content))
	require.NoError(t, err)

	assert.Equal(t, SiteProjectLimit, doc.Find(".project").Length())
	assert.Equal(t, 6, doc.Find(".project").First().Find(".tag").Length())
	assert.Equal(t, SiteSkillLimit, doc.Find(".skill-item").Length())
	assert.Equal(t, SiteInterestLimit, doc.Find(".chip").Length())
	assert.Equal(t, "9", doc.Find(".stat-num").First().Text())
}

func TestPackageSite(t *testing.T) {
	file, err := PackageSite(samplePortfolio())
	require.NoError(t, err)

	assert.Equal(t, "priya-sharma-site.zip", file.Name)
	assert.Equal(t, ZipType, file.ContentType)

	zr, err := zip.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"priya-sharma-site/index.html",
		"priya-sharma-site/styles.css",
		"priya-sharma-site/script.js",
		"priya-sharma-site/README.md",
		"priya-sharma-site/.nojekyll",
		"priya-sharma-site/.gitignore",
	}, names)
}

func TestPackageSite_DefaultRoot(t *testing.T) {
	file, err := PackageSite(&types.Portfolio{})
	require.NoError(t, err)
	assert.Equal(t, "portfolio-site-site.zip", file.Name)
}

func TestPackageSite_NoPortfolio(t *testing.T) {
	file, err := PackageSite(nil)
	assert.Nil(t, file)
	require.ErrorIs(t, err, ErrNoPortfolio)

	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Generate your portfolio first.", pe.UserMessage())

	_, err = PreviewPage(nil)
	assert.ErrorIs(t, err, ErrNoPortfolio)
}

func readZipEntry(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	f, err := zr.Open(name)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return data
}

func TestArchiveMatchesPreview(t *testing.T) {
	pf := samplePortfolio()

	archive, err := PackageSite(pf)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(archive.Data), int64(len(archive.Data)))
	require.NoError(t, err)

	root := SiteRoot(pf)
	index := readZipEntry(t, zr, root+"/index.html")
	styles := readZipEntry(t, zr, root+"/styles.css")
	script := readZipEntry(t, zr, root+"/script.js")

	preview, err := PreviewPage(pf)
	require.NoError(t, err)
	assert.Equal(t, HTMLType, preview.ContentType)

	siteDoc, err := goquery.NewDocumentFromReader(bytes.NewReader(index))
	require.NoError(t, err)
	previewDoc, err := goquery.NewDocumentFromReader(bytes.NewReader(preview.Data))
	require.NoError(t, err)

	siteMain, err := goquery.OuterHtml(siteDoc.Find("main.site"))
	require.NoError(t, err)
	previewMain, err := goquery.OuterHtml(previewDoc.Find("main.site"))
	require.NoError(t, err)
	assert.Equal(t, siteMain, previewMain)

	href, _ := siteDoc.Find(`link[rel="stylesheet"]`).Attr("href")
	assert.Equal(t, "./styles.css", href)
	src, _ := siteDoc.Find("script").Attr("src")
	assert.Equal(t, "./script.js", src)

	assert.Equal(t, strings.TrimSpace(string(styles)), strings.TrimSpace(previewDoc.Find("style").Text()))
	assert.Equal(t, strings.TrimSpace(string(script)), strings.TrimSpace(previewDoc.Find("script").Text()))
}
