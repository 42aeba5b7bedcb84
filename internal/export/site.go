package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"html/template"
	"path"
	"strconv"
	"strings"
	texttemplate "text/template"

	"github.com/jonathan/buildmyfolio/internal/rendering"
	"github.com/jonathan/buildmyfolio/internal/types"
)

// Site content limits.
const (
	SiteProjectLimit  = 9
	SiteSkillLimit    = 8
	SiteInterestLimit = 8
	siteTagLimit      = 6
	siteSkillNames    = 3
)

// Fallback text for the generated site.
const (
	DefaultSiteName    = "Developer Portfolio"
	DefaultSiteTagline = "AI-focused builder and engineer"
	DefaultSiteAbout   = "A portfolio generated with BuildMyFolio."
	DefaultSiteTitle   = "Portfolio"
	DefaultProjectDesc = "Project details not available."
	DefaultProjectName = "Project"
	DefaultSkillLabel  = "Skill"
)

var siteCardColors = []string{"#b794f6", "#93c5fd", "#c4b5fd", "#a5b4fc"}

// SiteFile is one file of the packaged site, relative to the site root.
type SiteFile struct {
	Path    string
	Content []byte
}

type siteStat struct {
	Label string
	Value string
}

type siteProject struct {
	Color       string
	Category    string
	Name        string
	Description string
	Tags        []string
	LiveURL     string
	GitHubURL   string
}

type siteSkill struct {
	Category string
	Names    string
	Percent  int
}

type siteView struct {
	Title       string
	DisplayName string
	Tagline     string
	About       string
	Interests   []string
	Stats       []siteStat
	Projects    []siteProject
	Skills      []siteSkill
	Email       string
	GitHub      string
	LinkedIn    string
	Styles      template.CSS
	Script      template.JS
}

func newSiteView(pf *types.Portfolio) siteView {
	projects := pf.FeaturedProjects
	if len(projects) > SiteProjectLimit {
		projects = projects[:SiteProjectLimit]
	}
	skills := pf.SkillsVisualization
	if len(skills) > SiteSkillLimit {
		skills = skills[:SiteSkillLimit]
	}

	v := siteView{
		Title:       firstNonEmpty(pf.Bio.Headline, DefaultSiteTitle),
		DisplayName: firstNonEmpty(pf.Bio.Headline, pf.Contact.Name, DefaultSiteName),
		Tagline:     firstNonEmpty(pf.Bio.Tagline, DefaultSiteTagline),
		About:       firstNonEmpty(pf.Bio.About, DefaultSiteAbout),
		Interests:   limit(pf.Bio.Interests, SiteInterestLimit),
		Email:       pf.Contact.Email,
		GitHub:      rendering.NormalizeURL(pf.Contact.GitHub),
		LinkedIn:    rendering.NormalizeURL(pf.Contact.LinkedIn),
		// #nosec G203 -- fixed embedded stylesheet
		Styles: template.CSS(asset("styles.css")),
		// #nosec G203 -- fixed embedded script
		Script: template.JS(asset("script.js")),
	}

	built := pf.Stats.ProjectsBuilt
	if built == 0 {
		built = len(projects)
	}
	years := pf.Stats.YearsCoding
	if years == 0 {
		years = 1
	}
	v.Stats = []siteStat{
		{"Projects Built", strconv.Itoa(built)},
		{"Technologies", strconv.Itoa(pf.Stats.Technologies)},
		{"Years Coding", strconv.Itoa(years) + "+"},
		{"Certifications", strconv.Itoa(pf.Stats.Certifications)},
	}

	for i, p := range projects {
		tags := p.Tags
		if len(tags) == 0 {
			tags = p.Technologies
		}
		v.Projects = append(v.Projects, siteProject{
			Color:       firstNonEmpty(p.CardColor, siteCardColors[i%len(siteCardColors)]),
			Category:    firstNonEmpty(p.Category, rendering.DefaultCategory),
			Name:        firstNonEmpty(p.Name, DefaultProjectName),
			Description: firstNonEmpty(p.Description, DefaultProjectDesc),
			Tags:        limit(tags, siteTagLimit),
			LiveURL:     rendering.NormalizeURL(p.LiveURL),
			GitHubURL:   rendering.NormalizeURL(p.GitHubURL),
		})
	}

	for _, s := range skills {
		v.Skills = append(v.Skills, siteSkill{
			Category: firstNonEmpty(s.Category, DefaultSkillLabel),
			Names:    strings.Join(limit(s.Skills, siteSkillNames), ", "),
			Percent:  min(100, max(0, s.Proficiency)),
		})
	}
	return v
}

// SiteFiles builds the deployable file set for a portfolio: index.html, styles.css,
// script.js, README.md and the .nojekyll and .gitignore markers.
func SiteFiles(pf *types.Portfolio) ([]SiteFile, error) {
	if pf == nil {
		return nil, &PreconditionError{Action: "portfolio packaging", Cause: ErrNoPortfolio}
	}
	view := newSiteView(pf)

	index, err := executePage("index", view)
	if err != nil {
		return nil, err
	}
	readme, err := buildReadme(view.Title)
	if err != nil {
		return nil, err
	}

	return []SiteFile{
		{Path: "index.html", Content: index},
		{Path: "styles.css", Content: []byte(asset("styles.css"))},
		{Path: "script.js", Content: []byte(asset("script.js"))},
		{Path: "README.md", Content: readme},
		{Path: ".nojekyll", Content: []byte{}},
		{Path: ".gitignore", Content: []byte(".DS_Store\n")},
	}, nil
}

func buildReadme(title string) ([]byte, error) {
	tmpl, err := texttemplate.New("README.md.tmpl").ParseFS(assets, "site/README.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse readme template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Title string }{html.EscapeString(title)}); err != nil {
		return nil, fmt.Errorf("failed to render readme: %w", err)
	}
	return buf.Bytes(), nil
}

// SiteRoot returns the archive folder name for a portfolio.
func SiteRoot(pf *types.Portfolio) string {
	headline := ""
	if pf != nil {
		headline = pf.Bio.Headline
	}
	return SanitizeFilename(headline, DefaultSiteRoot) + siteFolderSuffix
}

// PackageSite archives the site files under SiteRoot(pf). Nothing is returned unless
// the whole archive was written.
func PackageSite(pf *types.Portfolio) (*File, error) {
	files, err := SiteFiles(pf)
	if err != nil {
		return nil, err
	}
	root := SiteRoot(pf)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(path.Join(root, f.Path))
		if err != nil {
			return nil, &PreconditionError{Action: "portfolio packaging", Cause: fmt.Errorf("%w: %v", ErrArchive, err)}
		}
		if _, err := w.Write(f.Content); err != nil {
			return nil, &PreconditionError{Action: "portfolio packaging", Cause: fmt.Errorf("%w: %v", ErrArchive, err)}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, &PreconditionError{Action: "portfolio packaging", Cause: fmt.Errorf("%w: %v", ErrArchive, err)}
	}

	return &File{
		Name:        root + ".zip",
		ContentType: ZipType,
		Data:        buf.Bytes(),
	}, nil
}

// PreviewPage renders the site as one page with the stylesheet and script inlined.
func PreviewPage(pf *types.Portfolio) (*File, error) {
	if pf == nil {
		return nil, &PreconditionError{Action: "portfolio preview", Cause: ErrNoPortfolio}
	}
	data, err := executePage("preview", newSiteView(pf))
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        SiteRoot(pf) + ".html",
		ContentType: HTMLType,
		Data:        data,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func limit(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
