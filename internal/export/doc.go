package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

//go:embed site/*.html site/*.css site/*.js site/*.tmpl
var assets embed.FS

var (
	parseOnce sync.Once
	pages     *template.Template
	parseErr  error
)

func templates() (*template.Template, error) {
	parseOnce.Do(func() {
		pages, parseErr = template.ParseFS(assets, "site/*.html")
		if parseErr != nil {
			parseErr = fmt.Errorf("failed to parse export templates: %w", parseErr)
		}
	})
	return pages, parseErr
}

func asset(name string) string {
	data, err := assets.ReadFile("site/" + name)
	if err != nil {
		panic(fmt.Sprintf("missing embedded asset %s: %v", name, err))
	}
	return string(data)
}

func executePage(name string, data any) ([]byte, error) {
	tmpl, err := templates()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// ExportResumeDoc wraps the inner markup of the rendered resume (#resumeDoc) in a
// print stylesheet and returns it as a word-processor document. product is the
// filename suffix; empty means DefaultProduct.
func ExportResumeDoc(markup template.HTML, product string) (*File, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(markup)))
	if err != nil {
		return nil, &PreconditionError{Action: "resume export", Cause: ErrNoResume}
	}
	resume := doc.Find(resumeDocSelector).First()
	if resume.Length() == 0 {
		return nil, &PreconditionError{Action: "resume export", Cause: ErrNoResume}
	}

	body, err := resume.Html()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize resume markup: %w", err)
	}
	name := strings.TrimSpace(resume.Find(resumeNameSelector).First().Text())
	if name == "" {
		name = DefaultCandidate
	}

	data, err := executePage("resume_doc", struct {
		Name   string
		Styles template.CSS
		Body   template.HTML
	}{
		Name: name,
		// #nosec G203 -- fixed embedded stylesheet
		Styles: template.CSS(asset("resume_doc.css")),
		// #nosec G203 -- re-serialized from markup produced by html/template
		Body: template.HTML(body),
	})
	if err != nil {
		return nil, err
	}

	if product == "" {
		product = DefaultProduct
	}
	return &File{
		Name:        SanitizeFilename(name, DefaultBaseName) + "-" + product + resumeDocSuffix,
		ContentType: ResumeDocType,
		Data:        data,
	}, nil
}
