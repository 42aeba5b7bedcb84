package studio

import (
	_ "embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/jonathan/buildmyfolio/internal/export"
	"github.com/jonathan/buildmyfolio/internal/orchestrator"
	"github.com/jonathan/buildmyfolio/internal/profile"
	"github.com/jonathan/buildmyfolio/internal/rendering"
	"github.com/jonathan/buildmyfolio/internal/server"
	"github.com/jonathan/buildmyfolio/internal/types"
)

//go:embed assets/app.html
var appPage []byte

// noBundleMessage is returned by GET /studio/bundle before the first generation.
const noBundleMessage = "No documents generated yet."

func (s *Studio) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleApp)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /studio/sample", s.handleSample)
	mux.HandleFunc("POST /studio/generate", s.handleGenerate)
	mux.HandleFunc("POST /studio/generate/stream", s.handleGenerateStream)
	mux.HandleFunc("PUT /studio/tab", s.handleSetTab)
	mux.HandleFunc("GET /studio/render", s.handleRender)
	mux.HandleFunc("GET /studio/bundle", s.handleBundle)
	mux.HandleFunc("POST /studio/ats", s.handleATS)
	mux.HandleFunc("GET /studio/export/resume.doc", s.serveFile(s.ResumeDoc))
	mux.HandleFunc("GET /studio/export/portfolio.zip", s.serveFile(s.PortfolioZip))
	mux.HandleFunc("GET /studio/export/resume.pdf", func(w http.ResponseWriter, r *http.Request) {
		s.writeFile(w, func() (*export.File, error) { return s.ResumePDF(r.Context()) }, true)
	})
	mux.HandleFunc("GET /studio/export/portfolio.pdf", func(w http.ResponseWriter, r *http.Request) {
		s.writeFile(w, func() (*export.File, error) { return s.PortfolioPDF(r.Context()) }, true)
	})
	mux.HandleFunc("GET /studio/preview", func(w http.ResponseWriter, _ *http.Request) {
		s.writeFile(w, s.Preview, false)
	})
	return mux
}

func (s *Studio) handleApp(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", export.HTMLType)
	_, _ = w.Write(appPage)
}

func (s *Studio) handleHealth(w http.ResponseWriter, _ *http.Request) {
	server.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SampleResponse seeds the app form.
type SampleResponse struct {
	Draft          *profile.Draft `json:"draft"`
	JobDescription string         `json:"job_description"`
	CompanyName    string         `json:"company_name"`
}

func (s *Studio) handleSample(w http.ResponseWriter, _ *http.Request) {
	server.WriteJSON(w, http.StatusOK, SampleResponse{
		Draft:          profile.SampleDraft(),
		JobDescription: profile.SampleJobDescription,
		CompanyName:    profile.SampleCompany,
	})
}

func (s *Studio) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var form GenerateForm
	if err := server.DecodeJSON(r, &form); err != nil {
		server.WriteErr(w, err)
		return
	}
	bundle, err := s.Generate(r.Context(), form, nil)
	if err != nil {
		server.WriteErr(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, types.GenerateResponse{Success: true, Data: bundle})
}

// handleGenerateStream resolves the form before switching to an event stream, so input
// errors still get a JSON status response. Progress captions arrive as "step" events and
// the bundle as "complete".
func (s *Studio) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var form GenerateForm
	if err := server.DecodeJSON(r, &form); err != nil {
		server.WriteErr(w, err)
		return
	}
	in, err := s.input(r.Context(), form)
	if err != nil {
		server.WriteErr(w, err)
		return
	}
	sse, err := server.NewSSEWriter(w)
	if err != nil {
		server.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	steps := make(chan orchestrator.ProgressEvent, len(orchestrator.ProgressCaptions))
	done := make(chan *types.GeneratedBundle, 1)
	go func() {
		done <- s.gen.Generate(r.Context(), in, func(ev orchestrator.ProgressEvent) {
			select {
			case steps <- ev:
			default:
			}
		})
	}()

	for {
		select {
		case ev := <-steps:
			if err := sse.WriteEvent("step", ev); err != nil {
				s.logger.Debug("client left generation stream", "error", err)
				return
			}
		case bundle := <-done:
			// Progress has stopped by now; flush captions still queued.
			for len(steps) > 0 {
				_ = sse.WriteEvent("step", <-steps)
			}
			sse.WriteComplete(types.GenerateResponse{Success: true, Data: bundle})
			return
		}
	}
}

// TabRequest selects the active tab.
type TabRequest struct {
	Tab string `json:"tab"`
}

// TabResponse carries the rendered markup of a tab.
type TabResponse struct {
	Tab  orchestrator.Tab `json:"tab"`
	HTML template.HTML    `json:"html"`
}

func (s *Studio) handleSetTab(w http.ResponseWriter, r *http.Request) {
	var req TabRequest
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteErr(w, err)
		return
	}
	tab, err := orchestrator.ParseTab(req.Tab)
	if err != nil {
		server.WriteErr(w, &server.ErrValidation{Field: "tab", Message: err.Error()})
		return
	}
	s.Session().SetTab(tab)
	markup, err := s.Session().RenderTab(tab)
	if err != nil {
		server.WriteErr(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, TabResponse{Tab: tab, HTML: markup})
}

func (s *Studio) handleRender(w http.ResponseWriter, r *http.Request) {
	markup, _, err := s.RenderTab(r.URL.Query().Get("tab"))
	if err != nil {
		server.WriteErr(w, err)
		return
	}
	w.Header().Set("Content-Type", export.HTMLType)
	_, _ = w.Write([]byte(markup))
}

func (s *Studio) handleBundle(w http.ResponseWriter, _ *http.Request) {
	bundle := s.Session().Bundle()
	if bundle == nil {
		server.WriteError(w, http.StatusNotFound, noBundleMessage)
		return
	}
	server.WriteJSON(w, http.StatusOK, types.GenerateResponse{Success: true, Data: bundle})
}

// ATSResponse is the studio's ATS result: the score plus its rendered panel.
type ATSResponse struct {
	types.ATSResponse
	HTML template.HTML `json:"html"`
}

func (s *Studio) handleATS(w http.ResponseWriter, r *http.Request) {
	var req types.ATSRequest
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteErr(w, err)
		return
	}
	score, err := s.CheckATS(r.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		server.WriteErr(w, err)
		return
	}
	markup, err := rendering.RenderATSScore(score)
	if err != nil {
		server.WriteErr(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, ATSResponse{
		ATSResponse: types.ATSResponse{Success: true, Data: score},
		HTML:        markup,
	})
}

func (s *Studio) serveFile(build func() (*export.File, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.writeFile(w, build, true)
	}
}

// writeFile sends a generated file, as a download when attachment is set.
func (s *Studio) writeFile(w http.ResponseWriter, build func() (*export.File, error), attachment bool) {
	f, err := build()
	if err != nil {
		if server.HTTPStatus(err) == http.StatusInternalServerError {
			s.logger.Error("export failed", "error", err)
		}
		server.WriteErr(w, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType)
	if attachment {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	}
	_, _ = w.Write(f.Data)
}
