package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/buildmyfolio/internal/engine"
	"github.com/jonathan/buildmyfolio/internal/types"
)

const maxImproveBullets = 50

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": "BuildMyFolio API is running!", "version": Version})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteErr(w, err)
		return
	}

	bundle, err := s.engine.Generate(r.Context(), req)
	if err != nil {
		s.logger.Warn("generate failed", "error", err)
		WriteErr(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, types.GenerateResponse{Success: true, Data: bundle})
}

func (s *Server) handleATSScore(w http.ResponseWriter, r *http.Request) {
	var req types.ATSRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteErr(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		WriteErr(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, types.ATSResponse{Success: true, Data: engine.ScoreATS(req.ResumeText, req.JobDescription)})
}

func (s *Server) handleEnhanceSummary(w http.ResponseWriter, r *http.Request) {
	var p types.Profile
	if err := DecodeJSON(r, &p); err != nil {
		WriteErr(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "summary": s.engine.EnhanceSummary(r.Context(), p)})
}

func (s *Server) handleSuggestSkills(w http.ResponseWriter, r *http.Request) {
	var p types.Profile
	if err := DecodeJSON(r, &p); err != nil {
		WriteErr(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "suggestions": engine.SuggestSkills(p)})
}

func (s *Server) handleImproveBullets(w http.ResponseWriter, r *http.Request) {
	var req types.ImproveBulletsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteErr(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		WriteErr(w, err)
		return
	}
	if len(req.Bullets) > maxImproveBullets {
		WriteErr(w, &ErrValidation{Field: "bullets", Message: "at most 50 bullets per request"})
		return
	}
	improved := s.engine.ImproveBullets(r.Context(), req.Bullets, strings.TrimSpace(req.Role))
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "improved_bullets": improved})
}

func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"templates": engine.Templates()})
}
