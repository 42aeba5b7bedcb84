package orchestrator

import (
	"fmt"
	"html/template"
	"sync"

	"github.com/jonathan/buildmyfolio/internal/rendering"
	"github.com/jonathan/buildmyfolio/internal/types"
)

// Tab selects which artifact the output panel shows.
type Tab string

const (
	TabResume    Tab = "resume"
	TabCover     Tab = "cover"
	TabPortfolio Tab = "portfolio"
	TabAnalysis  Tab = "analysis"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabResume, TabCover, TabPortfolio, TabAnalysis}

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// Session is the application state for one user: the current bundle, the last portfolio
// that was rendered, and the active tab. Only the orchestrator replaces the bundle;
// readers get copies of the pointers and must treat them as read-only.
type Session struct {
	mu         sync.RWMutex
	bundle     *types.GeneratedBundle
	portfolio  *types.Portfolio
	tab        Tab
	targetRole string
}

// NewSession starts on the resume tab.
func NewSession() *Session {
	return &Session{tab: TabResume}
}

// Bundle returns the current bundle, or nil before the first generation.
func (s *Session) Bundle() *types.GeneratedBundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle
}

// Portfolio returns the most recently rendered portfolio.
func (s *Session) Portfolio() *types.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.portfolio
}

// ExportPortfolio returns the portfolio exports should use: the last rendered one, or the
// current bundle's portfolio when the tab has not been rendered.
func (s *Session) ExportPortfolio() *types.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.portfolio != nil {
		return s.portfolio
	}
	if s.bundle != nil {
		return s.bundle.Portfolio
	}
	return nil
}

// Tab returns the active tab.
func (s *Session) Tab() Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tab
}

// TargetRole returns the role of the profile that produced the current bundle.
func (s *Session) TargetRole() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.targetRole
}

// SetTab switches the active tab.
func (s *Session) SetTab(t Tab) {
	s.mu.Lock()
	s.tab = t
	s.mu.Unlock()
}

// setBundle replaces the bundle entirely. The cached portfolio is kept until the portfolio
// tab renders again.
func (s *Session) setBundle(b *types.GeneratedBundle, targetRole string) {
	s.mu.Lock()
	s.bundle = b
	s.targetRole = targetRole
	s.mu.Unlock()
}

// Render renders the active tab.
func (s *Session) Render() (template.HTML, error) {
	return s.RenderTab(s.Tab())
}

// RenderTab renders tab from the current bundle. Absent artifacts render an empty state;
// the cover tab uses its own. Rendering the portfolio tab caches that portfolio for export.
func (s *Session) RenderTab(tab Tab) (template.HTML, error) {
	s.mu.RLock()
	b, role := s.bundle, s.targetRole
	s.mu.RUnlock()
	if b == nil {
		return rendering.RenderNotGenerated()
	}

	switch tab {
	case TabResume:
		if b.Resume == nil {
			return rendering.RenderNotGenerated()
		}
		return rendering.RenderResume(b.Resume, role)
	case TabCover:
		return rendering.RenderCoverLetter(b.CoverLetter)
	case TabPortfolio:
		if b.Portfolio == nil {
			return rendering.RenderNotGenerated()
		}
		out, err := rendering.RenderPortfolio(b.Portfolio)
		if err != nil {
			return "", err
		}
		s.mu.Lock()
		s.portfolio = b.Portfolio
		s.mu.Unlock()
		return out, nil
	case TabAnalysis:
		if b.SkillsAnalysis == nil {
			return rendering.RenderNotGenerated()
		}
		return rendering.RenderAnalysis(b.SkillsAnalysis)
	default:
		return "", fmt.Errorf("unknown tab %q", tab)
	}
}
