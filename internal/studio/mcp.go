package studio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/jonathan/buildmyfolio/internal/rendering"
	"github.com/jonathan/buildmyfolio/internal/server"
	"github.com/jonathan/buildmyfolio/internal/types"
)

// BundleResourceURI exposes the current bundle as JSON.
const BundleResourceURI = "studio://bundle"

// NewMCPServer registers the studio tools over s's session. outDir is where
// package_portfolio writes archives; empty means the working directory.
func NewMCPServer(s *Studio, outDir string) *mcpserver.MCPServer {
	srv := mcpserver.NewMCPServer(
		"buildmyfolio",
		server.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, true),
		mcpserver.WithInstructions("BuildMyFolio turns a candidate profile into a tailored resume, cover letter and portfolio site, and scores resumes against job descriptions."),
		mcpserver.WithRecovery(),
	)

	srv.AddTool(
		mcp.NewTool("generate_documents",
			mcp.WithDescription("Generate a resume, cover letter, portfolio and skills analysis from a profile. Falls back to local generation when the service is unavailable."),
			mcp.WithString("profile", mcp.Description("Profile JSON (name, email, skills, education, experience, projects, target_role)")),
			mcp.WithBoolean("sample", mcp.Description("Use the built-in sample profile instead of profile")),
			mcp.WithString("job_description", mcp.Description("Job description text")),
			mcp.WithString("job_url", mcp.Description("Job posting URL, fetched when job_description is empty")),
			mcp.WithString("company_name", mcp.Description("Target company; a cover letter is only written when set")),
			mcp.WithString("tone", mcp.Description("professional, creative or technical")),
		),
		mcpGenerate(s),
	)

	srv.AddTool(
		mcp.NewTool("render_artifact",
			mcp.WithDescription("Render one tab of the current session as HTML."),
			mcp.WithString("tab", mcp.Description("resume, cover, portfolio or analysis"), mcp.Required()),
		),
		mcpRender(s),
	)

	srv.AddTool(
		mcp.NewTool("ats_score",
			mcp.WithDescription("Score resume text against a job description for applicant tracking systems."),
			mcp.WithString("resume_text", mcp.Description("Plain resume text"), mcp.Required()),
			mcp.WithString("job_description", mcp.Description("Job description text"), mcp.Required()),
		),
		mcpATS(s),
	)

	srv.AddTool(
		mcp.NewTool("package_portfolio",
			mcp.WithDescription("Write the generated portfolio as a deployable static-site zip archive."),
		),
		mcpPackage(s, outDir),
	)

	srv.AddResource(
		mcp.NewResource(
			BundleResourceURI,
			"Generated bundle",
			mcp.WithResourceDescription("The most recently generated documents as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceBundle(s),
	)

	return srv
}

func mcpGenerate(s *Studio) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		form := GenerateForm{
			Sample:         req.GetBool("sample", false),
			JobDescription: req.GetString("job_description", ""),
			JobURL:         req.GetString("job_url", ""),
			CompanyName:    req.GetString("company_name", ""),
			Tone:           types.Tone(req.GetString("tone", "")),
		}
		if raw := req.GetString("profile", ""); raw != "" && !form.Sample {
			var p types.Profile
			if err := json.Unmarshal([]byte(raw), &p); err != nil {
				return mcpError(fmt.Sprintf("profile is not valid JSON: %v", err)), nil
			}
			form.Profile = &p
		}

		bundle, err := s.Generate(ctx, form, nil)
		if err != nil {
			return mcpError(server.ErrorMessage(err)), nil
		}
		b, err := json.Marshal(bundle)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal bundle: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpRender(s *Studio) mcpserver.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tab, err := req.RequireString("tab")
		if err != nil {
			return mcpError("tab is required"), nil
		}
		markup, _, err := s.RenderTab(tab)
		if err != nil {
			return mcpError(server.ErrorMessage(err)), nil
		}
		return mcpText(string(markup)), nil
	}
}

func mcpATS(s *Studio) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		score, err := s.CheckATS(ctx, req.GetString("resume_text", ""), req.GetString("job_description", ""))
		if err != nil {
			return mcpError(err.Error()), nil
		}
		b, err := json.Marshal(score)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal score: %v", err)), nil
		}
		return mcpText(fmt.Sprintf("%s (%.0f/100)\n%s", rendering.Classify(score.OverallScore).Message(), score.OverallScore, b)), nil
	}
}

// mcpPackage renders the portfolio tab first, as opening the tab would, so the
// portfolio is cached for export.
func mcpPackage(s *Studio, outDir string) mcpserver.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		f, err := s.PortfolioZip()
		if err != nil {
			return mcpError(server.ErrorMessage(err)), nil
		}
		path := filepath.Join(outDir, f.Name)
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return mcpError(fmt.Sprintf("failed to write %s: %v", path, err)), nil
		}
		return mcpText(fmt.Sprintf("Wrote %s (%d bytes)", path, len(f.Data))), nil
	}
}

func mcpResourceBundle(s *Studio) mcpserver.ResourceHandlerFunc {
	return func(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		bundle := s.Session().Bundle()
		if bundle == nil {
			return nil, errors.New(noBundleMessage)
		}
		b, err := json.Marshal(bundle)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal bundle: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
