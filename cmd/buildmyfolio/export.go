package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/buildmyfolio/internal/export"
	"github.com/jonathan/buildmyfolio/internal/rendering"
	"github.com/jonathan/buildmyfolio/internal/types"
)

var (
	exportBundleFile string
	exportOutputDir  string
	renderPDFTarget  string
	renderPDFChrome  string
)

var exportDocCmd = &cobra.Command{
	Use:   "export-doc",
	Short: "Export the resume as a word-processor document",
	Long:  "Renders the resume of a generated bundle and writes it as <name>-<product>-resume.doc.",
	RunE:  runExportDoc,
}

var packageSiteCmd = &cobra.Command{
	Use:   "package-site",
	Short: "Package the portfolio as a static site archive",
	Long:  "Writes index.html, styles.css, script.js and README.md for the bundle's portfolio into a zip archive ready for static hosting.",
	RunE:  runPackageSite,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Write the portfolio as one self-contained HTML page",
	RunE:  runPreview,
}

var renderPDFCmd = &cobra.Command{
	Use:   "render-pdf",
	Short: "Print the resume or portfolio to PDF with headless Chrome",
	RunE:  runRenderPDF,
}

func init() {
	for _, cmd := range []*cobra.Command{exportDocCmd, packageSiteCmd, previewCmd, renderPDFCmd} {
		cmd.Flags().StringVarP(&exportBundleFile, "bundle", "b", "", "Path to bundle JSON file written by generate (required)")
		cmd.Flags().StringVarP(&exportOutputDir, "out-dir", "o", "", "Output directory (default output_dir)")
		_ = cmd.MarkFlagRequired("bundle")
		rootCmd.AddCommand(cmd)
	}
	renderPDFCmd.Flags().StringVar(&renderPDFTarget, "what", "resume", "Document to print: resume or portfolio")
	renderPDFCmd.Flags().StringVar(&renderPDFChrome, "chrome", "", "Chrome executable (default CHROME_PATH or the system browser)")
}

func runExportDoc(cmd *cobra.Command, _ []string) error {
	bundle, err := loadBundle(exportBundleFile)
	if err != nil {
		return err
	}
	f, err := resumeDoc(bundle)
	if err != nil {
		return err
	}
	return report(cmd, f)
}

func runPackageSite(cmd *cobra.Command, _ []string) error {
	bundle, err := loadBundle(exportBundleFile)
	if err != nil {
		return err
	}
	f, err := export.PackageSite(bundle.Portfolio)
	if err != nil {
		return err
	}
	return report(cmd, f)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	bundle, err := loadBundle(exportBundleFile)
	if err != nil {
		return err
	}
	f, err := export.PreviewPage(bundle.Portfolio)
	if err != nil {
		return err
	}
	return report(cmd, f)
}

func runRenderPDF(cmd *cobra.Command, _ []string) error {
	bundle, err := loadBundle(exportBundleFile)
	if err != nil {
		return err
	}

	var page *export.File
	switch renderPDFTarget {
	case "resume":
		page, err = resumeDoc(bundle)
	case "portfolio":
		page, err = export.PreviewPage(bundle.Portfolio)
	default:
		return fmt.Errorf("--what must be resume or portfolio, got %q", renderPDFTarget)
	}
	if err != nil {
		return err
	}

	pdf := export.NewPDFRenderer()
	if renderPDFChrome != "" {
		pdf.ExecPath = renderPDFChrome
	}
	name := strings.TrimSuffix(strings.TrimSuffix(page.Name, ".doc"), ".html")
	f, err := pdf.Render(cmd.Context(), page.Data, name)
	if err != nil {
		return err
	}
	return report(cmd, f)
}

// resumeDoc renders the bundle's resume and exports it as a document.
func resumeDoc(bundle *types.GeneratedBundle) (*export.File, error) {
	if bundle.Resume == nil {
		return nil, &export.PreconditionError{Action: "resume export", Cause: export.ErrNoResume}
	}
	role := ""
	if bundle.Resume.Metadata != nil {
		role = bundle.Resume.Metadata.TargetRole
	}
	markup, err := rendering.RenderResume(bundle.Resume, role)
	if err != nil {
		return nil, err
	}
	return export.ExportResumeDoc(markup, settings.ProductName)
}

// report writes f to the output directory and prints where it went.
func report(cmd *cobra.Command, f *export.File) error {
	path, err := writeFile(exportOutputDir, f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(f.Data))
	return err
}
