package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/buildmyfolio/internal/export"
	"github.com/jonathan/buildmyfolio/internal/observability"
	"github.com/jonathan/buildmyfolio/internal/orchestrator"
	"github.com/jonathan/buildmyfolio/internal/profile"
	"github.com/jonathan/buildmyfolio/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate documents from a profile",
	Long: `Generates a resume, cover letter, portfolio and skills analysis from a profile draft file.
The configured generation service is tried first; when it is unavailable the documents are synthesized locally.
A cover letter is only written when --company is set.`,
	RunE: runGenerate,
}

var (
	generateProfileFile string
	generateSample      bool
	generateJobFile     string
	generateJobURL      string
	generateCompany     string
	generateTone        string
	generateOutputFile  string
	generateJSON        bool
	generateResume      bool
	generateCover       bool
	generatePortfolio   bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateProfileFile, "profile", "p", "", "Path to profile draft JSON file")
	generateCmd.Flags().BoolVar(&generateSample, "sample", false, "Use the built-in sample profile, job description and company")
	generateCmd.Flags().StringVarP(&generateJobFile, "job", "j", "", "Path to job description text file")
	generateCmd.Flags().StringVar(&generateJobURL, "job-url", "", "Job posting URL, fetched when --job is not given")
	generateCmd.Flags().StringVarP(&generateCompany, "company", "c", "", "Target company name")
	generateCmd.Flags().StringVarP(&generateTone, "tone", "t", "", "Tone: professional, creative or technical (default from config)")
	generateCmd.Flags().StringVarP(&generateOutputFile, "out", "o", "", "Path to write the bundle JSON (default <output_dir>/<name>-bundle.json)")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Print the bundle JSON instead of a summary")
	generateCmd.Flags().BoolVar(&generateResume, "resume", true, "Generate the resume")
	generateCmd.Flags().BoolVar(&generateCover, "cover", true, "Generate the cover letter")
	generateCmd.Flags().BoolVar(&generatePortfolio, "portfolio", true, "Generate the portfolio")

	generateCmd.MarkFlagsMutuallyExclusive("profile", "sample")
	generateCmd.MarkFlagsOneRequired("profile", "sample")
	generateCmd.MarkFlagsMutuallyExclusive("job", "job-url")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := slog.Default()

	in := orchestrator.GenerateInput{
		Options: types.GenerateOptions{
			Resume:    generateResume,
			Cover:     generateCover,
			Portfolio: generatePortfolio,
		},
		CompanyName: strings.TrimSpace(generateCompany),
		Tone:        settings.Tone,
	}
	if generateTone != "" {
		tone := types.Tone(generateTone)
		if tone.Normalize() != tone {
			return fmt.Errorf("unknown tone %q", generateTone)
		}
		in.Tone = tone
	}

	jd, err := readText(generateJobFile)
	if err != nil {
		return err
	}
	in.JobDescription = strings.TrimSpace(jd)

	if generateSample {
		in.Profile = profile.SampleDraft().Snapshot()
		if in.JobDescription == "" && generateJobURL == "" {
			in.JobDescription = profile.SampleJobDescription
		}
		if in.CompanyName == "" {
			in.CompanyName = profile.SampleCompany
		}
	} else {
		draft, err := profile.LoadDraft(generateProfileFile)
		if err != nil {
			return err
		}
		in.Profile = draft.Snapshot()
	}

	if in.JobDescription == "" && generateJobURL != "" {
		posting, err := newJobFetcher(logger).Fetch(ctx, generateJobURL)
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
		logger.Info("fetched job posting", "url", posting.URL, "title", posting.Title, "chars", len(posting.Text))
		in.JobDescription = posting.Text
	}

	gen := newGenerator(logger)
	bundle := gen.Generate(ctx, in, func(ev orchestrator.ProgressEvent) {
		logger.Debug(ev.Message, "step", ev.Step, "total", ev.Total)
	})

	data, err := json.MarshalIndent(types.GenerateResponse{Success: true, Data: bundle}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}

	outPath := generateOutputFile
	if outPath == "" {
		base := export.SanitizeFilename(in.Profile.Name, settings.DefaultBaseName)
		outPath = filepath.Join(settings.OutputDir, base+"-bundle.json")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write bundle file: %w", err)
	}

	if generateJSON {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintBundle(bundle)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
	return err
}
