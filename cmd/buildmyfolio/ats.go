package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/buildmyfolio/internal/observability"
)

var atsCmd = &cobra.Command{
	Use:   "ats",
	Short: "Score a resume against a job description",
	Long: `Scores plain resume text against a job description the way an applicant tracking system would.
When the generation service is unavailable a fixed sample score is shown.`,
	RunE: runATS,
}

var (
	atsResumeFile string
	atsJobFile    string
	atsJSON       bool
)

func init() {
	atsCmd.Flags().StringVarP(&atsResumeFile, "resume", "r", "", "Path to resume text file (required)")
	atsCmd.Flags().StringVarP(&atsJobFile, "job", "j", "", "Path to job description text file (required)")
	atsCmd.Flags().BoolVar(&atsJSON, "json", false, "Print the score JSON instead of a summary")

	_ = atsCmd.MarkFlagRequired("resume")
	_ = atsCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(atsCmd)
}

func runATS(cmd *cobra.Command, _ []string) error {
	resumeText, err := readText(atsResumeFile)
	if err != nil {
		return err
	}
	jd, err := readText(atsJobFile)
	if err != nil {
		return err
	}

	score, err := newGenerator(slog.Default()).CheckATS(cmd.Context(), resumeText, jd)
	if err != nil {
		return err
	}

	if atsJSON {
		data, err := json.MarshalIndent(score, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal score: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintATSScore(score)
	return nil
}
