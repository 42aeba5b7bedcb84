// Package main provides the buildmyfolio CLI: the generation service, the studio, and
// one-shot generation, scoring and export commands.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/buildmyfolio/internal/config"
)

var (
	configFile string
	verbose    bool

	// settings is resolved before every command runs.
	settings config.Config
)

var rootCmd = &cobra.Command{
	Use:   "buildmyfolio",
	Short: "Resume, cover letter and portfolio generator",
	Long: "BuildMyFolio turns a candidate profile into a tailored resume, cover letter, portfolio site and skills analysis, " +
		"and scores resumes against job descriptions for applicant tracking systems.",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings builds settings from defaults, the config file and the environment, then
// installs the default logger.
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if configFile != "" {
		loaded, err := config.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	cfg.ApplyEnv(os.Getenv)
	if verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	settings = cfg.MergeWithDefaults(config.Defaults())

	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: settings.Level(),
	})))
	return nil
}
