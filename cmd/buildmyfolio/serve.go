package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jonathan/buildmyfolio/internal/engine"
	"github.com/jonathan/buildmyfolio/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the generation service",
	Long: `Start the HTTP generation service that builds resumes, cover letters, portfolios and ATS scores.
Summaries are polished with Gemini when GEMINI_API_KEY is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := slog.Default()
	port := settings.APIPort
	if servePort != 0 {
		port = servePort
	}

	opts := []engine.Option{engine.WithLogger(logger)}
	polisher, closePolisher := newPolisher(cmd.Context(), logger)
	defer closePolisher()
	if polisher != nil {
		opts = append(opts, engine.WithPolisher(polisher))
		logger.Info("summary polishing enabled")
	}

	srv := server.New(server.Config{
		Port:   port,
		Engine: engine.New(opts...),
		Logger: logger,
	})
	return srv.Start()
}
