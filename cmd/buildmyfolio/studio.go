package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/buildmyfolio/internal/studio"
)

var (
	studioPort int
)

var studioCmd = &cobra.Command{
	Use:   "studio",
	Short: "Start the interactive studio",
	Long: `Start the studio web app: edit a profile, generate documents with live progress, switch tabs,
check ATS scores and download the resume document, PDFs and the portfolio site archive.`,
	RunE: runStudio,
}

func init() {
	studioCmd.Flags().IntVar(&studioPort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(studioCmd)
}

func runStudio(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := settings.StudioPort
	if studioPort != 0 {
		port = studioPort
	}
	s := newStudio(slog.Default(), port)
	slog.Info("studio ready", "url", "http://localhost:"+strconv.Itoa(port))
	return s.Serve(ctx)
}

func newStudio(logger *slog.Logger, port int) *studio.Studio {
	return studio.New(studio.Config{
		Port:      port,
		Generator: newGenerator(logger),
		Product:   settings.ProductName,
		Tone:      settings.Tone,
		Fetcher:   newJobFetcher(logger),
		Logger:    logger,
	})
}
