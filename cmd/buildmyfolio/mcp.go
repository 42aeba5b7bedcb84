package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/jonathan/buildmyfolio/internal/studio"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve studio tools over MCP on stdio",
	Long: `Runs a Model Context Protocol server on stdin/stdout exposing generate_documents, render_artifact,
ats_score and package_portfolio over one session, plus the current bundle as a resource.
Logs go to stderr.`,
	RunE: runMCP,
}

var (
	mcpOutputDir string
)

func init() {
	mcpCmd.Flags().StringVar(&mcpOutputDir, "out-dir", "", "Directory for packaged portfolio archives (default output_dir)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := mcpOutputDir
	if dir == "" {
		dir = settings.OutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	logger := slog.Default()
	s := newStudio(logger, settings.StudioPort)
	srv := studio.NewMCPServer(s, dir)

	logger.Info("mcp server listening on stdio", "out_dir", dir)
	return mcpserver.NewStdioServer(srv).Listen(ctx, os.Stdin, os.Stdout)
}
