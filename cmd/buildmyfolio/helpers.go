package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/buildmyfolio/internal/export"
	"github.com/jonathan/buildmyfolio/internal/fetch"
	"github.com/jonathan/buildmyfolio/internal/llm"
	"github.com/jonathan/buildmyfolio/internal/orchestrator"
	"github.com/jonathan/buildmyfolio/internal/remote"
	"github.com/jonathan/buildmyfolio/internal/schemas"
	"github.com/jonathan/buildmyfolio/internal/types"
)

const browserTimeout = 45 * time.Second

// newGenerator returns a generator backed by the configured remote service, or local
// synthesis only when no remote_url is set.
func newGenerator(logger *slog.Logger) *orchestrator.Generator {
	var r orchestrator.Remote
	if settings.RemoteURL != "" {
		r = remote.NewClient(settings.RemoteURL)
		logger.Debug("using generation service", "url", settings.RemoteURL)
	}
	return orchestrator.NewGenerator(r, nil, orchestrator.WithLogger(logger))
}

// newJobFetcher returns a cached job fetcher, with a headless browser fallback when
// use_browser is set.
func newJobFetcher(logger *slog.Logger) *fetch.JobFetcher {
	opts := []fetch.JobOption{
		fetch.WithLogger(logger),
		fetch.WithCache(fetch.NewCache(0, 0)),
	}
	if settings.UseBrowser {
		opts = append(opts, fetch.WithRenderer(fetch.BrowserRenderer(os.Getenv("CHROME_PATH"), browserTimeout, logger)))
	}
	return fetch.NewJobFetcher(opts...)
}

// newPolisher returns a Gemini-backed polisher, or nil when no key is configured.
func newPolisher(ctx context.Context, logger *slog.Logger) (*llm.Polisher, func()) {
	if settings.GeminiAPIKey == "" {
		return nil, func() {}
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), settings.GeminiAPIKey)
	if err != nil {
		logger.Warn("summary polishing disabled", "error", err)
		return nil, func() {}
	}
	return llm.NewPolisher(client), func() { _ = client.Close() }
}

// loadBundle reads a bundle JSON file written by generate. Both the bare bundle and the
// {"success": true, "data": ...} envelope are accepted.
func loadBundle(path string) (*types.GeneratedBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle file: %w", err)
	}

	var envelope types.GenerateResponse
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Data != nil {
		if data, err = json.Marshal(envelope.Data); err != nil {
			return nil, fmt.Errorf("failed to re-encode bundle: %w", err)
		}
	}
	if err := schemas.ValidateBundle(data); err != nil {
		return nil, fmt.Errorf("invalid bundle file %s: %w", path, err)
	}

	var bundle types.GeneratedBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bundle JSON: %w", err)
	}
	return &bundle, nil
}

// writeFile stores f in dir, creating dir when needed, and returns the path.
func writeFile(dir string, f *export.File) (string, error) {
	if dir == "" {
		dir = settings.OutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, f.Name)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// readText returns the contents of path, or "" when path is empty.
func readText(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
