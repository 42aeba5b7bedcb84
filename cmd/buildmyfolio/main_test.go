package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/buildmyfolio/internal/config"
	"github.com/jonathan/buildmyfolio/internal/types"
)

// execute runs the CLI in-process with flags reset to their defaults.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvRemoteURL, "")
	t.Setenv(config.EnvGeminiKey, "")

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func generateSampleBundle(t *testing.T, extra ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.json")
	_, err := execute(t, append([]string{"generate", "--sample", "--out", path}, extra...)...)
	require.NoError(t, err)
	return path
}

func TestGenerate_Sample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "bundle.json")
	out, err := execute(t, "generate", "--sample", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "RESUME")
	assert.Contains(t, out, "Priya Sharma")
	assert.Contains(t, out, "Wrote "+path)

	bundle, err := loadBundle(path)
	require.NoError(t, err)
	require.NotNil(t, bundle.Resume)
	assert.NotNil(t, bundle.CoverLetter)
	assert.NotNil(t, bundle.Portfolio)
	assert.NotNil(t, bundle.SkillsAnalysis)
}

func TestGenerate_ProfileFile(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(profilePath, []byte(`{
		"name": "Sam Lee",
		"email": "sam@example.com",
		"target_role": "Backend Engineer",
		"skills": ["Go", "PostgreSQL", "Docker"],
		"projects": [{"name": "Ledger", "description": "Double-entry bookkeeping API", "technologies": ["Go"]}]
	}`), 0o644))
	jobPath := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(jobPath, []byte("Backend engineer with Go and Kubernetes"), 0o644))
	outPath := filepath.Join(dir, "bundle.json")

	out, err := execute(t, "generate", "--profile", profilePath, "--job", jobPath,
		"--company", "Acme", "--cover=false", "--tone", "technical", "--json", "--out", outPath)
	require.NoError(t, err)

	var resp types.GenerateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Sam Lee", resp.Data.Resume.Header.Name)
	assert.Nil(t, resp.Data.CoverLetter)
	assert.FileExists(t, outPath)
}

func TestGenerate_FlagErrors(t *testing.T) {
	_, err := execute(t, "generate")
	assert.Error(t, err)

	_, err = execute(t, "generate", "--sample", "--tone", "casual", "--out", filepath.Join(t.TempDir(), "b.json"))
	assert.EqualError(t, err, `unknown tone "casual"`)

	_, err = execute(t, "generate", "--profile", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read profile file")
}

func TestATS(t *testing.T) {
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.txt")
	jobPath := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("Led migration of services to Go, cutting latency 40%"), 0o644))
	require.NoError(t, os.WriteFile(jobPath, []byte("Go developer"), 0o644))

	out, err := execute(t, "ats", "--resume", resumePath, "--job", jobPath, "--json")
	require.NoError(t, err)
	var score types.ATSScore
	require.NoError(t, json.Unmarshal([]byte(out), &score))
	assert.Equal(t, 62.0, score.OverallScore)

	out, err = execute(t, "ats", "--resume", resumePath, "--job", jobPath)
	require.NoError(t, err)
	assert.Contains(t, out, "62")

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("  "), 0o644))
	_, err = execute(t, "ats", "--resume", empty, "--job", jobPath)
	assert.EqualError(t, err, "Please enter both resume text and job description.")
}

func TestExportDoc(t *testing.T) {
	bundlePath := generateSampleBundle(t)
	outDir := t.TempDir()

	out, err := execute(t, "export-doc", "--bundle", bundlePath, "--out-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "priya-sharma-buildmyfolio-resume.doc")

	data, err := os.ReadFile(filepath.Join(outDir, "priya-sharma-buildmyfolio-resume.doc"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Priya Sharma")
}

func TestExportDoc_NoResume(t *testing.T) {
	bundlePath := generateSampleBundle(t, "--resume=false")
	_, err := execute(t, "export-doc", "--bundle", bundlePath, "--out-dir", t.TempDir())
	assert.ErrorContains(t, err, "Generate a resume first.")
}

func TestPackageSiteAndPreview(t *testing.T) {
	bundlePath := generateSampleBundle(t)
	outDir := t.TempDir()

	_, err := execute(t, "package-site", "--bundle", bundlePath, "--out-dir", outDir)
	require.NoError(t, err)
	matches, err := filepath.Glob(filepath.Join(outDir, "*.zip"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	zr, err := zip.OpenReader(matches[0])
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, filepath.Base(f.Name))
	}
	assert.Subset(t, names, []string{"index.html", "styles.css", "script.js", "README.md"})

	_, err = execute(t, "preview", "--bundle", bundlePath, "--out-dir", outDir)
	require.NoError(t, err)
	matches, err = filepath.Glob(filepath.Join(outDir, "*.html"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestPackageSite_NoPortfolio(t *testing.T) {
	bundlePath := generateSampleBundle(t, "--portfolio=false")
	_, err := execute(t, "package-site", "--bundle", bundlePath, "--out-dir", t.TempDir())
	assert.ErrorContains(t, err, "Generate your portfolio first.")
}

func TestRenderPDF_BadTarget(t *testing.T) {
	bundlePath := generateSampleBundle(t)
	_, err := execute(t, "render-pdf", "--bundle", bundlePath, "--what", "cover")
	assert.ErrorContains(t, err, "--what must be resume or portfolio")
}

func TestLoadBundle_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"resume": "not an object"}`), 0o644))
	_, err := loadBundle(path)
	assert.ErrorContains(t, err, "invalid bundle file")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"product_name": "folio", "output_dir": "`+filepath.ToSlash(dir)+`"}`), 0o644))

	bundlePath := generateSampleBundle(t)
	_, err := execute(t, "--config", cfgPath, "export-doc", "--bundle", bundlePath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "priya-sharma-folio-resume.doc"))

	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"tone": "casual"}`), 0o644))
	_, err = execute(t, "--config", cfgPath, "export-doc", "--bundle", bundlePath)
	assert.ErrorContains(t, err, "unknown tone")
}
