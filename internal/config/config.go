// Package config loads CLI and server settings from an optional JSON file and the
// environment.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/buildmyfolio/internal/types"
)

// Defaults.
const (
	DefaultAPIPort     = 8000
	DefaultStudioPort  = 8080
	DefaultProductName = "buildmyfolio"
	DefaultBaseName    = "resume"
	DefaultOutputDir   = "output"
	DefaultLogLevel    = "info"
)

// Environment variables read by ApplyEnv.
const (
	EnvRemoteURL = "BUILDMYFOLIO_REMOTE_URL"
	EnvProduct   = "BUILDMYFOLIO_PRODUCT"
	EnvLogLevel  = "BUILDMYFOLIO_LOG_LEVEL"
	EnvAPIPort   = "BUILDMYFOLIO_API_PORT"
	EnvGeminiKey = "GEMINI_API_KEY"
)

// Config holds settings shared by every command. All fields are optional.
type Config struct {
	RemoteURL       string     `json:"remote_url,omitempty"`        // generation service root
	APIPort         int        `json:"api_port,omitempty"`          // generation service listen port
	StudioPort      int        `json:"studio_port,omitempty"`       // studio listen port
	Tone            types.Tone `json:"tone,omitempty"`              // default writing tone
	ProductName     string     `json:"product_name,omitempty"`      // exported filename suffix
	DefaultBaseName string     `json:"default_base_name,omitempty"` // filename when the name sanitizes to nothing
	UseBrowser      bool       `json:"use_browser,omitempty"`       // headless browser for job pages
	Verbose         bool       `json:"verbose,omitempty"`
	LogLevel        string     `json:"log_level,omitempty"`
	GeminiAPIKey    string     `json:"gemini_api_key,omitempty"` // enables summary polishing
	OutputDir       string     `json:"output_dir,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		APIPort:         DefaultAPIPort,
		StudioPort:      DefaultStudioPort,
		Tone:            types.ToneProfessional,
		ProductName:     DefaultProductName,
		DefaultBaseName: DefaultBaseName,
		LogLevel:        DefaultLogLevel,
		OutputDir:       DefaultOutputDir,
	}
}

// LoadConfig reads a JSON config file. Relative paths resolve against the working
// directory.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges. Missing values are not errors.
func (c *Config) Validate() error {
	for name, port := range map[string]int{"api_port": c.APIPort, "studio_port": c.StudioPort} {
		if port < 0 || port > 65535 {
			return fmt.Errorf("config error: '%s' must be between 0 and 65535", name)
		}
	}
	if c.RemoteURL != "" {
		u, err := url.Parse(c.RemoteURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'remote_url' must be an http(s) URL: %s", c.RemoteURL)
		}
	}
	if c.Tone != "" && c.Tone.Normalize() != c.Tone {
		return fmt.Errorf("config error: unknown tone %q", c.Tone)
	}
	if c.LogLevel != "" {
		if _, err := ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	return nil
}

// MergeWithDefaults fills empty fields from defaults. Booleans are not merged because an
// unset value cannot be told apart from false.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&result.RemoteURL, defaults.RemoteURL)
	fill(&result.ProductName, defaults.ProductName)
	fill(&result.DefaultBaseName, defaults.DefaultBaseName)
	fill(&result.LogLevel, defaults.LogLevel)
	fill(&result.GeminiAPIKey, defaults.GeminiAPIKey)
	fill(&result.OutputDir, defaults.OutputDir)
	if result.Tone == "" {
		result.Tone = defaults.Tone
	}
	if result.APIPort == 0 {
		result.APIPort = defaults.APIPort
	}
	if result.StudioPort == 0 {
		result.StudioPort = defaults.StudioPort
	}
	return result
}

// ApplyEnv overrides fields from the environment. Unparseable numbers are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.RemoteURL, EnvRemoteURL)
	set(&c.ProductName, EnvProduct)
	set(&c.LogLevel, EnvLogLevel)
	set(&c.GeminiAPIKey, EnvGeminiKey)
	if v := getenv(EnvAPIPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.APIPort = port
		}
	}
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// Level returns the configured log level; Verbose forces debug.
func (c *Config) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}
