package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the budget for one path and method. A Path ending in "/" matches by
// prefix; Burst defaults to Limit.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// LoadConfig reads RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	return LoadConfigFrom(os.Getenv)
}

// LoadConfigFrom reads RATE_LIMIT_* settings through getenv. Unparseable values keep
// their defaults.
func LoadConfigFrom(getenv func(string) string) *Config {
	env := envReader(getenv)
	if !envValue(env, "ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    envValue(env, "DEFAULT_LIMIT", 1000, strconv.Atoi),
		DefaultWindow:   envValue(env, "DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: envValue(env, "CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		Whitelist:       parseIPList(env.get("WHITELIST")),
		Blacklist:       parseIPList(env.get("BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs limits the endpoints that build documents more tightly than reads.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/generate", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/ats-score", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/enhance-summary", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/improve-bullets", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/suggest-skills", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/studio/generate", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/studio/export/", Method: "GET", Limit: 30, Window: time.Minute, Burst: 5},
	}
}

const envPrefix = "RATE_LIMIT_"

type envReader func(string) string

func (r envReader) get(name string) string {
	return strings.TrimSpace(r(envPrefix + name))
}

func envValue[T any](env envReader, name string, def T, parse func(string) (T, error)) T {
	raw := env.get(name)
	if raw == "" {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		return def
	}
	return v
}

// parseIPList turns "a, b" into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}

