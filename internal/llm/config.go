// Package llm wraps the language model used to polish generated resume text. Models are
// chosen by tier so callers never name a provider model directly.
package llm

// ModelTier is the capability level a call needs.
type ModelTier string

const (
	// TierLite handles short rewrites such as a summary paragraph.
	TierLite ModelTier = "lite"
	// TierStandard handles multi-item rewrites such as bullet lists.
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for long-form drafting.
	TierAdvanced ModelTier = "advanced"
)

// Provider names an LLM vendor.
type Provider string

const (
	ProviderGemini Provider = "gemini"
)

// DefaultTemperature keeps rewrites close to the source text.
const DefaultTemperature float32 = 0.2

// Config maps tiers to provider models.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the Gemini configuration.
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini tier mapping.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model for tier, falling back to standard and then lite.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok && model != "" {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of c that uses model for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{Provider: c.Provider, Temperature: c.Temperature, Models: make(map[ModelTier]string, len(c.Models)+1)}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}
