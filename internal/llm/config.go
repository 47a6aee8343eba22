// Package llm wraps the Gemini API behind a small client interface and turns
// open-ended application questions into prompts.
package llm

// ModelTier selects a model by capability rather than by name.
type ModelTier string

const (
	// TierLite is for short answers where latency matters most.
	TierLite ModelTier = "lite"
	// TierStandard is the default for essay-style answers.
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for long cover-letter style answers.
	TierAdvanced ModelTier = "advanced"
)

// Provider names an LLM vendor.
type Provider string

// ProviderGemini is the only provider implemented.
const ProviderGemini Provider = "gemini"

// Config holds model selection and sampling settings.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	// MaxOutputTokens caps a single response; 0 leaves the model default.
	MaxOutputTokens int32
}

// DefaultConfig returns the Gemini defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature:     0.4,
		MaxOutputTokens: 2048,
	}
}

// GetModel returns the model for tier, falling back to standard and then lite.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of c with tier mapped to model.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := *c
	out.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return &out
}

// TierForLength picks a tier from the answer size a form allows.
func TierForLength(maxLength int) ModelTier {
	switch {
	case maxLength > 0 && maxLength <= 280:
		return TierLite
	case maxLength > 4000:
		return TierAdvanced
	default:
		return TierStandard
	}
}
