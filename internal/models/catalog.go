package models

// ModelTier classifies a catalog model by cost/quality positioning
type ModelTier string

const (
	TierFlagship   ModelTier = "flagship"
	TierPremium    ModelTier = "premium"
	TierStandard   ModelTier = "standard"
	TierEfficient  ModelTier = "efficient"
	TierEnterprise ModelTier = "enterprise"
)

// ModelPricing holds per-million-token rates in USD
type ModelPricing struct {
	Input  float64 `json:"input" yaml:"input"`
	Output float64 `json:"output" yaml:"output"`
}

// ModelFeatures flags broad model abilities
type ModelFeatures struct {
	Reasoning bool `json:"reasoning"`
	Vision    bool `json:"vision"`
	ToolUse   bool `json:"tool_use"`
	Coding    bool `json:"coding"`
}

// ModelDescriptor describes one approved model. Descriptors are immutable:
// the catalog is built once at process start and only read afterwards.
type ModelDescriptor struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Provider            string        `json:"provider"`
	Tier                ModelTier     `json:"tier"`
	Description         string        `json:"description"`
	ContextLength       int           `json:"context_length"`
	MaxOutputTokens     int           `json:"max_output_tokens"`
	Pricing             ModelPricing  `json:"pricing"`
	Capabilities        []string      `json:"capabilities"`
	EUHosted            bool          `json:"eu_hosted"`
	Recommended         bool          `json:"recommended"`
	RequiresCustomSetup bool          `json:"requires_custom_setup,omitzero"`
	Features            ModelFeatures `json:"features"`
}
