package catalog

import "github.com/Egham-7/llm-router/internal/models"

// approvedModels is the curated list of models customers may select.
// Ordering matters: the first entry is the platform default.
var approvedModels = []models.ModelDescriptor{
	{
		ID:              "anthropic/claude-haiku-4.5",
		Name:            "Claude Haiku 4.5",
		Provider:        "anthropic",
		Tier:            models.TierFlagship,
		Description:     "Anthropic's fastest and most efficient model with near-frontier intelligence at a fraction of the cost and latency.",
		ContextLength:   200000,
		MaxOutputTokens: 8192,
		Pricing:         models.ModelPricing{Input: 1, Output: 5},
		Capabilities:    []string{"Extended thinking", "Coding excellence", "Sub-agent workflows", "Real-time applications"},
		Recommended:     true,
		Features:        models.ModelFeatures{Reasoning: true, Vision: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "openai/gpt-5",
		Name:            "GPT-5",
		Provider:        "openai",
		Tier:            models.TierFlagship,
		Description:     "OpenAI's most advanced model with major improvements in reasoning and code quality.",
		ContextLength:   400000,
		MaxOutputTokens: 128000,
		Pricing:         models.ModelPricing{Input: 1.25, Output: 10},
		Capabilities:    []string{"Step-by-step reasoning", "Advanced coding", "Reduced hallucination"},
		Recommended:     true,
		Features:        models.ModelFeatures{Reasoning: true, Vision: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "openai/gpt-5-mini",
		Name:            "GPT-5 Mini",
		Provider:        "openai",
		Tier:            models.TierEfficient,
		Description:     "Compact GPT-5 for lighter reasoning tasks with reduced latency and cost.",
		ContextLength:   400000,
		MaxOutputTokens: 128000,
		Pricing:         models.ModelPricing{Input: 0.25, Output: 2},
		Capabilities:    []string{"Fast responses", "Cost-effective", "Instruction following"},
		Features:        models.ModelFeatures{Reasoning: true, Vision: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "openai/gpt-5-codex",
		Name:            "GPT-5 Codex",
		Provider:        "openai",
		Tier:            models.TierPremium,
		Description:     "Specialized for software engineering and coding workflows.",
		ContextLength:   400000,
		MaxOutputTokens: 128000,
		Pricing:         models.ModelPricing{Input: 1.25, Output: 10},
		Capabilities:    []string{"Software engineering", "Code review", "Debugging"},
		Features:        models.ModelFeatures{Reasoning: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "cohere/command-a",
		Name:            "Cohere Command A",
		Provider:        "cohere",
		Tier:            models.TierPremium,
		Description:     "Open-weights 111B model with 256K context. Strong multilingual and agentic capabilities. Deployed in EU regions.",
		ContextLength:   256000,
		MaxOutputTokens: 8192,
		Pricing:         models.ModelPricing{Input: 2.5, Output: 10},
		Capabilities:    []string{"Multilingual", "Agentic workflows", "EU deployment"},
		EUHosted:        true,
		Features:        models.ModelFeatures{Reasoning: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "mistralai/mistral-large",
		Name:            "Mistral Large",
		Provider:        "mistral",
		Tier:            models.TierFlagship,
		Description:     "Mistral's flagship model with strong multilingual capabilities. EU-hosted.",
		ContextLength:   131072,
		MaxOutputTokens: 4096,
		Pricing:         models.ModelPricing{Input: 2, Output: 6},
		Capabilities:    []string{"Multilingual", "EU compliance", "Reasoning"},
		EUHosted:        true,
		Recommended:     true,
		Features:        models.ModelFeatures{Reasoning: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "mistralai/mistral-medium-3.1",
		Name:            "Mistral Medium 3.1",
		Provider:        "mistral",
		Tier:            models.TierStandard,
		Description:     "Cost-effective enterprise model with frontier capabilities. EU-hosted.",
		ContextLength:   131072,
		MaxOutputTokens: 4096,
		Pricing:         models.ModelPricing{Input: 0.4, Output: 2},
		Capabilities:    []string{"Cost-efficient", "STEM reasoning", "EU compliance"},
		EUHosted:        true,
		Features:        models.ModelFeatures{Reasoning: true, Vision: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "meta-llama/llama-4-scout-17b-16e",
		Name:            "Llama 4 Scout 17B",
		Provider:        "meta",
		Tier:            models.TierEfficient,
		Description:     "Efficient MoE model with strong performance for its size.",
		ContextLength:   131072,
		MaxOutputTokens: 8192,
		Pricing:         models.ModelPricing{Input: 0.15, Output: 0.75},
		Capabilities:    []string{"Cost-efficient", "Fast inference"},
		Features:        models.ModelFeatures{Reasoning: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "google/gemini-2.5-flash-preview-09-2025",
		Name:            "Gemini 2.5 Flash",
		Provider:        "google",
		Tier:            models.TierPremium,
		Description:     "Google's workhorse model with advanced reasoning and long context support.",
		ContextLength:   1048576,
		MaxOutputTokens: 65536,
		Pricing:         models.ModelPricing{Input: 0.3, Output: 2.5},
		Capabilities:    []string{"Ultra-long context", "Multimodal", "Thinking mode"},
		Recommended:     true,
		Features:        models.ModelFeatures{Reasoning: true, Vision: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "google/gemini-2.5-flash-lite-preview-09-2025",
		Name:            "Gemini 2.5 Flash Lite",
		Provider:        "google",
		Tier:            models.TierEfficient,
		Description:     "Lightweight reasoning model optimized for ultra-low latency.",
		ContextLength:   1048576,
		MaxOutputTokens: 65536,
		Pricing:         models.ModelPricing{Input: 0.1, Output: 0.4},
		Capabilities:    []string{"Low latency", "Cost-efficient"},
		Features:        models.ModelFeatures{Reasoning: true, Vision: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "deepseek/deepseek-chat-v3.1",
		Name:            "DeepSeek V3.1",
		Provider:        "deepseek",
		Tier:            models.TierPremium,
		Description:     "Large hybrid reasoning model with excellent cost/performance ratio.",
		ContextLength:   163840,
		MaxOutputTokens: 163840,
		Pricing:         models.ModelPricing{Input: 0.2, Output: 0.8},
		Capabilities:    []string{"Hybrid reasoning", "Tool use"},
		Recommended:     true,
		Features:        models.ModelFeatures{Reasoning: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "deepseek/deepseek-v3.1-terminus",
		Name:            "DeepSeek V3.1 Terminus",
		Provider:        "deepseek",
		Tier:            models.TierPremium,
		Description:     "Optimized version with improved agent capabilities and coding.",
		ContextLength:   163840,
		MaxOutputTokens: 163840,
		Pricing:         models.ModelPricing{Input: 0.23, Output: 0.9},
		Capabilities:    []string{"Agent optimization", "Coding excellence", "Tool use"},
		Features:        models.ModelFeatures{Reasoning: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "qwen/qwen3-max",
		Name:            "Qwen3 Max",
		Provider:        "qwen",
		Tier:            models.TierFlagship,
		Description:     "Qwen's most capable model with strong multilingual support and reasoning.",
		ContextLength:   256000,
		MaxOutputTokens: 32768,
		Pricing:         models.ModelPricing{Input: 1.2, Output: 6},
		Capabilities:    []string{"Multilingual", "RAG optimized", "Tool calling"},
		Recommended:     true,
		Features:        models.ModelFeatures{Reasoning: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "qwen/qwen3-coder-plus",
		Name:            "Qwen3 Coder Plus",
		Provider:        "qwen",
		Tier:            models.TierPremium,
		Description:     "Specialized coding agent model with excellent agentic capabilities.",
		ContextLength:   128000,
		MaxOutputTokens: 65536,
		Pricing:         models.ModelPricing{Input: 1, Output: 5},
		Capabilities:    []string{"Autonomous coding", "Tool calling", "Agent workflows"},
		Features:        models.ModelFeatures{Reasoning: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "x-ai/grok-4-fast",
		Name:            "Grok 4 Fast",
		Provider:        "xai",
		Tier:            models.TierPremium,
		Description:     "xAI's latest multimodal model with 2M context and cost-efficiency.",
		ContextLength:   2000000,
		MaxOutputTokens: 30000,
		Pricing:         models.ModelPricing{Input: 0.2, Output: 0.5},
		Capabilities:    []string{"Massive context", "Reasoning mode", "Multimodal"},
		Recommended:     true,
		Features:        models.ModelFeatures{Reasoning: true, Vision: true, ToolUse: true, Coding: true},
	},
	{
		ID:              "x-ai/grok-code-fast-1",
		Name:            "Grok Code Fast 1",
		Provider:        "xai",
		Tier:            models.TierStandard,
		Description:     "Fast reasoning model specialized for agentic coding workflows.",
		ContextLength:   256000,
		MaxOutputTokens: 10000,
		Pricing:         models.ModelPricing{Input: 0.2, Output: 1.5},
		Capabilities:    []string{"Agentic coding", "Reasoning traces", "Fast responses"},
		Features:        models.ModelFeatures{Reasoning: true, ToolUse: true, Coding: true},
	},
	{
		ID:                  "custom/enterprise-llm",
		Name:                "Custom Enterprise LLM",
		Provider:            "custom",
		Tier:                models.TierEnterprise,
		Description:         "Bring your own LLM endpoint. Supports Azure OpenAI, self-hosted models, or any OpenAI-compatible API.",
		Pricing:             models.ModelPricing{},
		Capabilities:        []string{"Custom endpoint", "Full data control", "Private deployment"},
		RequiresCustomSetup: true,
		Features:            models.ModelFeatures{Reasoning: true, ToolUse: true, Coding: true},
	},
}
