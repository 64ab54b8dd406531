package models

import "time"

// EndpointProviderKind identifies the wire protocol of a customer-managed endpoint
type EndpointProviderKind string

const (
	EndpointOpenAICompatible EndpointProviderKind = "openai_compatible"
	EndpointAzureOpenAI      EndpointProviderKind = "azure_openai"
	// EndpointAWSBedrock is accepted in stored preferences but has no adapter
	// yet; routing to it fails fast with an unsupported-endpoint error.
	EndpointAWSBedrock EndpointProviderKind = "aws_bedrock"
)

// PlanTier is the customer's subscription tier
type PlanTier string

const (
	PlanStandard   PlanTier = "standard"
	PlanPremium    PlanTier = "premium"
	PlanEnterprise PlanTier = "enterprise"
)

// CustomEndpoint holds connection parameters for an enterprise-managed LLM
// endpoint. The credential is stored encrypted and only decrypted at call time.
type CustomEndpoint struct {
	Provider       EndpointProviderKind `gorm:"size:50;default:''" json:"provider"`
	BaseURL        string               `gorm:"size:512;default:''" json:"base_url"`
	DeploymentName string               `gorm:"size:255;default:''" json:"deployment_name,omitzero"`
	APIVersion     string               `gorm:"size:50;default:''" json:"api_version,omitzero"`
	ModelID        string               `gorm:"size:255;default:''" json:"model_id,omitzero"`
	EncryptedKey   string               `gorm:"type:text;default:''" json:"-"`
}

// CustomerLLMPreference is the per-customer routing policy. One row per
// customer; mutated only through the settings update path and read-only from
// the router's perspective.
type CustomerLLMPreference struct {
	ID                uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID        string         `gorm:"uniqueIndex;not null;size:255" json:"customer_id"`
	SelectedModelID   *string        `gorm:"size:255" json:"selected_model_id,omitempty"`
	UseOwnKey         bool           `gorm:"not null;default:false" json:"use_own_key"`
	EncryptedAPIKey   string         `gorm:"type:text;default:''" json:"-"`
	UseCustomEndpoint bool           `gorm:"not null;default:false" json:"use_custom_endpoint"`
	Endpoint          CustomEndpoint `gorm:"embedded;embeddedPrefix:endpoint_" json:"endpoint"`
	Temperature       float64        `gorm:"not null;default:0.7" json:"temperature"`
	MaxTokens         int            `gorm:"not null;default:1000" json:"max_tokens"`
	PlanTier          PlanTier       `gorm:"size:20;default:'standard'" json:"plan_tier"`
	CreatedAt         time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (CustomerLLMPreference) TableName() string {
	return "customer_llm_preferences"
}

// DefaultPreference returns the safe defaults used when a customer has no
// stored preference row.
func DefaultPreference(customerID string) *CustomerLLMPreference {
	return &CustomerLLMPreference{
		CustomerID:  customerID,
		Temperature: 0.7,
		MaxTokens:   1000,
		PlanTier:    PlanStandard,
	}
}

// CallRoute is the resolved call path for a customer, in strict precedence
// order: custom endpoint > bring-your-own key > platform-managed key.
type CallRoute string

const (
	RouteCustomEndpoint CallRoute = "custom_endpoint"
	RouteCustomerKey    CallRoute = "customer_key"
	RoutePlatformKey    CallRoute = "platform_key"
)
