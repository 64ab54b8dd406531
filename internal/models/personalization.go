package models

// TemplateCategory identifies the outreach step a template belongs to
type TemplateCategory string

const (
	TemplateConnectionRequest TemplateCategory = "connection_request"
	TemplateFollowUp1         TemplateCategory = "follow_up_1"
	TemplateFollowUp2         TemplateCategory = "follow_up_2"
)

// CampaignType identifies the kind of outreach campaign
type CampaignType string

const (
	CampaignSalesOutreach       CampaignType = "sales_outreach"
	CampaignRecruiting          CampaignType = "recruiting"
	CampaignBusinessDevelopment CampaignType = "business_development"
	CampaignNetworking          CampaignType = "networking"
)

// PersonalizationLevel controls how much AI enhancement a request is allowed
type PersonalizationLevel string

const (
	LevelMinimal  PersonalizationLevel = "minimal"
	LevelStandard PersonalizationLevel = "standard"
	LevelPremium  PersonalizationLevel = "premium"
)

// Strategy is the enhancement path chosen for a single request
type Strategy string

const (
	StrategyTemplateOnly Strategy = "template-only"
	StrategyMinimalAI    Strategy = "minimal-ai"
	StrategyStandardAI   Strategy = "standard-ai"
	StrategyPremiumAI    Strategy = "premium-ai"
)

// TemplateModelID is the sentinel model identifier for results produced
// without any AI call. Results carrying it always have zero cost.
const TemplateModelID = "template"

// ProspectData carries the prospect attributes substituted into templates
// and offered to the enhancement prompt.
type ProspectData struct {
	FirstName         string `json:"first_name"`
	Company           string `json:"company"`
	Title             string `json:"title"`
	Industry          string `json:"industry"`
	IndustryChallenge string `json:"industry_challenge,omitzero"`
}

// PersonalizationRequest is one message personalization job
type PersonalizationRequest struct {
	CustomerID   string               `json:"customer_id"`
	Template     TemplateCategory     `json:"template_type"`
	Campaign     CampaignType         `json:"campaign_type"`
	Prospect     ProspectData         `json:"prospect_data"`
	Level        PersonalizationLevel `json:"personalization_level"`
	BudgetLimit  *float64             `json:"budget_limit,omitempty"`
	RegionHints  RegionHints          `json:"region_hints,omitzero"`
}

// RegionHints carries the signals the compliance resolver classifies from
type RegionHints struct {
	UserPreference string `json:"user_preference,omitzero"` // "eu" or "global"
	CountryCode    string `json:"country_code,omitzero"`
	Timezone       string `json:"timezone,omitzero"`
}

// PersonalizationResult is always fully populated; the personalization entry
// point never returns a partial result or an error.
type PersonalizationResult struct {
	Message      string  `json:"message"`
	Cost         float64 `json:"cost"`
	TokensUsed   int     `json:"tokens_used"`
	QualityScore float64 `json:"quality_score"`
	Model        string  `json:"model"`
	WasEnhanced  bool    `json:"was_enhanced"`
	TemplateUsed string  `json:"template_used"`
}
