package models

// ChatRole is a chat message role
type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a provider conversation
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatOptions are the per-call generation knobs shared by every adapter
type ChatOptions struct {
	Model       string  `json:"model"`
	System      string  `json:"system,omitzero"`
	Temperature float64 `json:"temperature,omitzero"`
	MaxTokens   int     `json:"max_tokens,omitzero"`
}

// TokenUsage normalizes provider token accounting. Fields missing from a
// provider response default to zero rather than failing the call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is the normalized result of one provider chat call
type ChatResponse struct {
	Content string     `json:"content"`
	Usage   TokenUsage `json:"usage"`
	Model   string     `json:"model"`
}

// QualityReview is a premium-model verdict on a drafted message
type QualityReview struct {
	Approved    bool     `json:"approved"`
	Score       float64  `json:"score"`
	Reasoning   string   `json:"reasoning"`
	Suggestions []string `json:"suggestions"`
	Cost        float64  `json:"cost"`
}

// ReplyCategory classifies a prospect's reply for funnel routing
type ReplyCategory string

const (
	ReplyInterested    ReplyCategory = "interested"
	ReplyNotInterested ReplyCategory = "not_interested"
	ReplyRequestInfo   ReplyCategory = "request_info"
	ReplyScheduleCall  ReplyCategory = "schedule_call"
	ReplyObjection     ReplyCategory = "objection"
	ReplyOutOfOffice   ReplyCategory = "out_of_office"
)

// ReplyClassification is the routing decision for a prospect reply
type ReplyClassification struct {
	Category   ReplyCategory `json:"category"`
	Confidence float64       `json:"confidence"`
	Sentiment  string        `json:"sentiment"`
	NextAction string        `json:"next_action"`
	Cost       float64       `json:"cost"`
}
