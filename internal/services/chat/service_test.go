package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/services/catalog"
	"github.com/Egham-7/llm-router/internal/services/preferences"
	"github.com/Egham-7/llm-router/internal/services/providers"
	"github.com/Egham-7/llm-router/internal/services/region"
	"github.com/Egham-7/llm-router/internal/services/secrets"
	"github.com/Egham-7/llm-router/internal/services/usage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	svc   *Service
	db    *gorm.DB
	codec secrets.Codec
}

func newTestEnv(t *testing.T, platformKey string) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prefs := preferences.NewService(db)
	require.NoError(t, prefs.AutoMigrate())

	cat := catalog.Default()
	tracker := usage.NewTracker(db, cat)
	require.NoError(t, tracker.AutoMigrate())

	codec, err := secrets.NewAESCodec("test-master-key")
	require.NoError(t, err)

	factory := providers.NewFactory(cat, codec,
		models.ProviderConfig{APIKey: platformKey}, models.ProviderConfig{})

	return &testEnv{
		svc:   NewService(cat, prefs, region.NewResolver(cat), factory, tracker),
		db:    db,
		codec: codec,
	}
}

// seedCustomEndpoint stores a preference that routes the customer to a
// local test server speaking the OpenAI wire format.
func (e *testEnv) seedCustomEndpoint(t *testing.T, customerID, baseURL string) {
	t.Helper()

	encrypted, err := e.codec.Encrypt("sk-test")
	require.NoError(t, err)

	pref := models.DefaultPreference(customerID)
	pref.UseCustomEndpoint = true
	pref.Endpoint = models.CustomEndpoint{
		Provider:     models.EndpointOpenAICompatible,
		BaseURL:      baseURL,
		ModelID:      "test-llm",
		EncryptedKey: encrypted,
	}
	require.NoError(t, e.db.Create(pref).Error)
}

func jsonResponse(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestChatRoutesAndRecordsUsage(t *testing.T) {
	server := httptest.NewServer(jsonResponse(`{
		"model": "test-llm",
		"choices": [{"message": {"content": "direct answer"}}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
	}`))
	defer server.Close()

	env := newTestEnv(t, "platform-key")
	env.seedCustomEndpoint(t, "cust-1", server.URL)

	resp, err := env.svc.Chat(context.Background(), "cust-1",
		[]models.ChatMessage{{Role: models.RoleUser, Content: "hello"}},
		models.ChatOptions{Model: "custom/enterprise-llm"}, models.RegionHints{})
	require.NoError(t, err)
	assert.Equal(t, "direct answer", resp.Content)
	assert.Equal(t, 15, resp.Usage.TotalTokens)

	var count int64
	require.NoError(t, env.db.Model(&models.LLMUsage{}).Where("customer_id = ?", "cust-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestChatPropagatesProviderErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "backend down"}}`))
	}))
	defer server.Close()

	env := newTestEnv(t, "platform-key")
	env.seedCustomEndpoint(t, "cust-1", server.URL)

	_, err := env.svc.Chat(context.Background(), "cust-1",
		[]models.ChatMessage{{Role: models.RoleUser, Content: "hello"}},
		models.ChatOptions{Model: "custom/enterprise-llm"}, models.RegionHints{})
	require.Error(t, err)
	assert.True(t, models.IsErrorType(err, models.ErrorTypeProvider))
}

func TestChatUnsupportedEndpointPropagates(t *testing.T) {
	env := newTestEnv(t, "platform-key")

	encrypted, err := env.codec.Encrypt("aws-key")
	require.NoError(t, err)
	pref := models.DefaultPreference("cust-bedrock")
	pref.UseCustomEndpoint = true
	pref.Endpoint = models.CustomEndpoint{
		Provider:     models.EndpointAWSBedrock,
		BaseURL:      "https://bedrock.example.com",
		EncryptedKey: encrypted,
	}
	require.NoError(t, env.db.Create(pref).Error)

	_, err = env.svc.Chat(context.Background(), "cust-bedrock",
		[]models.ChatMessage{{Role: models.RoleUser, Content: "hello"}},
		models.ChatOptions{}, models.RegionHints{})
	require.Error(t, err)
	assert.True(t, models.IsErrorType(err, models.ErrorTypeUnsupportedEndpoint))
}

func TestQualityReview(t *testing.T) {
	prospect := models.ProspectData{FirstName: "Dana", Company: "Acme", Industry: "SaaS"}

	t.Run("parses the model verdict", func(t *testing.T) {
		server := httptest.NewServer(jsonResponse(`{
			"model": "test-llm",
			"choices": [{"message": {"content": "{\"approved\": false, \"score\": 4, \"reasoning\": \"too generic\", \"suggestions\": [\"add specifics\"]}"}}],
			"usage": {"prompt_tokens": 100, "completion_tokens": 50, "total_tokens": 150}
		}`))
		defer server.Close()

		env := newTestEnv(t, "platform-key")
		env.seedCustomEndpoint(t, "cust-1", server.URL)

		review := env.svc.QualityReview(context.Background(), "cust-1", "Hi there", prospect, models.CampaignSalesOutreach)
		assert.False(t, review.Approved)
		assert.Equal(t, 4.0, review.Score)
		assert.Equal(t, []string{"add specifics"}, review.Suggestions)
	})

	t.Run("handles fenced JSON", func(t *testing.T) {
		server := httptest.NewServer(jsonResponse(`{
			"model": "test-llm",
			"choices": [{"message": {"content": "Here is my verdict:\n{\"approved\": true, \"score\": 9, \"reasoning\": \"strong\"}"}}],
			"usage": {"total_tokens": 80}
		}`))
		defer server.Close()

		env := newTestEnv(t, "platform-key")
		env.seedCustomEndpoint(t, "cust-1", server.URL)

		review := env.svc.QualityReview(context.Background(), "cust-1", "Hi Dana", prospect, models.CampaignSalesOutreach)
		assert.True(t, review.Approved)
		assert.Equal(t, 9.0, review.Score)
	})

	t.Run("defaults to approved when the call fails", func(t *testing.T) {
		// Empty platform key makes the platform route fail before any
		// network traffic.
		env := newTestEnv(t, "")

		review := env.svc.QualityReview(context.Background(), "cust-1", "Hi there", prospect, models.CampaignSalesOutreach)
		assert.True(t, review.Approved)
		assert.Equal(t, 7.0, review.Score)
		assert.Zero(t, review.Cost)
	})

	t.Run("defaults to approved on unparseable output", func(t *testing.T) {
		server := httptest.NewServer(jsonResponse(`{
			"model": "test-llm",
			"choices": [{"message": {"content": "I think it looks fine overall."}}],
			"usage": {"total_tokens": 30}
		}`))
		defer server.Close()

		env := newTestEnv(t, "platform-key")
		env.seedCustomEndpoint(t, "cust-1", server.URL)

		review := env.svc.QualityReview(context.Background(), "cust-1", "Hi there", prospect, models.CampaignSalesOutreach)
		assert.True(t, review.Approved)
		assert.Equal(t, 7.0, review.Score)
	})
}

func TestClassifyReply(t *testing.T) {
	prospect := models.ProspectData{FirstName: "Dana", Company: "Acme"}

	t.Run("parses the classification", func(t *testing.T) {
		server := httptest.NewServer(jsonResponse(`{
			"model": "test-llm",
			"choices": [{"message": {"content": "{\"category\": \"schedule_call\", \"confidence\": 0.9, \"sentiment\": \"positive\", \"next_action\": \"send calendar link\"}"}}],
			"usage": {"total_tokens": 60}
		}`))
		defer server.Close()

		env := newTestEnv(t, "platform-key")
		env.seedCustomEndpoint(t, "cust-1", server.URL)

		got := env.svc.ClassifyReply(context.Background(), "cust-1", "Sure, let's talk", "Hi Dana", prospect)
		assert.Equal(t, models.ReplyScheduleCall, got.Category)
		assert.InDelta(t, 0.9, got.Confidence, 1e-9)
		assert.Equal(t, "send calendar link", got.NextAction)
	})

	t.Run("defaults to interested on failure", func(t *testing.T) {
		env := newTestEnv(t, "")

		got := env.svc.ClassifyReply(context.Background(), "cust-1", "reply", "original", prospect)
		assert.Equal(t, models.ReplyInterested, got.Category)
		assert.InDelta(t, 0.5, got.Confidence, 1e-9)
		assert.Equal(t, "neutral", got.Sentiment)
	})
}
