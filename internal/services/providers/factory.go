package providers

import (
	"fmt"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/services/catalog"
	"github.com/Egham-7/llm-router/internal/services/secrets"
	"github.com/Egham-7/llm-router/internal/utils/clientcache"
)

// Factory turns a customer preference and a resolved model into the
// adapter that will carry the call. Adapters are cached by config hash
// with singleflight so concurrent calls for one customer share clients.
type Factory struct {
	catalog      *catalog.Catalog
	codec        secrets.Codec
	platform     models.ProviderConfig
	direct       models.ProviderConfig
	adapterCache *clientcache.Cache[ChatProvider]
}

// NewFactory wires the platform gateway config and, optionally, the
// direct Anthropic config. An empty direct APIKey disables that path.
func NewFactory(cat *catalog.Catalog, codec secrets.Codec, platform, direct models.ProviderConfig) *Factory {
	return &Factory{
		catalog:      cat,
		codec:        codec,
		platform:     platform,
		direct:       direct,
		adapterCache: clientcache.NewCache[ChatProvider](),
	}
}

// Provider resolves the adapter for one call. Route precedence matches
// the preference resolver: custom endpoint, then customer key, then
// platform key.
func (f *Factory) Provider(pref *models.CustomerLLMPreference, modelID string) (ChatProvider, error) {
	if pref == nil {
		return nil, models.NewValidationError("preference cannot be nil", nil)
	}

	switch {
	case pref.UseCustomEndpoint:
		return f.customEndpointProvider(pref)
	case pref.UseOwnKey:
		return f.customerKeyProvider(pref)
	default:
		return f.platformProvider(modelID)
	}
}

func (f *Factory) customEndpointProvider(pref *models.CustomerLLMPreference) (ChatProvider, error) {
	// Fail fast on unsupported endpoint kinds before touching the key.
	if pref.Endpoint.Provider == models.EndpointAWSBedrock {
		return nil, models.NewUnsupportedEndpointError(string(pref.Endpoint.Provider))
	}

	apiKey, err := f.codec.Decrypt(pref.Endpoint.EncryptedKey)
	if err != nil {
		return nil, err
	}

	cacheKey, err := hashProviderConfig(models.ProviderConfig{
		APIKey:  apiKey,
		BaseURL: pref.Endpoint.BaseURL,
		Headers: map[string]string{
			"deployment":  pref.Endpoint.DeploymentName,
			"api_version": pref.Endpoint.APIVersion,
			"kind":        string(pref.Endpoint.Provider),
		},
	})
	if err != nil {
		return nil, models.NewInternalError("failed to hash endpoint config", err)
	}

	return f.adapterCache.GetOrCreate("custom:"+cacheKey, func() (ChatProvider, error) {
		fiberlog.Debugf("providers: creating custom endpoint adapter (%s)", pref.Endpoint.Provider)
		return NewCustomEndpoint(pref.Endpoint, apiKey)
	})
}

func (f *Factory) customerKeyProvider(pref *models.CustomerLLMPreference) (ChatProvider, error) {
	apiKey, err := f.codec.Decrypt(pref.EncryptedAPIKey)
	if err != nil {
		return nil, err
	}

	cfg := models.ProviderConfig{APIKey: apiKey}
	cacheKey, err := hashProviderConfig(cfg)
	if err != nil {
		return nil, models.NewInternalError("failed to hash provider config", err)
	}

	return f.adapterCache.GetOrCreate("byok:"+cacheKey, func() (ChatProvider, error) {
		fiberlog.Debugf("providers: creating customer-key gateway adapter")
		return NewOpenRouter(cfg), nil
	})
}

func (f *Factory) platformProvider(modelID string) (ChatProvider, error) {
	if f.directEligible(modelID) {
		return f.adapterCache.GetOrCreate("direct:anthropic", func() (ChatProvider, error) {
			fiberlog.Debugf("providers: creating direct Anthropic adapter")
			return NewAnthropicDirect(f.direct), nil
		})
	}

	if f.platform.APIKey == "" {
		return nil, models.NewProviderError(openRouterName, "platform API key not configured", nil)
	}
	return f.adapterCache.GetOrCreate("platform:openrouter", func() (ChatProvider, error) {
		fiberlog.Debugf("providers: creating platform gateway adapter")
		return NewOpenRouter(f.platform), nil
	})
}

// directEligible reports whether the platform call should bypass the
// gateway for the vendor's own API.
func (f *Factory) directEligible(modelID string) bool {
	if f.direct.APIKey == "" {
		return false
	}
	descriptor := f.catalog.ByID(modelID)
	return descriptor != nil && descriptor.Provider == "anthropic"
}

// Describe names the route a preference resolves to, for logs.
func Describe(pref *models.CustomerLLMPreference) string {
	switch {
	case pref.UseCustomEndpoint:
		return fmt.Sprintf("%s (%s)", models.RouteCustomEndpoint, pref.Endpoint.Provider)
	case pref.UseOwnKey:
		return string(models.RouteCustomerKey)
	default:
		return string(models.RoutePlatformKey)
	}
}
