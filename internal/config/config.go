// Package config loads the router's YAML configuration with
// ${VAR:-default} environment substitution, so the same file works
// across environments with secrets injected at deploy time.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Egham-7/llm-router/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultBudgetResetInterval = 1 * time.Hour

// Config is the complete application configuration.
type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`

	Budget     models.BudgetConfig    `yaml:"budget"`
	Providers  ProvidersConfig        `yaml:"providers"`
	Embeddings EmbeddingsConfig       `yaml:"embeddings"`
	Cache      models.CacheConfig     `yaml:"cache"`
	Secrets    SecretsConfig          `yaml:"secrets"`
	Database   *models.DatabaseConfig `yaml:"database,omitempty"`
	Scheduler  SchedulerConfig        `yaml:"scheduler"`
}

// ProvidersConfig holds the platform-level provider credentials.
// OpenRouter is the default aggregator route; the Anthropic key, when
// set, enables direct calls for Anthropic catalog models.
type ProvidersConfig struct {
	OpenRouter models.ProviderConfig `yaml:"openrouter"`
	Anthropic  models.ProviderConfig `yaml:"anthropic"`
}

// EmbeddingsConfig configures the Gemini embedding service.
type EmbeddingsConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key"`
}

// SecretsConfig holds the master key customer API keys are encrypted
// under.
type SecretsConfig struct {
	MasterKey string `yaml:"master_key"`
}

// SchedulerConfig tunes the background jobs.
type SchedulerConfig struct {
	BudgetResetInterval string `yaml:"budget_reset_interval"`
}

// BudgetResetIntervalDuration parses the configured rollover check
// interval, falling back to hourly on absent or malformed values.
func (s SchedulerConfig) BudgetResetIntervalDuration() time.Duration {
	if s.BudgetResetInterval == "" {
		return defaultBudgetResetInterval
	}
	d, err := time.ParseDuration(s.BudgetResetInterval)
	if err != nil || d <= 0 {
		return defaultBudgetResetInterval
	}
	return d
}

// LoadFromFile loads configuration from a YAML file with environment
// variable substitution.
func LoadFromFile(configPath string) (*Config, error) {
	cleanPath := filepath.Clean(configPath)

	if strings.Contains(cleanPath, "..") {
		return nil, fmt.Errorf("invalid config path: path traversal not allowed")
	}

	ext := filepath.Ext(cleanPath)
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("invalid config file: only .yaml and .yml files are allowed")
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 - path is validated above
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cleanPath, err)
	}

	content := substituteEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return &config, nil
}

// LoadEnvFiles loads environment variables from .env files in the
// order provided (first has highest priority).
func LoadEnvFiles(envFiles []string) {
	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err == nil {
				fmt.Printf("Loaded environment variables from %s\n", envFile)
			}
		}
	}
}

// New creates a Config by loading from the specified file path.
func New(configPath string) (*Config, error) {
	return LoadFromFile(configPath)
}

// substituteEnvVars replaces ${VAR_NAME} and ${VAR_NAME:-default}
// patterns with environment variables.
func substituteEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{([^}:]+)(?::(-[^}]*))?\}`)

	return re.ReplaceAllStringFunc(content, func(match string) string {
		submatches := re.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		defaultValue := ""

		if len(submatches) > 2 && submatches[2] != "" {
			defaultValue = strings.TrimPrefix(submatches[2], "-")
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// GetNormalizedLogLevel returns the log level in lowercase.
func (c *Config) GetNormalizedLogLevel() string {
	return strings.ToLower(c.LogLevel)
}

// IsProduction returns true if the environment is production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks that every configuration value other components
// depend on unconditionally is present. Provider keys are deliberately
// not required: a deployment serving only custom-endpoint customers
// runs without any platform credential.
func (c *Config) Validate() error {
	var missing []string

	if c.Secrets.MasterKey == "" {
		missing = append(missing, "secrets.master_key")
	}
	if c.Cache.Enabled {
		if c.Cache.OpenAIAPIKey == "" {
			missing = append(missing, "cache.openai_api_key")
		}
		if c.Cache.Backend == models.CacheBackendRedis && c.Cache.RedisURL == "" {
			missing = append(missing, "cache.redis_url")
		}
	}
	if c.Database != nil && c.Database.Type == "" {
		missing = append(missing, "database.type")
	}

	if len(missing) > 0 {
		return &ValidationError{MissingFields: missing}
	}

	return nil
}

// ValidationError reports configuration validation failures.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return "missing required configuration fields: " + strings.Join(e.MissingFields, ", ")
}
