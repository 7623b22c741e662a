package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Servers
	HTTPServer    HTTPServerConfig
	WebhookServer WebhookServerConfig
	Logger        LoggerConfig

	// Relay specifics
	EventStore EventStoreConfig
	Notify     NotifyConfig
	Pipeline   PipelineConfig
	GitHub     GitHubConfig
	Slack      SlackConfig
	Console    ConsoleConfig

	// LLM Provider Abstraction
	LLM   LLMConfig
	Agent AgentConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

// WebhookServerConfig is the standalone GitHub webhook listener (cmd/webhook).
type WebhookServerConfig struct {
	Port     int
	Mode     string
	NgrokAPI string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type EventStoreConfig struct {
	Path        string
	Capacity    int
	LockTimeout string
}

// NotifyConfig is where the webhook listener forwards normalized events.
type NotifyConfig struct {
	URL     string
	Timeout string
}

type PipelineConfig struct {
	Timezone           string
	AllowedPRActions   []string
	SeedDedupFromStore bool
	UsePlanner         bool
}

type GitHubConfig struct {
	Token   string
	BaseURL string
	Timeout string
}

type SlackConfig struct {
	WebhookURL    string
	SigningSecret string
	Timeout       string
}

type ConsoleConfig struct {
	Enabled bool
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

type AgentConfig struct {
	MaxRounds   int
	Temperature float64
}

type WebhookConfig struct {
	Enabled         bool
	Secret          string
	AllowedIPs      []string
	TrustedProxies  []string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Servers
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.WebhookServer.Port = viper.GetInt("webhook_server.port")
	cfg.WebhookServer.Mode = viper.GetString("webhook_server.mode")
	cfg.WebhookServer.NgrokAPI = viper.GetString("webhook_server.ngrok_api")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Event store & forwarding
	cfg.EventStore.Path = viper.GetString("event_store.path")
	cfg.EventStore.Capacity = viper.GetInt("event_store.capacity")
	cfg.EventStore.LockTimeout = viper.GetString("event_store.lock_timeout")
	cfg.Notify.URL = viper.GetString("notify.url")
	cfg.Notify.Timeout = viper.GetString("notify.timeout")

	// Pipeline
	cfg.Pipeline.Timezone = viper.GetString("pipeline.timezone")
	cfg.Pipeline.AllowedPRActions = splitList(viper.GetStringSlice("pipeline.allowed_pr_actions"))
	cfg.Pipeline.SeedDedupFromStore = viper.GetBool("pipeline.seed_dedup_from_store")
	cfg.Pipeline.UsePlanner = viper.GetBool("pipeline.use_planner")

	// GitHub
	cfg.GitHub.Token = viper.GetString("github.token")
	if pat := viper.GetString("github_pat"); pat != "" {
		cfg.GitHub.Token = pat
	}
	cfg.GitHub.BaseURL = viper.GetString("github.base_url")
	cfg.GitHub.Timeout = viper.GetString("github.timeout")

	// Slack
	cfg.Slack.WebhookURL = viper.GetString("slack.webhook_url")
	if slackURL := viper.GetString("slack_webhook_url"); slackURL != "" {
		cfg.Slack.WebhookURL = slackURL
	}
	cfg.Slack.SigningSecret = viper.GetString("slack.signing_secret")
	if secret := viper.GetString("slack_signing_secret"); secret != "" {
		cfg.Slack.SigningSecret = secret
	}
	cfg.Slack.Timeout = viper.GetString("slack.timeout")

	cfg.Console.Enabled = viper.GetBool("console.enabled")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// A bare OPENAI_API_KEY is enough to run the planner without a config file.
	if len(cfg.LLM.Providers) == 0 {
		if key := viper.GetString("openai_api_key"); key != "" {
			cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{
				Name:     "openai",
				Enabled:  true,
				Priority: 1,
				APIKey:   key,
				Model:    viper.GetString("openai_model"),
			})
		}
	}

	if len(cfg.LLM.Providers) > 0 {
		if err := validateLLMConfig(&cfg.LLM); err != nil {
			return nil, fmt.Errorf("invalid llm config: %w", err)
		}
	}

	cfg.Agent.MaxRounds = viper.GetInt("agent.max_rounds")
	cfg.Agent.Temperature = viper.GetFloat64("agent.temperature")

	// Webhooks
	cfg.Webhook.Enabled = viper.GetBool("webhook.enabled")
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if webhookSecret := viper.GetString("webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")

	cfg.Webhook.AllowedIPs = splitList(viper.GetStringSlice("webhook.allowed_ips"))
	cfg.Webhook.TrustedProxies = splitList(viper.GetStringSlice("webhook.trusted_proxies"))

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8001)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("webhook_server.port", 8080)
	viper.SetDefault("webhook_server.mode", "debug")
	viper.SetDefault("webhook_server.ngrok_api", "")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("event_store.path", "github_events.json")
	viper.SetDefault("event_store.capacity", 100)
	viper.SetDefault("event_store.lock_timeout", "5s")
	viper.SetDefault("notify.url", "http://localhost:8001/notify")
	viper.SetDefault("notify.timeout", "10s")

	viper.SetDefault("pipeline.timezone", "Asia/Kolkata")
	viper.SetDefault("pipeline.allowed_pr_actions", []string{"opened", "reopened", "closed"})
	viper.SetDefault("pipeline.seed_dedup_from_store", false)
	viper.SetDefault("pipeline.use_planner", false)

	viper.SetDefault("github.timeout", "10s")
	viper.SetDefault("slack.timeout", "10s")
	viper.SetDefault("console.enabled", true)

	viper.SetDefault("webhook.rate_limit_per_min", 0)
	viper.SetDefault("webhook.trusted_proxies", []string{"127.0.0.1", "::1"})
	viper.SetDefault("webhook.enabled", true)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
	viper.SetDefault("agent.max_rounds", 10)
	viper.SetDefault("agent.temperature", 0)
}

// splitList flattens comma-separated env values ("opened,closed") into a clean slice.
func splitList(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, v := range strings.Split(item, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// ParseDuration reads a duration such as "10s", falling back when raw is empty or invalid.
func ParseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
