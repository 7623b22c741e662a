package llmprovider

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"repo-event-relay/config"
	"repo-event-relay/pkg/openai"
)

// InitializeProviders creates Provider instances from config.LLMConfig
// Returns providers sorted by priority (ascending) with disabled providers filtered out
// Skips providers that fail to initialize instead of failing the entire service
func InitializeProviders(cfg *config.LLMConfig) ([]Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM config is nil")
	}

	var enabledProviders []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabledProviders = append(enabledProviders, p)
		}
	}

	if len(enabledProviders) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	sort.Slice(enabledProviders, func(i, j int) bool {
		return enabledProviders[i].Priority < enabledProviders[j].Priority
	})

	var providers []Provider
	var initErrors []string

	for _, p := range enabledProviders {
		provider, err := createProvider(p)
		if err != nil {
			initErrors = append(initErrors, fmt.Sprintf("%s (priority %d): %v", p.Name, p.Priority, err))
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers successfully initialized: %s", strings.Join(initErrors, "; "))
	}

	return providers, nil
}

// createProvider creates a concrete provider instance based on the provider config
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s: API key is required", cfg.Name)
	}

	timeout, _ := time.ParseDuration(cfg.Timeout)
	clientCfg := openai.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: timeout,
	}

	switch cfg.Name {
	case "openai":
	case "deepseek":
		if clientCfg.BaseURL == "" {
			clientCfg.BaseURL = openai.DeepSeekBaseURL
		}
		if clientCfg.Model == "" {
			clientCfg.Model = openai.DeepSeekModel
		}
	case "qwen", "alibaba":
		if clientCfg.BaseURL == "" {
			clientCfg.BaseURL = openai.QwenBaseURL
		}
		if clientCfg.Model == "" {
			clientCfg.Model = openai.QwenModel
		}
	default:
		// Any other name is accepted as a self-hosted OpenAI-compatible endpoint.
		if clientCfg.BaseURL == "" {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Name)
		}
	}

	client, err := openai.New(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Name, err)
	}
	return NewOpenAIAdapter(cfg.Name, client), nil
}
