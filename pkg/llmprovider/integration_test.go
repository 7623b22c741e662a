package llmprovider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"repo-event-relay/config"
	"repo-event-relay/pkg/llmprovider"
	"repo-event-relay/pkg/log"
)

// TestIntegration_ConfigToManagerFlow verifies that configuration loading,
// provider initialization, and manager work together correctly
func TestIntegration_ConfigToManagerFlow(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","model":"local-model","choices":[{"index":0,"message":{"role":"assistant","content":"pong"},"finish_reason":"stop"}],
			"usage":{"prompt_tokens":3,"completion_tokens":1,"total_tokens":4}}`))
	}))
	defer ts.Close()

	// Step 1: Create a configuration (simulating config loading)
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{
				Name:     "local",
				Enabled:  true,
				Priority: 1,
				APIKey:   "test-local-key",
				BaseURL:  ts.URL,
				Model:    "local-model",
				Timeout:  "5s",
			},
			{
				Name:     "deepseek",
				Enabled:  true,
				Priority: 2,
				APIKey:   "test-deepseek-key",
				Timeout:  "30s",
			},
		},
		FallbackEnabled: true,
		RetryAttempts:   1,
		RetryDelay:      "10ms",
	}

	// Step 2: Initialize providers from configuration
	providers, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize providers: %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("Expected 2 providers, got %d", len(providers))
	}
	if providers[0].Name() != "local" || providers[1].Name() != "deepseek" {
		t.Errorf("unexpected provider order: %s, %s", providers[0].Name(), providers[1].Name())
	}
	if providers[1].Model() != "deepseek-chat" {
		t.Errorf("expected deepseek default model, got %s", providers[1].Model())
	}

	// Step 3: Create manager with providers
	retryDelay, _ := time.ParseDuration(cfg.RetryDelay)
	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		Encoding:     "console",
		ColorEnabled: false,
	})
	manager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      retryDelay,
	}, logger)

	// Step 4: The first provider answers from the local test server
	resp, err := manager.GenerateContent(context.Background(), &llmprovider.Request{
		Messages: []llmprovider.Message{{Role: llmprovider.RoleUser, Parts: []llmprovider.Part{{Text: "ping"}}}},
	})
	if err != nil {
		t.Fatalf("GenerateContent error: %v", err)
	}
	if resp.Text() != "pong" || resp.ProviderName != "local" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

// TestIntegration_ConfigValidation verifies that invalid configurations
// are caught during initialization
func TestIntegration_ConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.LLMConfig
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: &config.LLMConfig{
				Providers: []config.ProviderConfig{
					{Name: "openai", Enabled: true, Priority: 1, APIKey: "test-key", Model: "gpt-4.1-nano"},
				},
			},
			wantErr: false,
		},
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: true,
		},
		{
			name:    "no providers",
			cfg:     &config.LLMConfig{Providers: []config.ProviderConfig{}},
			wantErr: true,
		},
		{
			name: "all providers disabled",
			cfg: &config.LLMConfig{
				Providers: []config.ProviderConfig{
					{Name: "openai", Enabled: false, Priority: 1, APIKey: "test-key"},
				},
			},
			wantErr: true,
		},
		{
			name: "missing API key",
			cfg: &config.LLMConfig{
				Providers: []config.ProviderConfig{
					{Name: "qwen", Enabled: true, Priority: 1, APIKey: ""},
				},
			},
			wantErr: true,
		},
		{
			name: "unknown provider without base url",
			cfg: &config.LLMConfig{
				Providers: []config.ProviderConfig{
					{Name: "mystery", Enabled: true, Priority: 1, APIKey: "test-key"},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := llmprovider.InitializeProviders(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("InitializeProviders() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestIntegration_ProviderPriorityOrdering verifies that providers
// are ordered correctly by priority
func TestIntegration_ProviderPriorityOrdering(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "qwen", Enabled: true, Priority: 10, APIKey: "test-qwen-key"},
			{Name: "openai", Enabled: true, Priority: 1, APIKey: "test-openai-key"},
		},
	}

	providers, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize providers: %v", err)
	}

	if providers[0].Name() != "openai" {
		t.Errorf("Expected first provider (priority 1) to be openai, got %s", providers[0].Name())
	}
	if providers[1].Name() != "qwen" {
		t.Errorf("Expected second provider (priority 10) to be qwen, got %s", providers[1].Name())
	}
}
