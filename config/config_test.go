package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("GITHUB_PAT", "ghp_test")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.test/abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.HTTPServer.Port != 8001 {
		t.Errorf("expected http port 8001, got %d", cfg.HTTPServer.Port)
	}
	if cfg.WebhookServer.Port != 8080 {
		t.Errorf("expected webhook port 8080, got %d", cfg.WebhookServer.Port)
	}
	if cfg.EventStore.Capacity != 100 {
		t.Errorf("expected store capacity 100, got %d", cfg.EventStore.Capacity)
	}
	if cfg.Notify.URL != "http://localhost:8001/notify" {
		t.Errorf("unexpected notify url %q", cfg.Notify.URL)
	}
	if cfg.Agent.MaxRounds != 10 {
		t.Errorf("expected max rounds 10, got %d", cfg.Agent.MaxRounds)
	}
	if cfg.Pipeline.Timezone != "Asia/Kolkata" {
		t.Errorf("unexpected timezone %q", cfg.Pipeline.Timezone)
	}
	if len(cfg.Pipeline.AllowedPRActions) != 3 {
		t.Errorf("expected 3 allowed actions, got %v", cfg.Pipeline.AllowedPRActions)
	}
	if cfg.GitHub.Token != "ghp_test" {
		t.Errorf("expected GITHUB_PAT to populate token, got %q", cfg.GitHub.Token)
	}
	if cfg.Slack.WebhookURL != "https://hooks.slack.test/abc" {
		t.Errorf("expected SLACK_WEBHOOK_URL to populate webhook url, got %q", cfg.Slack.WebhookURL)
	}
	if len(cfg.LLM.Providers) != 0 {
		t.Errorf("expected no providers without key, got %d", len(cfg.LLM.Providers))
	}
	if cfg.Webhook.RateLimitPerMin != 0 {
		t.Errorf("expected rate limiting off by default, got %d/min", cfg.Webhook.RateLimitPerMin)
	}
	if len(cfg.Webhook.TrustedProxies) != 2 || cfg.Webhook.TrustedProxies[0] != "127.0.0.1" {
		t.Errorf("expected loopback trusted proxies, got %v", cfg.Webhook.TrustedProxies)
	}
}

func TestLoad_WebhookLists(t *testing.T) {
	viper.Reset()
	t.Setenv("WEBHOOK_ALLOWED_IPS", "140.82.112.0/20, 192.30.252.0/22")
	t.Setenv("WEBHOOK_TRUSTED_PROXIES", "10.0.0.1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.Webhook.AllowedIPs) != 2 || cfg.Webhook.AllowedIPs[1] != "192.30.252.0/22" {
		t.Errorf("unexpected allowed ips %v", cfg.Webhook.AllowedIPs)
	}
	if len(cfg.Webhook.TrustedProxies) != 1 || cfg.Webhook.TrustedProxies[0] != "10.0.0.1" {
		t.Errorf("unexpected trusted proxies %v", cfg.Webhook.TrustedProxies)
	}
}

func TestLoad_OpenAIKeyFallback(t *testing.T) {
	viper.Reset()
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.LLM.Providers) != 1 {
		t.Fatalf("expected 1 provider, got %d", len(cfg.LLM.Providers))
	}
	p := cfg.LLM.Providers[0]
	if p.Name != "openai" || p.APIKey != "sk-test" || p.Priority != 1 || !p.Enabled {
		t.Errorf("unexpected provider %+v", p)
	}
}

func TestValidateLLMConfig(t *testing.T) {
	t.Run("duplicate priority", func(t *testing.T) {
		err := validateLLMConfig(&LLMConfig{Providers: []ProviderConfig{
			{Name: "openai", Enabled: true, Priority: 1},
			{Name: "deepseek", Enabled: true, Priority: 1},
		}})
		if err == nil {
			t.Fatal("expected duplicate priority error")
		}
	})

	t.Run("none enabled", func(t *testing.T) {
		err := validateLLMConfig(&LLMConfig{Providers: []ProviderConfig{{Name: "openai"}}})
		if err == nil {
			t.Fatal("expected error when nothing is enabled")
		}
	})

	t.Run("valid", func(t *testing.T) {
		err := validateLLMConfig(&LLMConfig{Providers: []ProviderConfig{
			{Name: "openai", Enabled: true, Priority: 1},
			{Name: "deepseek", Enabled: true, Priority: 2},
		}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"opened, reopened", "closed", ""})
	want := []string{"opened", "reopened", "closed"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestExpandEnvVar(t *testing.T) {
	viper.Reset()
	viper.AutomaticEnv()
	t.Setenv("RELAY_TEST_KEY", "value-from-env")

	if got := expandEnvVar("${RELAY_TEST_KEY}"); got != "value-from-env" {
		t.Errorf("expected env expansion, got %q", got)
	}
	if got := expandEnvVar("plain"); got != "plain" {
		t.Errorf("expected passthrough, got %q", got)
	}
	if got := expandEnvVar("${RELAY_TEST_MISSING}"); got != "" {
		t.Errorf("expected empty for missing var, got %q", got)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"5s", 5 * time.Second},
		{" 1m ", time.Minute},
		{"", 10 * time.Second},
		{"soon", 10 * time.Second},
		{"-1s", 10 * time.Second},
	}
	for _, tt := range tests {
		if got := ParseDuration(tt.raw, 10*time.Second); got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
