package openai

import "time"

// Config holds client settings. BaseURL switches to any OpenAI-compatible vendor.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}
