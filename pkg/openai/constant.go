package openai

import "time"

const (
	// DefaultModel is used when the provider config leaves model empty.
	DefaultModel = "gpt-4.1-nano"

	// DefaultTimeout bounds a single chat completion call.
	DefaultTimeout = 60 * time.Second

	// OpenAI-compatible endpoints for the other supported vendors.
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
	DeepSeekModel   = "deepseek-chat"
	QwenBaseURL     = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
	QwenModel       = "qwen-plus"
)
