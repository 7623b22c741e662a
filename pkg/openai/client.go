package openai

import (
	"context"
	"fmt"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"
)

// Client implements IOpenAI on top of go-openai.
type Client struct {
	api   *goopenai.Client
	model string
}

// New creates a chat completion client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:   goopenai.NewClientWithConfig(clientCfg),
		model: cfg.Model,
	}, nil
}

// CreateChatCompletion fills in the model when the request leaves it empty.
func (c *Client) CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
	if req.Model == "" {
		req.Model = c.model
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return goopenai.ChatCompletionResponse{}, fmt.Errorf("chat completion: %w", err)
	}
	return resp, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}
