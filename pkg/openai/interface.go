package openai

import (
	"context"

	goopenai "github.com/sashabaranov/go-openai"
)

// IOpenAI defines the interface for OpenAI-compatible chat completion clients.
type IOpenAI interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
	Model() string
}
