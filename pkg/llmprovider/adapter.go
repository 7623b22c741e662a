package llmprovider

import (
	"context"
	"encoding/json"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"repo-event-relay/pkg/openai"
)

// OpenAIAdapter adapts pkg/openai to llmprovider.Provider. The same adapter serves every
// OpenAI-compatible vendor; name only labels logs and responses.
type OpenAIAdapter struct {
	name   string
	client openai.IOpenAI
}

// NewOpenAIAdapter creates a new adapter
func NewOpenAIAdapter(name string, client openai.IOpenAI) *OpenAIAdapter {
	return &OpenAIAdapter{name: name, client: client}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	chatReq := goopenai.ChatCompletionRequest{
		Model:       a.client.Model(),
		Messages:    convertToOpenAIMessages(req),
		Temperature: float32(req.Temperature),
		MaxTokens:   req.MaxTokens,
	}
	if len(req.Tools) > 0 {
		chatReq.Tools = convertToOpenAITools(req.Tools)
		chatReq.ToolChoice = "auto"
	}

	resp, err := a.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: a.name, Err: ErrEmptyResponse}
	}

	content, err := convertFromOpenAIMessage(resp.Choices[0].Message)
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Err: err}
	}

	return &Response{
		Content:      content,
		ProviderName: a.name,
		ModelName:    resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *OpenAIAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}

func convertToOpenAIMessages(req *Request) []goopenai.ChatCompletionMessage {
	var out []goopenai.ChatCompletionMessage
	if req.SystemInstruction != nil {
		out = append(out, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: joinText(req.SystemInstruction.Parts),
		})
	}

	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleTool:
			// One tool message per result so every tool_call_id is answered.
			for _, p := range msg.Parts {
				if p.FunctionResponse == nil {
					continue
				}
				out = append(out, goopenai.ChatCompletionMessage{
					Role:       goopenai.ChatMessageRoleTool,
					Name:       p.FunctionResponse.Name,
					ToolCallID: p.FunctionResponse.ID,
					Content:    stringify(p.FunctionResponse.Response),
				})
			}
		case RoleAssistant:
			m := goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleAssistant, Content: joinText(msg.Parts)}
			for _, p := range msg.Parts {
				if p.FunctionCall == nil {
					continue
				}
				args, _ := json.Marshal(p.FunctionCall.Args)
				m.ToolCalls = append(m.ToolCalls, goopenai.ToolCall{
					ID:   p.FunctionCall.ID,
					Type: goopenai.ToolTypeFunction,
					Function: goopenai.FunctionCall{
						Name:      p.FunctionCall.Name,
						Arguments: string(args),
					},
				})
			}
			out = append(out, m)
		case RoleSystem:
			out = append(out, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleSystem, Content: joinText(msg.Parts)})
		default:
			out = append(out, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser, Content: joinText(msg.Parts)})
		}
	}
	return out
}

func convertToOpenAITools(tools []Tool) []goopenai.Tool {
	out := make([]goopenai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, goopenai.Tool{
			Type: goopenai.ToolTypeFunction,
			Function: &goopenai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}

func convertFromOpenAIMessage(msg goopenai.ChatCompletionMessage) (Message, error) {
	out := Message{Role: RoleAssistant}
	if msg.Content != "" {
		out.Parts = append(out.Parts, Part{Text: msg.Content})
	}
	for _, tc := range msg.ToolCalls {
		args := map[string]interface{}{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return Message{}, fmt.Errorf("tool %s: invalid arguments: %w", tc.Function.Name, err)
			}
		}
		out.Parts = append(out.Parts, Part{FunctionCall: &FunctionCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: args,
		}})
	}
	return out, nil
}

func joinText(parts []Part) string {
	var out string
	for _, p := range parts {
		out += p.Text
	}
	return out
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
