package orchestrator

import (
	"context"
	"fmt"

	"repo-event-relay/internal/agent"
	"repo-event-relay/pkg/llmprovider"
	"repo-event-relay/pkg/log"
)

// LLMPlanner plans with the provider manager, offering every registered tool.
type LLMPlanner struct {
	llm         *llmprovider.Manager
	registry    *agent.ToolRegistry
	l           log.Logger
	temperature float64
}

// NewLLMPlanner returns nil when llm is nil so callers can pass it straight to New.
func NewLLMPlanner(llm *llmprovider.Manager, registry *agent.ToolRegistry, l log.Logger, temperature float64) Planner {
	if llm == nil {
		return nil
	}
	return &LLMPlanner{
		llm:         llm,
		registry:    registry,
		l:           l,
		temperature: temperature,
	}
}

// Plan implements Planner.
func (p *LLMPlanner) Plan(ctx context.Context, turns []Turn) (PlannerOutput, error) {
	req := &llmprovider.Request{
		Messages:    make([]llmprovider.Message, 0, len(turns)),
		Tools:       p.registry.ToFunctionDefinitions(),
		Temperature: p.temperature,
	}

	for _, t := range turns {
		switch t.Role {
		case RoleSystem:
			req.SystemInstruction = &llmprovider.Message{
				Role:  llmprovider.RoleSystem,
				Parts: []llmprovider.Part{{Text: t.Content}},
			}
		case RoleHuman:
			req.Messages = append(req.Messages, llmprovider.Message{
				Role:  llmprovider.RoleUser,
				Parts: []llmprovider.Part{{Text: t.Content}},
			})
		case RoleAssistant:
			msg := llmprovider.Message{Role: llmprovider.RoleAssistant}
			if t.Content != "" {
				msg.Parts = append(msg.Parts, llmprovider.Part{Text: t.Content})
			}
			for _, call := range t.ToolCalls {
				msg.Parts = append(msg.Parts, llmprovider.Part{FunctionCall: &llmprovider.FunctionCall{
					ID:   call.ID,
					Name: call.Name,
					Args: call.Args,
				}})
			}
			req.Messages = append(req.Messages, msg)
		case RoleTool:
			req.Messages = append(req.Messages, llmprovider.Message{
				Role: llmprovider.RoleTool,
				Parts: []llmprovider.Part{{FunctionResponse: &llmprovider.FunctionResponse{
					ID:       t.ToolCallID,
					Name:     t.Name,
					Response: t.Content,
				}}},
			})
		}
	}

	resp, err := p.llm.GenerateContent(ctx, req)
	if err != nil {
		p.l.Errorf(ctx, "%s: %v", LogPrefixPlan, err)
		return PlannerOutput{}, fmt.Errorf("generate content: %w", err)
	}

	out := PlannerOutput{Text: resp.Text()}
	for _, call := range resp.FunctionCalls() {
		out.Requests = append(out.Requests, ToolInvocationRequest{
			ID:   call.ID,
			Name: call.Name,
			Args: call.Args,
		})
	}
	return out, nil
}
