package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"repo-event-relay/internal/agent"
	"repo-event-relay/pkg/metrics"
)

// Run drives the conversation from Planning until Done or the round bound.
// Every requested invocation gets exactly one tool turn, including unknown and deferred ones.
func (o *Orchestrator) Run(ctx context.Context, turns []Turn) (Result, error) {
	if o.planner == nil {
		return Result{}, ErrPlannerUnavailable
	}
	if len(turns) == 0 {
		return Result{}, ErrEmptyConversation
	}

	conv := o.withSystemPrompt(turns)
	state := StatePlanning

	for round := 1; round <= o.maxRounds; round++ {
		out, err := o.planner.Plan(ctx, conv)
		if err != nil {
			return Result{}, fmt.Errorf("plan round %d: %w", round, err)
		}

		requests := withIDs(out.Requests)
		conv = append(conv, Turn{Role: RoleAssistant, Content: out.Text, ToolCalls: requests})

		state = o.route(requests)
		o.l.Debugf(ctx, LogMsgRound, LogPrefixRun, round, o.maxRounds, state, len(requests))

		if state == StateDone {
			// Unroutable requests still get a result so the conversation stays well formed.
			var errs []string
			for _, req := range requests {
				o.l.Warnf(ctx, LogMsgUnknownTool, LogPrefixRun, req.Name)
				text := fmt.Sprintf(MsgUnknownTool, req.Name)
				conv = append(conv, toolTurn(req, text))
				errs = append(errs, text)
			}

			text := out.Text
			if text == "" {
				text = strings.Join(errs, "\n")
			}
			o.metrics.DispatchRounds(round)
			o.l.Infof(ctx, LogMsgDone, LogPrefixRun, round)
			return Result{Text: text, Rounds: round, State: StateDone, Turns: conv}, nil
		}

		for _, req := range requests {
			conv = append(conv, o.resolve(ctx, state, req))
		}
		state = StatePlanning
	}

	o.l.Warnf(ctx, LogMsgRoundLimit, LogPrefixRun, o.maxRounds)
	o.metrics.DispatchRounds(o.maxRounds)
	return Result{
		Text:   fmt.Sprintf(MsgRoundLimit, o.maxRounds),
		Rounds: o.maxRounds,
		State:  state,
		Turns:  conv,
	}, nil
}

// Ask runs a single human query and returns the final text.
func (o *Orchestrator) Ask(ctx context.Context, query string) (string, error) {
	res, err := o.Run(ctx, []Turn{HumanTurn(query)})
	if err != nil {
		if errors.Is(err, ErrPlannerUnavailable) {
			return MsgNoLLMConfigured, nil
		}
		return "", err
	}
	return res.Text, nil
}

// Invoke executes req against the registry without a planner round. A tool panic is
// returned as an error.
func (o *Orchestrator) Invoke(ctx context.Context, req ToolInvocationRequest) (interface{}, error) {
	tool, ok := o.registry.Get(req.Name)
	if !ok {
		o.metrics.ToolCall(req.Name, metrics.StatusError)
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, req.Name)
	}

	o.l.Infof(ctx, LogMsgCallingTool, LogPrefixInvoke, req.Name, req.ID, req.Args)
	res, err := execute(ctx, tool, req.Args)
	if err != nil {
		o.l.Errorf(ctx, LogMsgToolFailed, LogPrefixInvoke, req.Name, err)
		o.metrics.ToolCall(req.Name, metrics.StatusError)
		return nil, err
	}
	o.metrics.ToolCall(req.Name, metrics.StatusOK)
	return res, nil
}

// route picks the next state. Repository tools win over notify tools in the same round.
func (o *Orchestrator) route(requests []ToolInvocationRequest) State {
	if len(requests) == 0 {
		return StateDone
	}

	hasNotify := false
	for _, req := range requests {
		kind := o.registry.KindOf(req.Name)
		if kind.IsRepo() {
			return StateRunningRepoTool
		}
		if kind == agent.KindNotify {
			hasNotify = true
		}
	}
	if hasNotify {
		return StateRunningNotifyTool
	}
	return StateDone
}

// resolve produces the single tool turn answering req in the given running state.
func (o *Orchestrator) resolve(ctx context.Context, state State, req ToolInvocationRequest) Turn {
	tool, ok := o.registry.Get(req.Name)
	if !ok {
		o.l.Warnf(ctx, LogMsgUnknownTool, LogPrefixRun, req.Name)
		o.metrics.ToolCall(req.Name, metrics.StatusError)
		return toolTurn(req, fmt.Sprintf(MsgUnknownTool, req.Name))
	}

	if state == StateRunningRepoTool && !tool.Kind().IsRepo() {
		o.l.Infof(ctx, LogMsgDeferredTool, LogPrefixRun, req.Name)
		return toolTurn(req, MsgDeferredNotify)
	}

	o.l.Infof(ctx, LogMsgCallingTool, LogPrefixRun, req.Name, req.ID, req.Args)
	res, err := execute(ctx, tool, req.Args)
	if err != nil {
		o.l.Errorf(ctx, LogMsgToolFailed, LogPrefixRun, req.Name, err)
		o.metrics.ToolCall(req.Name, metrics.StatusError)
		return toolTurn(req, fmt.Sprintf(MsgToolFailed, err))
	}

	o.metrics.ToolCall(req.Name, metrics.StatusOK)
	return toolTurn(req, Stringify(res))
}

// execute converts a tool panic into an error so the loop always yields a result turn.
func execute(ctx context.Context, tool agent.Tool, args map[string]interface{}) (res interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool %s panicked: %v", tool.Name(), r)
		}
	}()
	if args == nil {
		args = map[string]interface{}{}
	}
	return tool.Execute(ctx, args)
}

func (o *Orchestrator) withSystemPrompt(turns []Turn) []Turn {
	conv := make([]Turn, 0, len(turns)+1)
	if turns[0].Role != RoleSystem {
		conv = append(conv, Turn{Role: RoleSystem, Content: o.systemPrompt})
	}
	return append(conv, turns...)
}

func withIDs(requests []ToolInvocationRequest) []ToolInvocationRequest {
	out := make([]ToolInvocationRequest, len(requests))
	for i, req := range requests {
		if req.ID == "" {
			req.ID = "call_" + uuid.NewString()
		}
		out[i] = req
	}
	return out
}

func toolTurn(req ToolInvocationRequest, content string) Turn {
	return Turn{Role: RoleTool, Content: content, ToolCallID: req.ID, Name: req.Name}
}

// Stringify renders a tool return value as turn content.
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
