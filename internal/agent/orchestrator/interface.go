package orchestrator

import "context"

//go:generate mockery --name Planner
type Planner interface {
	// Plan maps the conversation so far to a final answer or a set of tool requests.
	Plan(ctx context.Context, turns []Turn) (PlannerOutput, error)
}

// Dispatcher runs conversations through the planner and the tool registry.
type Dispatcher interface {
	Run(ctx context.Context, turns []Turn) (Result, error)
	Ask(ctx context.Context, query string) (string, error)
	// Invoke runs one synthesized request directly, bypassing the planner.
	Invoke(ctx context.Context, req ToolInvocationRequest) (interface{}, error)
}
