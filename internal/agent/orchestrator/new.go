package orchestrator

import (
	"repo-event-relay/internal/agent"
	"repo-event-relay/pkg/log"
	"repo-event-relay/pkg/metrics"
)

type Orchestrator struct {
	planner      Planner
	registry     *agent.ToolRegistry
	l            log.Logger
	metrics      *metrics.Metrics
	maxRounds    int
	systemPrompt string
}

// New creates a Dispatch Loop. A nil planner makes every Run fail with ErrPlannerUnavailable.
func New(planner Planner, registry *agent.ToolRegistry, l log.Logger, m *metrics.Metrics, opts Options) *Orchestrator {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = DefaultMaxRounds
	}
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = SystemPromptAgent
	}
	return &Orchestrator{
		planner:      planner,
		registry:     registry,
		l:            l,
		metrics:      m,
		maxRounds:    opts.MaxRounds,
		systemPrompt: opts.SystemPrompt,
	}
}
