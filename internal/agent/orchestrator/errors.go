package orchestrator

import "errors"

var (
	ErrPlannerUnavailable = errors.New("planner unavailable")
	ErrEmptyConversation  = errors.New("conversation has no turns")
	ErrUnknownTool        = errors.New("unknown tool")
)
