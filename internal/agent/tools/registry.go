package tools

import (
	"repo-event-relay/internal/agent"
	eventRepo "repo-event-relay/internal/event/repository"
	"repo-event-relay/pkg/datemath"
	pkgLog "repo-event-relay/pkg/log"
)

// Deps are the collaborators shared by the built-in tools.
type Deps struct {
	Events eventRepo.Repository
	GitHub GitHubClient
	Slack  SlackClient
	Clock  *datemath.Converter
	Logger pkgLog.Logger
}

// NewRegistry registers every built-in tool. Registration fails on a duplicate name or unknown kind.
func NewRegistry(d Deps) (*agent.ToolRegistry, error) {
	if d.Clock == nil {
		d.Clock = datemath.MustUTC()
	}

	registry := agent.NewToolRegistry()
	for _, tool := range []agent.Tool{
		NewGetRecentEventsTool(d.Events, d.Clock, d.Logger),
		NewGetRepositoryDetailTool(d.Events, d.Logger),
		NewGetWorkflowStatusTool(d.Events, d.GitHub, d.Logger),
		NewSummarizeLatestEventTool(d.Events, d.Clock, d.Logger),
		NewGetPullRequestDetailsTool(d.GitHub, d.Logger),
		NewMergePullRequestTool(d.GitHub, d.Logger),
		NewClosePullRequestTool(d.GitHub, d.Logger),
		NewSendSlackNotificationTool(d.Slack, d.Logger),
	} {
		if err := registry.Register(tool); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
