package tools

import (
	"context"

	slackapi "github.com/slack-go/slack"

	"repo-event-relay/pkg/github"
)

// GitHubClient abstracts the GitHub REST calls for mocking.
type GitHubClient interface {
	Configured() bool
	GetPullRequest(ctx context.Context, fullName string, number int) (github.PullRequest, error)
	MergePullRequest(ctx context.Context, fullName string, number int) (github.MergeResult, error)
	ClosePullRequest(ctx context.Context, fullName string, number int) (github.PullRequest, error)
	LatestWorkflowRun(ctx context.Context, fullName, name string) (github.WorkflowRun, bool, error)
}

// SlackClient abstracts the Slack incoming webhook for mocking.
type SlackClient interface {
	Configured() bool
	Post(ctx context.Context, msg *slackapi.WebhookMessage) error
}
