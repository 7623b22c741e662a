package tools

import (
	"context"
	"errors"
	"fmt"
	"net"

	slackapi "github.com/slack-go/slack"

	"repo-event-relay/internal/agent"
	"repo-event-relay/internal/model"
	pkgLog "repo-event-relay/pkg/log"
	"repo-event-relay/pkg/slack"
)

// SendSlackNotificationTool posts a message to the team channel. Pull request messages
// carrying a repo and number get Merge and Cancel buttons.
type SendSlackNotificationTool struct {
	slack SlackClient
	l     pkgLog.Logger
}

func NewSendSlackNotificationTool(client SlackClient, l pkgLog.Logger) *SendSlackNotificationTool {
	return &SendSlackNotificationTool{slack: client, l: l}
}

func (t *SendSlackNotificationTool) Name() string     { return NameSendSlackNotification }
func (t *SendSlackNotificationTool) Kind() agent.Kind { return agent.KindNotify }

func (t *SendSlackNotificationTool) Description() string {
	return "Send a message to the team Slack channel. For pull request events include repo and pr_number so Merge/Cancel buttons are attached."
}

func (t *SendSlackNotificationTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"message": map[string]interface{}{
				"type":        "string",
				"description": "Message text (Slack mrkdwn)",
			},
			"event_type": map[string]interface{}{
				"type":        "string",
				"description": "GitHub event type, e.g. 'pull_request'",
			},
			"repo": map[string]interface{}{
				"type":        "string",
				"description": "Repository full name",
			},
			"pr_number": map[string]interface{}{
				"type":        "integer",
				"description": "Pull request number",
			},
		},
		"required": []string{"message"},
	}
}

// Execute reports delivery problems as result text; only a missing message is an error.
func (t *SendSlackNotificationTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	message, err := requiredString(params, "message")
	if err != nil {
		return nil, err
	}
	if !t.slack.Configured() {
		return MsgSlackURLMissing, nil
	}

	var pr *slack.ActionValue
	repo := stringParam(params, "repo")
	if stringParam(params, "event_type") == string(model.EventTypePullRequest) && repo != "" {
		if n, ok := model.ParsePRNumber(params["pr_number"]); ok {
			pr = &slack.ActionValue{Repo: repo, PRNumber: n}
		}
	}

	if err := t.slack.Post(ctx, slack.BuildMessage(message, pr)); err != nil {
		t.l.Warnf(ctx, "%s: %v", LogPrefixSlack, err)
		return deliveryFailure(err), nil
	}
	return MsgSlackSent, nil
}

func deliveryFailure(err error) string {
	if errors.Is(err, slack.ErrWebhookNotConfigured) {
		return MsgSlackURLMissing
	}

	var statusErr *slack.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf(MsgSlackStatusFailed, statusErr.Code, statusErr.Reason())
	}
	var codeErr slackapi.StatusCodeError
	if errors.As(err, &codeErr) {
		return fmt.Sprintf(MsgSlackStatusFailed, codeErr.Code, codeErr.Status)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return MsgSlackTimeout
	}

	return fmt.Sprintf(MsgSlackError, err)
}

var _ agent.Tool = (*SendSlackNotificationTool)(nil)
