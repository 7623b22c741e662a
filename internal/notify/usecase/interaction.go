package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"repo-event-relay/internal/agent/orchestrator"
	"repo-event-relay/internal/agent/tools"
	"repo-event-relay/internal/model"
	"repo-event-relay/internal/notify"
	"repo-event-relay/pkg/metrics"
	"repo-event-relay/pkg/slack"
)

// OnInteraction runs the merge or cancel flow for a clicked button.
func (uc *implUseCase) OnInteraction(ctx context.Context, input notify.InteractionInput) (notify.InteractionOutput, error) {
	value := parseActionValue(input.Value)

	var (
		text string
		err  error
	)
	switch input.ActionID {
	case slack.ActionMerge:
		text, err = uc.merge(ctx, value)
	case slack.ActionCancel:
		text, err = uc.cancel(ctx, value, input.User)
	default:
		err = notify.ErrUnknownAction
	}

	if err != nil {
		uc.metrics.Interaction(input.ActionID, metrics.StatusError)
		uc.l.Warnf(ctx, "%s: %s on %s: %v", notify.LogPrefixOnInteraction, input.ActionID, value.Repo, err)
		return notify.InteractionOutput{}, err
	}

	uc.metrics.Interaction(input.ActionID, metrics.StatusOK)
	uc.l.Infof(ctx, "%s: %s by %s: %s", notify.LogPrefixOnInteraction, input.ActionID, input.User, text)
	return notify.InteractionOutput{Text: text}, nil
}

func (uc *implUseCase) merge(ctx context.Context, value slack.ActionValue) (string, error) {
	n, ok := model.ParsePRNumber(value.PRNumber)
	if !ok {
		return "", notify.ErrInvalidPRNumber
	}

	res, err := uc.invoke(ctx, tools.NameMergePullRequest, prArgs(value.Repo, n))
	if err != nil {
		return "", err
	}
	return resultText(res), nil
}

// cancel closes the pull request unless it is already merged, then posts a follow-up.
func (uc *implUseCase) cancel(ctx context.Context, value slack.ActionValue, user string) (string, error) {
	n, ok := model.ParsePRNumber(value.PRNumber)
	if !ok {
		return "", notify.ErrInvalidPRNumber
	}

	res, err := uc.invoke(ctx, tools.NameGetPullRequestDetails, prArgs(value.Repo, n))
	if err != nil {
		// The close call reports its own failure if the PR really is unreachable.
		uc.l.Warnf(ctx, "%s: details lookup failed, closing anyway: %v", notify.LogPrefixOnInteraction, err)
	} else if details, ok := res.(tools.PullRequestDetails); ok && details.Merged {
		return fmt.Sprintf(notify.MsgAlreadyMerged, n, value.Repo), nil
	}

	res, err = uc.invoke(ctx, tools.NameClosePullRequest, prArgs(value.Repo, n))
	if err != nil {
		return "", err
	}
	closeText := resultText(res)

	followUp := closeText
	if !failed(closeText) {
		followUp = fmt.Sprintf(notify.MsgClosedFollowUp, n, value.Repo, user)
	}
	notifyRes, err := uc.invoke(ctx, tools.NameSendSlackNotification, map[string]interface{}{
		"message":   followUp,
		"repo":      value.Repo,
		"pr_number": n,
	})
	if err != nil {
		uc.l.Warnf(ctx, "%s: follow-up notification failed: %v", notify.LogPrefixOnInteraction, err)
	} else if text := resultText(notifyRes); failed(text) {
		uc.l.Warnf(ctx, "%s: follow-up notification failed: %s", notify.LogPrefixOnInteraction, text)
	}

	return closeText, nil
}

func (uc *implUseCase) invoke(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	return uc.dispatcher.Invoke(ctx, orchestrator.ToolInvocationRequest{
		ID:   "call_" + uuid.NewString(),
		Name: name,
		Args: args,
	})
}

// parseActionValue decodes the button value. Anything unreadable leaves the repo
// as "unknown" and the PR number missing.
func parseActionValue(raw string) slack.ActionValue {
	var v slack.ActionValue
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		v = slack.ActionValue{}
	}
	if v.Repo == "" {
		v.Repo = notify.UnknownValue
	}
	return v
}

func prArgs(repo string, n int) map[string]interface{} {
	return map[string]interface{}{"repo": repo, "pr_number": n}
}
